package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/solomonneas/bro-hunter-sub000/config"
	"github.com/solomonneas/bro-hunter-sub000/internal/backend"
	"github.com/solomonneas/bro-hunter-sub000/internal/logger"
	"github.com/solomonneas/bro-hunter-sub000/internal/metrics"
	"github.com/solomonneas/bro-hunter-sub000/internal/query"
	"github.com/solomonneas/bro-hunter-sub000/internal/server"
	"github.com/solomonneas/bro-hunter-sub000/internal/snapshot"
)

func findConfigFile(configArg string) string {
	if configArg != "" {
		path := configArg
		if _, err := os.Stat(path); err == nil {
			return path
		}
		log.Printf("Warning: config file not found at %s, trying default locations", path)
	}

	if _, err := os.Stat("hunterd.yml"); err == nil {
		return "hunterd.yml"
	}

	exePath, err := os.Executable()
	if err == nil {
		exeDir := filepath.Dir(exePath)
		path := filepath.Join(exeDir, "hunterd.yml")
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return "hunterd.yml"
}

func applyDefaults(cfg *config.Config) {
	if cfg.Hunter.Backend.BaseURL == "" {
		cfg.Hunter.Backend.BaseURL = "http://127.0.0.1:8000"
	}
	if cfg.Hunter.Backend.ProbePath == "" {
		cfg.Hunter.Backend.ProbePath = "/health"
	}
	if cfg.Hunter.Backend.ProbeTTL <= 0 {
		cfg.Hunter.Backend.ProbeTTL = backend.DefaultProbeTTL
	}
	if cfg.Hunter.Backend.Timeout <= 0 {
		cfg.Hunter.Backend.Timeout = 10 * time.Second
	}

	if cfg.Hunter.Server.Addr == "" {
		cfg.Hunter.Server.Addr = ":8080"
	}
	if cfg.Hunter.Server.ReadTimeout <= 0 {
		cfg.Hunter.Server.ReadTimeout = 10 * time.Second
	}
	if cfg.Hunter.Server.WriteTimeout <= 0 {
		cfg.Hunter.Server.WriteTimeout = 30 * time.Second
	}

	if cfg.Hunter.Snapshot.Redis.Addr == "" {
		cfg.Hunter.Snapshot.Redis.Addr = "127.0.0.1:6379"
	}
	if cfg.Hunter.Snapshot.Redis.KeyPrefix == "" {
		cfg.Hunter.Snapshot.Redis.KeyPrefix = "hunter:snapshot"
	}
	if cfg.Hunter.Snapshot.Retention <= 0 {
		cfg.Hunter.Snapshot.Retention = 24 * time.Hour
	}

	if cfg.Hunter.Logging.Level == "" {
		cfg.Hunter.Logging.Level = "info"
	}
	if cfg.Hunter.Logging.Format == "" {
		cfg.Hunter.Logging.Format = "json"
	}
}

func main() {
	configArg := flag.String("config", "", "Path to hunterd.yml")
	flag.Parse()

	configPath := findConfigFile(*configArg)
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	applyDefaults(cfg)

	zlog, err := logger.New(cfg.Hunter.Logging.Level, cfg.Hunter.Logging.Format, "hunterd")
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	zlog.Info("hunterd starting",
		zap.String("config", configPath),
		zap.String("backend", cfg.Hunter.Backend.BaseURL),
	)

	registry := prometheus.NewRegistry()
	met := metrics.New(registry)

	client, err := backend.NewClient(backend.ClientConfig{
		BaseURL:   cfg.Hunter.Backend.BaseURL,
		ProbePath: cfg.Hunter.Backend.ProbePath,
		Timeout:   cfg.Hunter.Backend.Timeout,
	}, zlog)
	if err != nil {
		zlog.Fatal("Failed to create backend client", zap.Error(err))
	}

	var snap *snapshot.Store
	if cfg.Hunter.Snapshot.Enabled {
		snap, err = snapshot.NewStore(snapshot.RedisConfig{
			Addr:      cfg.Hunter.Snapshot.Redis.Addr,
			Password:  cfg.Hunter.Snapshot.Redis.Password,
			DB:        cfg.Hunter.Snapshot.Redis.DB,
			KeyPrefix: cfg.Hunter.Snapshot.Redis.KeyPrefix,
			Retention: cfg.Hunter.Snapshot.Retention,
		})
		if err != nil {
			zlog.Warn("Snapshot store unavailable, continuing without it", zap.Error(err))
			snap = nil
		} else {
			defer snap.Close()
		}
	}

	prober := backend.NewProber(client, cfg.Hunter.Backend.ProbeTTL, zlog, met)
	store := query.NewStore(prober, met, zlog)
	hub := query.NewHub(store, client, snap, zlog)

	srv := server.New(server.Config{
		Addr:         cfg.Hunter.Server.Addr,
		ReadTimeout:  cfg.Hunter.Server.ReadTimeout,
		WriteTimeout: cfg.Hunter.Server.WriteTimeout,
	}, hub, registry, met, zlog)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	zlog.Info("gateway listening", zap.String("addr", cfg.Hunter.Server.Addr))
	if err := srv.Run(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		zlog.Fatal("gateway stopped", zap.Error(err))
	}
	zlog.Info("hunterd shut down")
}
