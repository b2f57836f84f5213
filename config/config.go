package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration.
type Config struct {
	Hunter HunterConfig `yaml:"hunter"`
}

// HunterConfig is the project configuration.
type HunterConfig struct {
	Backend  BackendConfig  `yaml:"backend"`
	Server   ServerConfig   `yaml:"server"`
	Snapshot SnapshotConfig `yaml:"snapshot"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// BackendConfig controls access to the remote analysis API.
type BackendConfig struct {
	BaseURL   string        `yaml:"base_url"`
	ProbePath string        `yaml:"probe_path"`
	ProbeTTL  time.Duration `yaml:"probe_ttl"`
	Timeout   time.Duration `yaml:"timeout"`
}

// ServerConfig controls the gateway HTTP server.
type ServerConfig struct {
	Addr         string        `yaml:"addr"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// SnapshotConfig controls the last-known-good payload store.
type SnapshotConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Redis     RedisConfig   `yaml:"redis"`
	Retention time.Duration `yaml:"retention"`
}

// RedisConfig controls Redis access for snapshots.
type RedisConfig struct {
	Addr      string `yaml:"addr"`
	Password  string `yaml:"password"`
	DB        int    `yaml:"db"`
	KeyPrefix string `yaml:"key_prefix"`
}

// LoggingConfig controls logging output.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// LoadConfig reads and parses a YAML config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
