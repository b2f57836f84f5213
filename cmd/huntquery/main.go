package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/solomonneas/bro-hunter-sub000/internal/backend"
	"github.com/solomonneas/bro-hunter-sub000/internal/fixtures"
	"github.com/solomonneas/bro-hunter-sub000/internal/query"
	"github.com/solomonneas/bro-hunter-sub000/internal/severity"
	"github.com/solomonneas/bro-hunter-sub000/internal/view"
)

func main() {
	resource := flag.String("resource", "threats", "Resource to query: threats|beacons|dns-threats|indicators")
	backendURL := flag.String("backend", "", "Analysis API base URL (empty: use the synthetic fixtures)")
	search := flag.String("q", "", "Free-text search query")
	severities := flag.String("severity", "", "Comma-separated severity levels (for example: critical,high)")
	minScore := flag.Float64("min-score", 0, "Minimum score")
	maxScore := flag.Float64("max-score", 100, "Maximum score")
	sortKey := flag.String("sort", "score", "Sort key")
	order := flag.String("order", "desc", "Sort direction: asc|desc")
	page := flag.Int("page", 1, "Page number (1-based)")
	pageSize := flag.Int("page-size", 25, "Page size")
	output := flag.String("output", "", "Output JSONL path (empty: stdout)")
	flag.Parse()

	f := view.NewFilter()
	f.Search = *search
	f.MinScore = severity.Clamp(*minScore)
	f.MaxScore = severity.Clamp(*maxScore)
	for _, part := range strings.Split(*severities, ",") {
		if lvl, ok := severity.Parse(strings.TrimSpace(part)); ok {
			f.Severities = append(f.Severities, lvl)
		}
	}

	srt := view.Sort{Key: *sortKey, Desc: !strings.EqualFold(*order, "asc")}
	pg := view.PageRequest{Page: *page, Size: *pageSize}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var hub *query.Hub
	if *backendURL != "" {
		zlog := zap.NewNop()
		client, err := backend.NewClient(backend.ClientConfig{BaseURL: *backendURL}, zlog)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to create backend client: %v\n", err)
			os.Exit(1)
		}
		prober := backend.NewProber(client, backend.DefaultProbeTTL, zlog, nil)
		hub = query.NewHub(query.NewStore(prober, nil, zlog), client, nil, zlog)
	}

	var (
		total int
		shown int
		err   error
	)
	switch *resource {
	case "threats":
		total, shown, err = run(ctx, hub, fixtures.Alerts, (*query.Hub).Threats, view.AlertAdapter(), f, srt, pg, *output)
	case "beacons":
		total, shown, err = run(ctx, hub, fixtures.Beacons, (*query.Hub).Beacons, view.BeaconAdapter(), f, srt, pg, *output)
	case "dns-threats":
		total, shown, err = run(ctx, hub, fixtures.DnsThreats, (*query.Hub).DnsThreats, view.DnsThreatAdapter(), f, srt, pg, *output)
	case "indicators":
		total, shown, err = run(ctx, hub, fixtures.Indicators, (*query.Hub).Indicators, view.IndicatorAdapter(), f, srt, pg, *output)
	default:
		fmt.Fprintf(os.Stderr, "unknown resource: %s\n", *resource)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "query failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "resource=%s matched=%d shown=%d page=%d\n", *resource, total, shown, pg.Page)
}

// run fetches one resource (live through the hub, or straight from fixtures),
// applies the view pipeline, and writes the page as JSONL.
func run[T any](
	ctx context.Context,
	hub *query.Hub,
	fixture func() []T,
	fetch func(h *query.Hub, ctx context.Context) ([]T, backend.Source, error),
	ad view.Adapter[T],
	f view.Filter,
	srt view.Sort,
	pg view.PageRequest,
	output string,
) (int, int, error) {
	var records []T
	if hub != nil {
		var err error
		records, _, err = fetch(hub, ctx)
		if err != nil {
			return 0, 0, err
		}
	} else {
		records = fixture()
	}

	result := view.Apply(records, f, srt, pg, ad)
	if err := writeItems(output, result.Items); err != nil {
		return 0, 0, err
	}
	return result.TotalItems, len(result.Items), nil
}

func writeItems[T any](path string, items []T) error {
	out := os.Stdout
	if path != "" {
		dir := filepath.Dir(path)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("create output directory: %w", err)
			}
		}
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	w := bufio.NewWriter(out)
	enc := json.NewEncoder(w)
	for _, item := range items {
		if err := enc.Encode(item); err != nil {
			return fmt.Errorf("encode record: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}
	return nil
}
