// Package backend talks to the remote threat-analysis API and decides, per
// call, whether live data or a fallback dataset is served.
package backend

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/solomonneas/bro-hunter-sub000/pkg/models"
)

// ClientConfig configures the analysis API client.
type ClientConfig struct {
	BaseURL   string
	ProbePath string
	Timeout   time.Duration
}

// Client is a typed client for the analysis API.
type Client struct {
	http      *resty.Client
	probePath string
	logger    *zap.Logger
}

// NewClient creates an analysis API client.
func NewClient(cfg ClientConfig, logger *zap.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("backend base URL is empty")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	probePath := cfg.ProbePath
	if probePath == "" {
		probePath = "/health"
	}

	http := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	return &Client{
		http:      http,
		probePath: probePath,
		logger:    logger.Named("backend"),
	}, nil
}

// Probe performs the lightweight reachability check. Any 2xx counts as
// reachable; everything else is an error.
func (c *Client) Probe(ctx context.Context) error {
	resp, err := c.http.R().SetContext(ctx).Get(c.probePath)
	if err != nil {
		return fmt.Errorf("probe request: %w", err)
	}
	if resp.IsError() {
		return &StatusError{Code: resp.StatusCode()}
	}
	return nil
}

// Threats fetches the scored alert list.
func (c *Client) Threats(ctx context.Context) ([]models.Alert, error) {
	var out models.ThreatsResponse
	if err := c.get(ctx, "/api/threats", &out); err != nil {
		return nil, err
	}
	for i := range out.Threats {
		out.Threats[i].Normalize()
	}
	return out.Threats, nil
}

// ThreatDetail fetches a single alert by entity. A missing entity surfaces as
// a StatusError with code 404.
func (c *Client) ThreatDetail(ctx context.Context, entity string) (*models.Alert, error) {
	var out models.ThreatDetailResponse
	if err := c.get(ctx, "/api/threats/"+entity, &out); err != nil {
		return nil, err
	}
	if out.Data != nil {
		out.Data.Normalize()
	}
	return out.Data, nil
}

// Beacons fetches the beacon detections.
func (c *Client) Beacons(ctx context.Context) ([]models.Beacon, error) {
	var out []models.Beacon
	if err := c.get(ctx, "/api/analysis/beacons", &out); err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Normalize()
	}
	return out, nil
}

// DnsThreats fetches the DNS threat classifications.
func (c *Client) DnsThreats(ctx context.Context) ([]models.DnsThreat, error) {
	var out []models.DnsThreat
	if err := c.get(ctx, "/api/analysis/dns-threats", &out); err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Normalize()
	}
	return out, nil
}

// Timeline fetches activity buckets over time.
func (c *Client) Timeline(ctx context.Context) ([]models.TimelinePoint, error) {
	var out []models.TimelinePoint
	if err := c.get(ctx, "/api/analysis/timeline", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SeverityDistribution fetches alert counts per severity level.
func (c *Client) SeverityDistribution(ctx context.Context) ([]models.SeverityBucket, error) {
	var out []models.SeverityBucket
	if err := c.get(ctx, "/api/analysis/severity-distribution", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Dashboard fetches the headline stats.
func (c *Client) Dashboard(ctx context.Context) (models.DashboardStats, error) {
	var out models.DashboardStats
	if err := c.get(ctx, "/api/analysis/dashboard", &out); err != nil {
		return models.DashboardStats{}, err
	}
	return out, nil
}

// Indicators fetches the extracted observables.
func (c *Client) Indicators(ctx context.Context) ([]models.Indicator, error) {
	var out models.IndicatorsResponse
	if err := c.get(ctx, "/api/indicators", &out); err != nil {
		return nil, err
	}
	return out.Indicators, nil
}

// MitreMappings fetches the ATT&CK technique aggregation.
func (c *Client) MitreMappings(ctx context.Context) ([]models.MitreMapping, error) {
	var out models.MitreResponse
	if err := c.get(ctx, "/api/mitre", &out); err != nil {
		return nil, err
	}
	return out.Mappings, nil
}

// LogStats fetches ingest statistics. The endpoint may legitimately return
// null when no data has been loaded.
func (c *Client) LogStats(ctx context.Context) (*models.LogStats, error) {
	var out *models.LogStats
	if err := c.get(ctx, "/api/data/stats", &out); err != nil {
		return nil, err
	}
	return out, nil
}

const maxErrorBody = 512

func (c *Client) get(ctx context.Context, path string, out any) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("X-Request-ID", uuid.NewString()).
		SetResult(out).
		Get(path)
	if err != nil {
		return fmt.Errorf("get %s: %w", path, err)
	}
	if resp.IsError() {
		body := resp.String()
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		c.logger.Warn("backend request failed",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode()),
		)
		return &StatusError{Code: resp.StatusCode(), Body: body}
	}
	return nil
}
