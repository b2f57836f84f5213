package query

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/solomonneas/bro-hunter-sub000/internal/backend"
	"github.com/solomonneas/bro-hunter-sub000/internal/fixtures"
	"github.com/solomonneas/bro-hunter-sub000/internal/snapshot"
	"github.com/solomonneas/bro-hunter-sub000/pkg/models"
)

// Staleness windows per resource. Aggregates are more expensive upstream, so
// they stay fresh longer before a remount triggers a refetch.
const (
	staleHealth     = 15 * time.Second
	staleRecords    = 30 * time.Second
	staleTimeline   = 60 * time.Second
	staleMitre      = 90 * time.Second
	staleAggregates = 120 * time.Second
)

// Hub exposes one cached accessor per resource type. Each binding couples a
// cache key, the live endpoint call, and a fallback chain: last-known-good
// snapshot first, synthetic fixture second.
type Hub struct {
	store  *Store
	client *backend.Client
	snap   *snapshot.Store
	logger *zap.Logger

	threats      Resource[[]models.Alert]
	beacons      Resource[[]models.Beacon]
	dnsThreats   Resource[[]models.DnsThreat]
	timeline     Resource[[]models.TimelinePoint]
	distribution Resource[[]models.SeverityBucket]
	dashboard    Resource[models.DashboardStats]
	indicators   Resource[[]models.Indicator]
	mitre        Resource[[]models.MitreMapping]
	logStats     Resource[*models.LogStats]
	health       Resource[models.Health]
}

// NewHub wires the resource bindings. snap may be nil.
func NewHub(store *Store, client *backend.Client, snap *snapshot.Store, logger *zap.Logger) *Hub {
	h := &Hub{
		store:  store,
		client: client,
		snap:   snap,
		logger: logger.Named("hub"),
	}

	h.threats = bind(h, "threats", staleRecords, client.Threats, fixtures.Alerts)
	h.beacons = bind(h, "beacons", staleRecords, client.Beacons, fixtures.Beacons)
	h.dnsThreats = bind(h, "dns-threats", staleRecords, client.DnsThreats, fixtures.DnsThreats)
	h.timeline = bind(h, "timeline", staleTimeline, client.Timeline, func() []models.TimelinePoint {
		return fixtures.Timeline(24)
	})
	h.distribution = bind(h, "severity-distribution", staleAggregates, client.SeverityDistribution, fixtures.SeverityDistribution)
	h.dashboard = bind(h, "dashboard", staleMitre, client.Dashboard, fixtures.Dashboard)
	h.indicators = bind(h, "indicators", staleTimeline, client.Indicators, fixtures.Indicators)
	h.mitre = bind(h, "mitre", staleMitre, client.MitreMappings, fixtures.MitreMappings)
	h.logStats = bind(h, "log-stats", staleAggregates, client.LogStats, func() *models.LogStats {
		v := fixtures.LogStats()
		return &v
	})
	h.health = bind(h, "health", staleHealth, func(ctx context.Context) (models.Health, error) {
		if err := client.Probe(ctx); err != nil {
			return models.Health{}, err
		}
		return models.Health{Status: "ok"}, nil
	}, fixtures.HealthStatus)

	return h
}

// bind builds a Resource whose fetch records snapshots on success and whose
// fallback prefers a stored snapshot over the synthetic fixture.
func bind[T any](h *Hub, key string, stale time.Duration, fetch func(ctx context.Context) (T, error), fixture func() T) Resource[T] {
	return Resource[T]{
		Key:        key,
		StaleAfter: stale,
		Fetch: func(ctx context.Context) (T, error) {
			v, err := fetch(ctx)
			if err != nil {
				return v, err
			}
			if serr := h.snap.Save(ctx, key, v); serr != nil {
				h.logger.Warn("snapshot save failed", zap.String("resource", key), zap.Error(serr))
			}
			return v, nil
		},
		Fallback: func(ctx context.Context) T {
			var v T
			ok, err := h.snap.Load(ctx, key, &v)
			if err != nil {
				h.logger.Warn("snapshot load failed", zap.String("resource", key), zap.Error(err))
			}
			if ok && err == nil {
				return v
			}
			return fixture()
		},
	}
}

// Threats returns the scored alert list.
func (h *Hub) Threats(ctx context.Context) ([]models.Alert, backend.Source, error) {
	return Get(ctx, h.store, h.threats)
}

// ThreatDetail returns one alert by entity. Detail lookups are cached per
// entity under their own keys.
func (h *Hub) ThreatDetail(ctx context.Context, entity string) (*models.Alert, backend.Source, error) {
	r := bind(h, "threat:"+entity, staleRecords, func(ctx context.Context) (*models.Alert, error) {
		return h.client.ThreatDetail(ctx, entity)
	}, func() *models.Alert {
		for _, a := range fixtures.Alerts() {
			if a.Entity == entity {
				return &a
			}
		}
		return nil
	})
	return Get(ctx, h.store, r)
}

// Beacons returns the beacon detections.
func (h *Hub) Beacons(ctx context.Context) ([]models.Beacon, backend.Source, error) {
	return Get(ctx, h.store, h.beacons)
}

// DnsThreats returns the DNS threat classifications.
func (h *Hub) DnsThreats(ctx context.Context) ([]models.DnsThreat, backend.Source, error) {
	return Get(ctx, h.store, h.dnsThreats)
}

// Timeline returns activity buckets over time.
func (h *Hub) Timeline(ctx context.Context) ([]models.TimelinePoint, backend.Source, error) {
	return Get(ctx, h.store, h.timeline)
}

// SeverityDistribution returns alert counts per severity level.
func (h *Hub) SeverityDistribution(ctx context.Context) ([]models.SeverityBucket, backend.Source, error) {
	return Get(ctx, h.store, h.distribution)
}

// Dashboard returns the headline stats.
func (h *Hub) Dashboard(ctx context.Context) (models.DashboardStats, backend.Source, error) {
	return Get(ctx, h.store, h.dashboard)
}

// Indicators returns the extracted observables.
func (h *Hub) Indicators(ctx context.Context) ([]models.Indicator, backend.Source, error) {
	return Get(ctx, h.store, h.indicators)
}

// MitreMappings returns the ATT&CK technique aggregation.
func (h *Hub) MitreMappings(ctx context.Context) ([]models.MitreMapping, backend.Source, error) {
	return Get(ctx, h.store, h.mitre)
}

// LogStats returns ingest statistics. The pointer is nil when the backend
// reports no loaded data.
func (h *Hub) LogStats(ctx context.Context) (*models.LogStats, backend.Source, error) {
	return Get(ctx, h.store, h.logStats)
}

// Health returns the backend health payload, or the degraded-mode fixture.
func (h *Hub) Health(ctx context.Context) (models.Health, backend.Source, error) {
	return Get(ctx, h.store, h.health)
}
