package backend

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/solomonneas/bro-hunter-sub000/internal/metrics"
)

// DefaultProbeTTL is how long one reachability answer stays valid.
const DefaultProbeTTL = 30 * time.Second

// ProbeTarget is the reachability check the prober runs when its cache is
// stale. The analysis Client satisfies it.
type ProbeTarget interface {
	Probe(ctx context.Context) error
}

// Prober keeps a TTL'd answer to "is the backend reachable" so that resource
// fetches do not probe on every call. The zero state is unknown: the first
// Available call always probes.
type Prober struct {
	target ProbeTarget
	ttl    time.Duration
	logger *zap.Logger
	met    *metrics.Metrics

	mu        sync.Mutex
	state     *bool
	checkedAt time.Time

	now func() time.Time
}

// NewProber creates a prober over the given target.
func NewProber(target ProbeTarget, ttl time.Duration, logger *zap.Logger, met *metrics.Metrics) *Prober {
	if ttl <= 0 {
		ttl = DefaultProbeTTL
	}
	return &Prober{
		target: target,
		ttl:    ttl,
		logger: logger.Named("prober"),
		met:    met,
		now:    time.Now,
	}
}

// Available reports backend reachability, answering from cache while it is
// fresh. A probe failure is recorded as unavailable, never returned as an
// error.
func (p *Prober) Available(ctx context.Context) bool {
	p.mu.Lock()
	if p.state != nil && p.now().Sub(p.checkedAt) < p.ttl {
		v := *p.state
		p.mu.Unlock()
		return v
	}
	p.mu.Unlock()

	err := p.target.Probe(ctx)
	available := err == nil
	if err != nil {
		p.logger.Info("backend probe failed", zap.Error(err))
	}
	p.met.ObserveProbe(available)

	p.mu.Lock()
	p.state = &available
	p.checkedAt = p.now()
	p.mu.Unlock()
	return available
}

// MarkUnavailable force-writes an unavailable answer with a fresh timestamp.
// Used when a resource fetch just failed: repeat calls inside the TTL window
// then short-circuit without touching the network.
func (p *Prober) MarkUnavailable() {
	v := false
	p.mu.Lock()
	p.state = &v
	p.checkedAt = p.now()
	p.mu.Unlock()
}
