// Package query caches fetched resources per key, enforces per-resource
// staleness windows, and collapses concurrent fetches for the same key into
// one backend call.
package query

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/solomonneas/bro-hunter-sub000/internal/backend"
	"github.com/solomonneas/bro-hunter-sub000/internal/metrics"
)

// Resource binds a cache key to a live fetch and a fallback producer.
type Resource[T any] struct {
	Key        string
	StaleAfter time.Duration
	Fetch      func(ctx context.Context) (T, error)
	Fallback   func(ctx context.Context) T
}

// Store is the shared resource cache. All mutation happens under one mutex;
// the fetch itself runs outside it so slow backends never block cache reads
// for other keys.
type Store struct {
	prober *backend.Prober
	met    *metrics.Metrics
	logger *zap.Logger

	mu       sync.Mutex
	entries  map[string]entry
	inflight map[string]*flight

	now func() time.Time
}

type entry struct {
	value     any
	source    backend.Source
	fetchedAt time.Time
}

type flight struct {
	done   chan struct{}
	value  any
	source backend.Source
	err    error
}

// NewStore creates an empty resource cache.
func NewStore(prober *backend.Prober, met *metrics.Metrics, logger *zap.Logger) *Store {
	return &Store{
		prober:   prober,
		met:      met,
		logger:   logger.Named("query"),
		entries:  make(map[string]entry),
		inflight: make(map[string]*flight),
		now:      time.Now,
	}
}

// Invalidate drops the cached value for key, forcing the next Get to fetch.
func (s *Store) Invalidate(key string) {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}

// Get returns the resource value, from cache while fresh. When another fetch
// for the same key is already running, the caller joins it and observes the
// same result, so the fetch function runs once per staleness window rather
// than once per consumer.
func Get[T any](ctx context.Context, s *Store, r Resource[T]) (T, backend.Source, error) {
	s.mu.Lock()
	if e, ok := s.entries[r.Key]; ok && s.now().Sub(e.fetchedAt) < r.StaleAfter {
		s.mu.Unlock()
		return e.value.(T), e.source, nil
	}
	if f, ok := s.inflight[r.Key]; ok {
		s.mu.Unlock()
		return join[T](ctx, f)
	}
	f := &flight{done: make(chan struct{})}
	s.inflight[r.Key] = f
	s.mu.Unlock()

	value, source, err := backend.FetchOrFallback(ctx, s.prober, r.Fetch, func() T {
		return r.Fallback(ctx)
	})
	if err == nil {
		s.met.ObserveFetch(r.Key, string(source))
	} else {
		s.logger.Warn("resource fetch failed", zap.String("resource", r.Key), zap.Error(err))
	}

	s.mu.Lock()
	if err == nil {
		s.entries[r.Key] = entry{value: value, source: source, fetchedAt: s.now()}
	}
	delete(s.inflight, r.Key)
	f.value, f.source, f.err = value, source, err
	s.mu.Unlock()
	close(f.done)

	return value, source, err
}

// Refetch invalidates the key and fetches it again.
func Refetch[T any](ctx context.Context, s *Store, r Resource[T]) (T, backend.Source, error) {
	s.Invalidate(r.Key)
	return Get(ctx, s, r)
}

func join[T any](ctx context.Context, f *flight) (T, backend.Source, error) {
	select {
	case <-f.done:
	case <-ctx.Done():
		var zero T
		return zero, backend.SourceFallback, ctx.Err()
	}
	if f.err != nil {
		var zero T
		return zero, f.source, f.err
	}
	return f.value.(T), f.source, nil
}
