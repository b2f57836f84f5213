package query

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/solomonneas/bro-hunter-sub000/internal/backend"
)

type okTarget struct{}

func (okTarget) Probe(ctx context.Context) error { return nil }

func newTestStore() (*Store, *time.Time) {
	prober := backend.NewProber(okTarget{}, 30*time.Second, zap.NewNop(), nil)
	s := NewStore(prober, nil, zap.NewNop())
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	return s, &now
}

func intResource(key string, stale time.Duration, fetch func(ctx context.Context) (int, error)) Resource[int] {
	return Resource[int]{
		Key:        key,
		StaleAfter: stale,
		Fetch:      fetch,
		Fallback:   func(ctx context.Context) int { return -1 },
	}
}

func TestGetCachesWithinStalenessWindow(t *testing.T) {
	s, _ := newTestStore()

	fetches := 0
	r := intResource("alerts", 30*time.Second, func(ctx context.Context) (int, error) {
		fetches++
		return fetches, nil
	})

	for i := 0; i < 4; i++ {
		v, source, err := Get(context.Background(), s, r)
		if err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
		if v != 1 || source != backend.SourceLive {
			t.Fatalf("call %d: got (%d, %s), want (1, live)", i, v, source)
		}
	}
	if fetches != 1 {
		t.Fatalf("expected 1 fetch while fresh, got %d", fetches)
	}
}

func TestGetRefetchesOnceStale(t *testing.T) {
	s, now := newTestStore()

	fetches := 0
	r := intResource("alerts", 30*time.Second, func(ctx context.Context) (int, error) {
		fetches++
		return fetches, nil
	})

	Get(context.Background(), s, r)
	*now = now.Add(31 * time.Second)

	v, _, err := Get(context.Background(), s, r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 2 || fetches != 2 {
		t.Fatalf("expected a refetch after staleness, got value %d with %d fetches", v, fetches)
	}
}

func TestGetDeduplicatesConcurrentFetches(t *testing.T) {
	s, _ := newTestStore()

	release := make(chan struct{})
	var fetches int
	var mu sync.Mutex
	r := intResource("beacons", 30*time.Second, func(ctx context.Context) (int, error) {
		mu.Lock()
		fetches++
		mu.Unlock()
		<-release
		return 10, nil
	})

	const consumers = 4
	results := make(chan int, consumers)
	var wg sync.WaitGroup
	for i := 0; i < consumers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, _, err := Get(context.Background(), s, r)
			if err != nil {
				t.Errorf("concurrent get: %v", err)
				return
			}
			results <- v
		}()
	}

	// Let the consumers pile up on the in-flight fetch, then release it.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()
	close(results)

	for v := range results {
		if v != 10 {
			t.Fatalf("expected every consumer to observe 10, got %d", v)
		}
	}
	mu.Lock()
	defer mu.Unlock()
	if fetches != 1 {
		t.Fatalf("expected 1 underlying fetch for %d consumers, got %d", consumers, fetches)
	}
}

func TestGetDoesNotCacheClientErrors(t *testing.T) {
	s, _ := newTestStore()

	fetches := 0
	r := intResource("detail", 30*time.Second, func(ctx context.Context) (int, error) {
		fetches++
		return 0, &backend.StatusError{Code: 404}
	})

	for i := 0; i < 2; i++ {
		_, _, err := Get(context.Background(), s, r)
		var se *backend.StatusError
		if !errors.As(err, &se) {
			t.Fatalf("call %d: expected StatusError, got %v", i, err)
		}
	}
	if fetches != 2 {
		t.Fatalf("expected client errors to bypass the cache, got %d fetches", fetches)
	}
}

func TestRefetchInvalidatesFirst(t *testing.T) {
	s, _ := newTestStore()

	fetches := 0
	r := intResource("mitre", time.Hour, func(ctx context.Context) (int, error) {
		fetches++
		return fetches, nil
	})

	Get(context.Background(), s, r)
	v, _, err := Refetch(context.Background(), s, r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 2 || fetches != 2 {
		t.Fatalf("expected refetch to hit the backend again, got value %d with %d fetches", v, fetches)
	}
}
