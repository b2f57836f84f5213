package backend

import (
	"context"
	"errors"
)

// Source tells consumers where a payload came from.
type Source string

const (
	SourceLive     Source = "live"
	SourceFallback Source = "fallback"
)

// FetchOrFallback runs fetch against the live backend unless the prober says
// it is down, in which case the fallback value is served without a network
// attempt. A failed fetch splits on the error taxonomy: a 4xx is a real
// client error and propagates; anything else (network failure, timeout, 5xx)
// marks the backend unavailable and serves the fallback.
func FetchOrFallback[T any](ctx context.Context, prober *Prober, fetch func(ctx context.Context) (T, error), fallback func() T) (T, Source, error) {
	if !prober.Available(ctx) {
		return fallback(), SourceFallback, nil
	}

	v, err := fetch(ctx)
	if err == nil {
		return v, SourceLive, nil
	}

	var se *StatusError
	if errors.As(err, &se) && se.IsClientError() {
		var zero T
		return zero, SourceLive, err
	}

	prober.MarkUnavailable()
	return fallback(), SourceFallback, nil
}
