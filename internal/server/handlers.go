package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/solomonneas/bro-hunter-sub000/internal/backend"
	"github.com/solomonneas/bro-hunter-sub000/internal/view"
)

// listResponse is one derived page plus the data source label, so dashboard
// variants can flag degraded (fixture or snapshot) content.
type listResponse[T any] struct {
	view.Result[T]
	Source string `json:"source"`
}

// valueResponse wraps a single non-list payload.
type valueResponse struct {
	Data   any    `json:"data"`
	Source string `json:"source"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleThreats(w http.ResponseWriter, r *http.Request) {
	serveList(s, w, r, s.hub.Threats, view.AlertAdapter(), "score")
}

func (s *Server) handleBeacons(w http.ResponseWriter, r *http.Request) {
	serveList(s, w, r, s.hub.Beacons, view.BeaconAdapter(), "score")
}

func (s *Server) handleDnsThreats(w http.ResponseWriter, r *http.Request) {
	serveList(s, w, r, s.hub.DnsThreats, view.DnsThreatAdapter(), "score")
}

func (s *Server) handleIndicators(w http.ResponseWriter, r *http.Request) {
	serveList(s, w, r, s.hub.Indicators, view.IndicatorAdapter(), "score")
}

func (s *Server) handleThreatDetail(w http.ResponseWriter, r *http.Request) {
	entity := chi.URLParam(r, "entity")
	alert, source, err := s.hub.ThreatDetail(r.Context(), entity)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if alert == nil {
		s.writeJSON(w, http.StatusNotFound, errorResponse{Error: "unknown entity: " + entity})
		return
	}
	s.writeJSON(w, http.StatusOK, valueResponse{Data: alert, Source: string(source)})
}

func (s *Server) handleTimeline(w http.ResponseWriter, r *http.Request) {
	serveValue(s, w, r, s.hub.Timeline)
}

func (s *Server) handleSeverityDistribution(w http.ResponseWriter, r *http.Request) {
	serveValue(s, w, r, s.hub.SeverityDistribution)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	serveValue(s, w, r, s.hub.Dashboard)
}

func (s *Server) handleMitre(w http.ResponseWriter, r *http.Request) {
	serveValue(s, w, r, s.hub.MitreMappings)
}

func (s *Server) handleLogStats(w http.ResponseWriter, r *http.Request) {
	serveValue(s, w, r, s.hub.LogStats)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	health, source, err := s.hub.Health(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, valueResponse{Data: health, Source: string(source)})
}

// serveList fetches a record set through the hub and runs the view pipeline
// over it with the request's filter, sort, and pagination parameters.
func serveList[T any](s *Server, w http.ResponseWriter, r *http.Request, fetch func(ctx context.Context) ([]T, backend.Source, error), ad view.Adapter[T], defaultSortKey string) {
	records, source, err := fetch(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}

	f, srt, page := parseListParams(r, defaultSortKey)
	result := view.Apply(records, f, srt, page, ad)
	s.writeJSON(w, http.StatusOK, listResponse[T]{Result: result, Source: string(source)})
}

func serveValue[T any](s *Server, w http.ResponseWriter, r *http.Request, fetch func(ctx context.Context) (T, backend.Source, error)) {
	v, source, err := fetch(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, valueResponse{Data: v, Source: string(source)})
}

// writeError maps backend client errors onto the same status they carried
// upstream; everything else is an internal error. Transient backend failures
// never reach this path, they degrade to fallback data instead.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	var se *backend.StatusError
	if errors.As(err, &se) && se.IsClientError() {
		s.writeJSON(w, se.Code, errorResponse{Error: se.Error()})
		return
	}
	s.logger.Error("request failed", zap.Error(err))
	s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", zap.Error(err))
	}
}
