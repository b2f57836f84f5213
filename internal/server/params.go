package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/solomonneas/bro-hunter-sub000/internal/severity"
	"github.com/solomonneas/bro-hunter-sub000/internal/view"
)

const (
	defaultPageSize = 25
	maxPageSize     = 500
)

// parseListParams reads the shared query parameters for list endpoints:
// q, severity (repeatable or comma-separated), min_score, max_score, sort,
// order, page, page_size. A newly chosen sort key defaults to descending.
func parseListParams(r *http.Request, defaultSortKey string) (view.Filter, view.Sort, view.PageRequest) {
	q := r.URL.Query()

	f := view.NewFilter()
	f.Search = q.Get("q")
	for _, raw := range q["severity"] {
		for _, part := range strings.Split(raw, ",") {
			if lvl, ok := severity.Parse(strings.TrimSpace(part)); ok {
				f.Severities = append(f.Severities, lvl)
			}
		}
	}
	if v, err := strconv.ParseFloat(q.Get("min_score"), 64); err == nil {
		f.MinScore = severity.Clamp(v)
	}
	if v, err := strconv.ParseFloat(q.Get("max_score"), 64); err == nil {
		f.MaxScore = severity.Clamp(v)
	}

	srt := view.Sort{Key: q.Get("sort"), Desc: true}
	if srt.Key == "" {
		srt.Key = defaultSortKey
	}
	if strings.EqualFold(q.Get("order"), "asc") {
		srt.Desc = false
	}

	page := view.PageRequest{Page: 1, Size: defaultPageSize}
	if v, err := strconv.Atoi(q.Get("page")); err == nil && v > 0 {
		page.Page = v
	}
	if v, err := strconv.Atoi(q.Get("page_size")); err == nil && v > 0 {
		page.Size = v
		if page.Size > maxPageSize {
			page.Size = maxPageSize
		}
	}

	return f, srt, page
}
