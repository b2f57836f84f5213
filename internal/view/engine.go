// Package view is the derived-view pipeline shared by every list surface:
// free-text search, severity and score-range filters, one active sort key,
// and page slicing. It is pure over already-fetched record slices.
package view

import (
	"sort"
	"strings"

	"github.com/solomonneas/bro-hunter-sub000/internal/severity"
)

// Filter narrows a record set. Zero values are no-ops: empty search, empty
// severity set, and the full 0..100 score range keep everything.
type Filter struct {
	Search     string
	Severities []severity.Level
	MinScore   float64
	MaxScore   float64
}

// NewFilter returns a filter that keeps everything.
func NewFilter() Filter {
	return Filter{MinScore: 0, MaxScore: 100}
}

// Sort selects the active sort key and direction. An empty or unknown key
// preserves input order.
type Sort struct {
	Key  string
	Desc bool
}

// PageRequest selects the slice to return. Page is 1-based and clamped.
type PageRequest struct {
	Page int
	Size int
}

// Result is one page of a filtered record set, plus the totals a pager needs.
type Result[T any] struct {
	Items      []T `json:"data"`
	TotalItems int `json:"total_items"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalPages int `json:"total_pages"`
}

// Adapter tells the engine how to read one record type: which strings the
// free-text search scans, which score drives severity bucketing, and one
// ascending comparator per sortable key.
type Adapter[T any] struct {
	SearchText func(T) []string
	Score      func(T) float64
	Less       map[string]func(a, b T) bool
}

// Apply runs the pipeline: search, severity filter, score range, stable sort,
// page clamp and slice. The input slice is never mutated; ties keep their
// input order.
func Apply[T any](records []T, f Filter, s Sort, page PageRequest, ad Adapter[T]) Result[T] {
	kept := make([]T, 0, len(records))

	q := strings.ToLower(strings.TrimSpace(f.Search))
	for _, rec := range records {
		if q != "" && !matchesSearch(ad.SearchText(rec), q) {
			continue
		}
		score := ad.Score(rec)
		if len(f.Severities) > 0 && !levelIn(severity.Classify(score), f.Severities) {
			continue
		}
		if score < f.MinScore || score > f.MaxScore {
			continue
		}
		kept = append(kept, rec)
	}

	if s.Key != "" {
		if less, ok := ad.Less[s.Key]; ok {
			cmp := less
			if s.Desc {
				cmp = func(a, b T) bool { return less(b, a) }
			}
			sort.SliceStable(kept, func(i, j int) bool { return cmp(kept[i], kept[j]) })
		}
	}

	return paginate(kept, page)
}

func matchesSearch(fields []string, q string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

func levelIn(l severity.Level, set []severity.Level) bool {
	for _, s := range set {
		if s == l {
			return true
		}
	}
	return false
}

func paginate[T any](items []T, page PageRequest) Result[T] {
	size := page.Size
	if size < 1 {
		size = 25
	}

	total := len(items)
	totalPages := (total + size - 1) / size
	if totalPages < 1 {
		totalPages = 1
	}

	p := page.Page
	if p < 1 {
		p = 1
	}
	if p > totalPages {
		p = totalPages
	}

	start := (p - 1) * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}

	return Result[T]{
		Items:      items[start:end],
		TotalItems: total,
		Page:       p,
		PageSize:   size,
		TotalPages: totalPages,
	}
}
