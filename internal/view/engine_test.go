package view

import (
	"testing"

	"github.com/solomonneas/bro-hunter-sub000/internal/fixtures"
	"github.com/solomonneas/bro-hunter-sub000/internal/severity"
	"github.com/solomonneas/bro-hunter-sub000/pkg/models"
)

func testAlerts() []models.Alert {
	return []models.Alert{
		{Entity: "10.0.0.1", Score: 92, Confidence: 0.9, Techniques: []string{"T1071"}, Reasons: []string{"persistent outbound beacon"}, FirstSeen: 100, LastSeen: 400},
		{Entity: "10.0.0.2", Score: 71, Confidence: 0.8, Techniques: []string{"T1566"}, Reasons: []string{"phishing link fetch"}, FirstSeen: 200, LastSeen: 300},
		{Entity: "10.0.0.3", Score: 55, Confidence: 0.7, Indicators: []string{"198.51.100.7"}, FirstSeen: 50, LastSeen: 60},
		{Entity: "10.0.0.4", Score: 55, Confidence: 0.6, FirstSeen: 10, LastSeen: 20},
		{Entity: "srv-files", Score: 12, Confidence: 0.5, FirstSeen: 5, LastSeen: 6},
	}
}

func apply(records []models.Alert, f Filter, s Sort, p PageRequest) Result[models.Alert] {
	return Apply(records, f, s, p, AlertAdapter())
}

func TestApplySearchIsCaseInsensitiveSubstring(t *testing.T) {
	res := apply(testAlerts(), Filter{Search: "t1566", MaxScore: 100}, Sort{}, PageRequest{Page: 1, Size: 10})
	if res.TotalItems != 1 || res.Items[0].Entity != "10.0.0.2" {
		t.Fatalf("technique search failed: %+v", res)
	}

	res = apply(testAlerts(), Filter{Search: "PHISHING", MaxScore: 100}, Sort{}, PageRequest{Page: 1, Size: 10})
	if res.TotalItems != 1 || res.Items[0].Entity != "10.0.0.2" {
		t.Fatalf("reason search failed: %+v", res)
	}

	res = apply(testAlerts(), Filter{Search: "198.51.100", MaxScore: 100}, Sort{}, PageRequest{Page: 1, Size: 10})
	if res.TotalItems != 1 || res.Items[0].Entity != "10.0.0.3" {
		t.Fatalf("indicator search failed: %+v", res)
	}
}

func TestApplySeverityFilterUsesDerivedLevel(t *testing.T) {
	f := NewFilter()
	f.Severities = []severity.Level{severity.High}
	res := apply(testAlerts(), f, Sort{}, PageRequest{Page: 1, Size: 10})
	if res.TotalItems != 1 || res.Items[0].Entity != "10.0.0.2" {
		t.Fatalf("expected only the high-severity alert, got %+v", res)
	}
}

func TestApplyScoreRange(t *testing.T) {
	f := NewFilter()
	f.MinScore = 50
	f.MaxScore = 80
	res := apply(testAlerts(), f, Sort{}, PageRequest{Page: 1, Size: 10})
	if res.TotalItems != 3 {
		t.Fatalf("expected 3 alerts in [50,80], got %d", res.TotalItems)
	}
}

func TestApplySortDirectionsAndStability(t *testing.T) {
	res := apply(testAlerts(), NewFilter(), Sort{Key: "score", Desc: true}, PageRequest{Page: 1, Size: 10})
	if res.Items[0].Entity != "10.0.0.1" {
		t.Fatalf("desc sort: expected highest score first, got %s", res.Items[0].Entity)
	}
	// The two score-55 alerts keep their input order under either direction.
	if res.Items[2].Entity != "10.0.0.3" || res.Items[3].Entity != "10.0.0.4" {
		t.Fatalf("desc sort broke tie order: %+v", res.Items)
	}

	res = apply(testAlerts(), NewFilter(), Sort{Key: "score", Desc: false}, PageRequest{Page: 1, Size: 10})
	if res.Items[0].Entity != "srv-files" {
		t.Fatalf("asc sort: expected lowest score first, got %s", res.Items[0].Entity)
	}
	if res.Items[1].Entity != "10.0.0.3" || res.Items[2].Entity != "10.0.0.4" {
		t.Fatalf("asc sort broke tie order: %+v", res.Items)
	}
}

func TestApplyUnknownSortKeyKeepsInputOrder(t *testing.T) {
	res := apply(testAlerts(), NewFilter(), Sort{Key: "bogus", Desc: true}, PageRequest{Page: 1, Size: 10})
	for i, want := range []string{"10.0.0.1", "10.0.0.2", "10.0.0.3", "10.0.0.4", "srv-files"} {
		if res.Items[i].Entity != want {
			t.Fatalf("input order not preserved at %d: got %s", i, res.Items[i].Entity)
		}
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	records := testAlerts()
	apply(records, NewFilter(), Sort{Key: "score", Desc: false}, PageRequest{Page: 1, Size: 10})
	if records[0].Entity != "10.0.0.1" || records[4].Entity != "srv-files" {
		t.Fatalf("input slice was reordered")
	}
}

func TestApplyPaginationBounds(t *testing.T) {
	records := testAlerts()

	res := apply(records, NewFilter(), Sort{}, PageRequest{Page: 99, Size: 2})
	if res.Page != 3 || res.TotalPages != 3 {
		t.Fatalf("expected clamp to last page 3, got page %d of %d", res.Page, res.TotalPages)
	}
	if len(res.Items) != 1 {
		t.Fatalf("expected 1 item on the last page, got %d", len(res.Items))
	}

	res = apply(records, NewFilter(), Sort{}, PageRequest{Page: 0, Size: 2})
	if res.Page != 1 {
		t.Fatalf("expected page clamp to 1, got %d", res.Page)
	}

	res = apply(records, NewFilter(), Sort{}, PageRequest{Page: 2, Size: 2})
	if len(res.Items) != 2 || res.Items[0].Entity != "10.0.0.3" {
		t.Fatalf("expected the middle slice, got %+v", res.Items)
	}
}

func TestApplyEmptyInputIsSafeOnAnyPage(t *testing.T) {
	res := apply(nil, NewFilter(), Sort{Key: "score", Desc: true}, PageRequest{Page: 5, Size: 10})
	if len(res.Items) != 0 || res.TotalItems != 0 {
		t.Fatalf("expected empty result, got %+v", res)
	}
	if res.Page != 1 || res.TotalPages != 1 {
		t.Fatalf("expected page clamped to 1, got page %d of %d", res.Page, res.TotalPages)
	}
}

func TestApplyFilterMonotonicity(t *testing.T) {
	records := fixtures.Alerts()
	base := apply(records, NewFilter(), Sort{}, PageRequest{Page: 1, Size: 1000})

	tighter := []Filter{
		{Search: "t1071", MinScore: 0, MaxScore: 100},
		{Severities: []severity.Level{severity.Critical}, MinScore: 0, MaxScore: 100},
		{MinScore: 40, MaxScore: 100},
		{MinScore: 0, MaxScore: 60},
		{Search: "t1071", Severities: []severity.Level{severity.Critical, severity.High}, MinScore: 20, MaxScore: 95},
	}
	for i, f := range tighter {
		res := apply(records, f, Sort{}, PageRequest{Page: 1, Size: 1000})
		if res.TotalItems > base.TotalItems {
			t.Fatalf("filter %d grew the result set: %d > %d", i, res.TotalItems, base.TotalItems)
		}
	}
}

func TestApplyCriticalFilterOnFixtureAlerts(t *testing.T) {
	f := NewFilter()
	f.Severities = []severity.Level{severity.Critical}

	// Independent of sort order, the fixture set always has exactly 8
	// critical alerts.
	for _, s := range []Sort{{}, {Key: "score", Desc: true}, {Key: "entity", Desc: false}} {
		res := apply(fixtures.Alerts(), f, s, PageRequest{Page: 1, Size: 100})
		if res.TotalItems != 8 {
			t.Fatalf("sort %+v: expected 8 critical alerts, got %d", s, res.TotalItems)
		}
	}
}
