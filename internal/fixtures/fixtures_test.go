package fixtures

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/solomonneas/bro-hunter-sub000/internal/severity"
)

func TestAlertsAreDeterministic(t *testing.T) {
	first, err := json.Marshal(Alerts())
	if err != nil {
		t.Fatalf("marshal first generation: %v", err)
	}
	second, err := json.Marshal(Alerts())
	if err != nil {
		t.Fatalf("marshal second generation: %v", err)
	}
	if string(first) != string(second) {
		t.Fatalf("two alert generations differ")
	}
}

func TestAlertSeverityMix(t *testing.T) {
	alerts := Alerts()
	if len(alerts) != 55 {
		t.Fatalf("expected 55 alerts, got %d", len(alerts))
	}
	if alerts[0].Score != 97 {
		t.Fatalf("expected top score 97, got %v", alerts[0].Score)
	}
	if got := severity.Classify(alerts[0].Score); got != severity.Critical {
		t.Fatalf("classify(97) = %s, want critical", got)
	}

	critical := 0
	for _, a := range alerts {
		if severity.Classify(a.Score) == severity.Critical {
			critical++
		}
	}
	if critical != 8 {
		t.Fatalf("expected exactly 8 critical alerts, got %d", critical)
	}
}

func TestAlertInvariants(t *testing.T) {
	for _, a := range Alerts() {
		if a.Score < 0 || a.Score > 100 {
			t.Fatalf("alert %s score out of range: %v", a.Entity, a.Score)
		}
		if a.Confidence < 0 || a.Confidence > 1 {
			t.Fatalf("alert %s confidence out of range: %v", a.Entity, a.Confidence)
		}
		if a.FirstSeen > a.LastSeen {
			t.Fatalf("alert %s first_seen after last_seen", a.Entity)
		}
		if a.LastSeen > BaseTime.Unix() {
			t.Fatalf("alert %s last_seen after the frozen base time", a.Entity)
		}
	}
}

func TestIntervalHistogramDependsOnlyOnIdentity(t *testing.T) {
	a := IntervalHistogram("10.42.0.10>203.0.113.1", 24)
	b := IntervalHistogram("10.42.0.10>203.0.113.1", 24)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("same identity produced different histograms")
	}

	c := IntervalHistogram("10.42.0.10>203.0.113.2", 24)
	if reflect.DeepEqual(a, c) {
		t.Fatalf("different identities produced identical histograms")
	}
}

func TestBeaconHistogramsMatchStandaloneGeneration(t *testing.T) {
	for _, b := range Beacons() {
		want := IntervalHistogram(b.SrcIP+">"+b.DstIP, len(b.IntervalHistogram))
		if !reflect.DeepEqual(b.IntervalHistogram, want) {
			t.Fatalf("beacon %s>%s histogram is not derived from its identity", b.SrcIP, b.DstIP)
		}
	}
}

func TestSeverityDistributionAgreesWithAlerts(t *testing.T) {
	dist := SeverityDistribution()

	total := 0
	counts := map[string]int{}
	for _, bucket := range dist {
		total += bucket.Count
		counts[bucket.Level] = bucket.Count
	}
	if total != len(Alerts()) {
		t.Fatalf("distribution total %d != alert count %d", total, len(Alerts()))
	}
	if counts[string(severity.Critical)] != 8 {
		t.Fatalf("distribution critical bucket = %d, want 8", counts[string(severity.Critical)])
	}
}

func TestDashboardDerivesFromRecordSets(t *testing.T) {
	stats := Dashboard()
	if stats.TotalAlerts != 55 {
		t.Fatalf("dashboard total alerts = %d, want 55", stats.TotalAlerts)
	}
	if stats.CriticalAlerts != 8 {
		t.Fatalf("dashboard critical alerts = %d, want 8", stats.CriticalAlerts)
	}
	if stats.ActiveBeacons != len(Beacons()) {
		t.Fatalf("dashboard beacons = %d, want %d", stats.ActiveBeacons, len(Beacons()))
	}
	if stats.AvgScore <= 0 || stats.AvgScore > 100 {
		t.Fatalf("dashboard avg score out of range: %v", stats.AvgScore)
	}
}

func TestTimelineEndsAtBaseTime(t *testing.T) {
	points := Timeline(24)
	if len(points) != 24 {
		t.Fatalf("expected 24 points, got %d", len(points))
	}
	last := points[len(points)-1]
	if last.Timestamp != BaseTime.Unix() {
		t.Fatalf("last point at %d, want %d", last.Timestamp, BaseTime.Unix())
	}
	for i := 1; i < len(points); i++ {
		if points[i].Timestamp <= points[i-1].Timestamp {
			t.Fatalf("timeline not strictly increasing at index %d", i)
		}
	}
}

func TestMitreMappingsCoverAlertTechniques(t *testing.T) {
	seen := map[string]bool{}
	for _, m := range MitreMappings() {
		if m.AlertCount < 1 {
			t.Fatalf("mapping %s has no alerts", m.TechniqueID)
		}
		if m.TechniqueName == "" || m.Tactic == "" {
			t.Fatalf("mapping %s missing metadata", m.TechniqueID)
		}
		seen[m.TechniqueID] = true
	}
	for _, a := range Alerts() {
		for _, tech := range a.Techniques {
			if !seen[tech] {
				t.Fatalf("alert technique %s has no mapping", tech)
			}
		}
	}
}
