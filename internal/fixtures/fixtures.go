// Package fixtures produces the deterministic synthetic dataset served when
// the analysis backend is unreachable. Every derived value is driven by a
// seed taken from the record's own identity, never by wall-clock time or an
// ambient random source, so repeated generations are identical.
package fixtures

import (
	"fmt"
	"math"
	"time"

	"github.com/solomonneas/bro-hunter-sub000/internal/severity"
	"github.com/solomonneas/bro-hunter-sub000/pkg/models"
)

// BaseTime is the frozen reference instant for all fixture timestamps.
var BaseTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

const (
	alertCount  = 55
	beaconCount = 45
	dnsCount    = 30

	histogramBins = 24
)

var alertReasons = []string{
	"persistent outbound connections to rare external host",
	"download of executable content over plain HTTP",
	"connection attempts on closed ports",
	"long-lived TLS session with invalid certificate chain",
	"unusual volume of DNS queries for new domains",
	"SMB traffic to external address space",
	"repeated authentication failures followed by success",
}

var alertTechniques = []string{
	"T1071", "T1090", "T1568", "T1021", "T1046", "T1566", "T1059", "T1105",
}

var alertCategories = []string{"beaconing", "exfiltration", "scanning", "lateral-movement"}

var dnsThreatTypes = []string{"dga", "tunneling", "fast-flux"}

var dnsReasons = []string{
	"high entropy subdomain labels",
	"query volume far above peer baseline",
	"TXT record responses with encoded payloads",
	"domain registered within the last week",
	"NXDOMAIN ratio above threshold",
}

var indicatorKinds = []string{"ip", "domain", "ja3", "uri"}

// scoreForRank spreads scores downward from a fixed top so list fixtures have
// a stable severity mix: exactly 8 of the 55 alerts land at or above the
// critical breakpoint.
func scoreForRank(rank int, top, step float64) float64 {
	v := top - float64(rank)*step
	return math.Round(v*100) / 100
}

// Alerts returns the synthetic alert set, highest score first.
func Alerts() []models.Alert {
	out := make([]models.Alert, 0, alertCount)
	for i := 0; i < alertCount; i++ {
		entity := fmt.Sprintf("10.42.%d.%d", i/16, 10+(i*11)%240)
		g := NewLCG(Seed(entity))

		firstSeen := BaseTime.Unix() - int64(3600+g.Intn(72*3600))
		lastSeen := firstSeen + int64(600+g.Intn(36*3600))
		if lastSeen > BaseTime.Unix() {
			lastSeen = BaseTime.Unix()
		}

		nReasons := 1 + g.Intn(3)
		reasons := make([]string, 0, nReasons)
		for r := 0; r < nReasons; r++ {
			reasons = append(reasons, alertReasons[(g.Intn(len(alertReasons)))])
		}

		a := models.Alert{
			Entity:     entity,
			Category:   alertCategories[g.Intn(len(alertCategories))],
			Score:      scoreForRank(i, 97, 1.66),
			Confidence: math.Round((0.55+g.Float()*0.44)*100) / 100,
			Reasons:    dedupe(reasons),
			Indicators: []string{fmt.Sprintf("198.51.100.%d", 1+g.Intn(254))},
			Techniques: []string{
				alertTechniques[g.Intn(len(alertTechniques))],
				alertTechniques[g.Intn(len(alertTechniques))],
			},
			FirstSeen: firstSeen,
			LastSeen:  lastSeen,
		}
		a.Techniques = dedupe(a.Techniques)
		a.Normalize()
		out = append(out, a)
	}
	return out
}

// Beacons returns the synthetic beacon set, highest score first.
func Beacons() []models.Beacon {
	out := make([]models.Beacon, 0, beaconCount)
	for i := 0; i < beaconCount; i++ {
		src := fmt.Sprintf("10.42.%d.%d", i/12, 20+(i*13)%220)
		dst := fmt.Sprintf("203.0.113.%d", 1+(i*17)%254)
		identity := src + ">" + dst
		g := NewLCG(Seed(identity))

		firstSeen := BaseTime.Unix() - int64(6*3600+g.Intn(96*3600))
		lastSeen := firstSeen + int64(3600+g.Intn(48*3600))
		if lastSeen > BaseTime.Unix() {
			lastSeen = BaseTime.Unix()
		}

		b := models.Beacon{
			SrcIP:             src,
			DstIP:             dst,
			DstPort:           []int{443, 8443, 80, 53}[g.Intn(4)],
			Score:             scoreForRank(i, 96, 1.9),
			Confidence:        math.Round((0.5+g.Float()*0.49)*100) / 100,
			ConnCount:         200 + g.Intn(4800),
			AvgIntervalSec:    math.Round((30+g.Float()*570)*10) / 10,
			IntervalHistogram: IntervalHistogram(identity, histogramBins),
			Reasons:           []string{"low interval jitter", "consistent payload size"},
			Techniques:        []string{"T1071", "T1573"},
			FirstSeen:         firstSeen,
			LastSeen:          lastSeen,
		}
		b.Normalize()
		out = append(out, b)
	}
	return out
}

// DnsThreats returns the synthetic DNS threat set, highest score first.
func DnsThreats() []models.DnsThreat {
	out := make([]models.DnsThreat, 0, dnsCount)
	for i := 0; i < dnsCount; i++ {
		domain := fmt.Sprintf("%s.example-%d.net", dgaLabel(i), i)
		g := NewLCG(Seed(domain))

		firstSeen := BaseTime.Unix() - int64(2*3600+g.Intn(48*3600))
		lastSeen := firstSeen + int64(1800+g.Intn(24*3600))
		if lastSeen > BaseTime.Unix() {
			lastSeen = BaseTime.Unix()
		}

		nReasons := 1 + g.Intn(2)
		reasons := make([]string, 0, nReasons)
		for r := 0; r < nReasons; r++ {
			reasons = append(reasons, dnsReasons[g.Intn(len(dnsReasons))])
		}

		d := models.DnsThreat{
			Domain:         domain,
			ThreatType:     dnsThreatTypes[g.Intn(len(dnsThreatTypes))],
			Score:          scoreForRank(i, 94, 2.4),
			Confidence:     math.Round((0.5+g.Float()*0.45)*100) / 100,
			QueryCount:     100 + g.Intn(9900),
			SubdomainCount: 1 + g.Intn(120),
			Reasons:        dedupe(reasons),
			Indicators:     []string{fmt.Sprintf("192.0.2.%d", 1+g.Intn(254))},
			FirstSeen:      firstSeen,
			LastSeen:       lastSeen,
		}
		d.Normalize()
		out = append(out, d)
	}
	return out
}

// dgaLabel builds a stable pseudo-random label for synthetic DGA domains.
func dgaLabel(i int) string {
	const letters = "abcdefghijklmnopqrstuvwxyz"
	g := NewLCG(Seed(fmt.Sprintf("dns-label-%d", i)))
	n := 8 + g.Intn(8)
	buf := make([]byte, n)
	for j := range buf {
		buf[j] = letters[g.Intn(len(letters))]
	}
	return string(buf)
}

// Timeline returns hourly activity buckets ending at BaseTime.
func Timeline(hours int) []models.TimelinePoint {
	if hours <= 0 {
		hours = 24
	}
	out := make([]models.TimelinePoint, 0, hours)
	for h := hours - 1; h >= 0; h-- {
		ts := BaseTime.Add(-time.Duration(h) * time.Hour).Unix()
		g := NewLCG(Seed(fmt.Sprintf("timeline-%d", ts)))
		out = append(out, models.TimelinePoint{
			Timestamp:   ts,
			AlertCount:  g.Intn(12),
			BeaconCount: g.Intn(8),
			DnsCount:    g.Intn(6),
			MaxScore:    math.Round(g.Float()*10000) / 100,
		})
	}
	return out
}

// SeverityDistribution counts the synthetic alerts per severity level, so the
// distribution chart always agrees with the alert list it sits next to.
func SeverityDistribution() []models.SeverityBucket {
	counts := make(map[severity.Level]int)
	for _, a := range Alerts() {
		counts[severity.Classify(a.Score)]++
	}
	out := make([]models.SeverityBucket, 0, len(severity.Levels()))
	for _, lvl := range severity.Levels() {
		out = append(out, models.SeverityBucket{Level: string(lvl), Count: counts[lvl]})
	}
	return out
}

// Dashboard derives headline stats from the synthetic record sets.
func Dashboard() models.DashboardStats {
	alerts := Alerts()
	entities := make(map[string]struct{}, len(alerts))
	critical := 0
	scoreSum := 0.0
	for _, a := range alerts {
		entities[a.Entity] = struct{}{}
		scoreSum += a.Score
		if severity.Classify(a.Score) == severity.Critical {
			critical++
		}
	}
	avg := 0.0
	if len(alerts) > 0 {
		avg = math.Round(scoreSum/float64(len(alerts))*100) / 100
	}
	return models.DashboardStats{
		TotalAlerts:       len(alerts),
		CriticalAlerts:    critical,
		ActiveBeacons:     beaconCount,
		DnsThreats:        dnsCount,
		EntitiesMonitored: len(entities),
		AvgScore:          avg,
	}
}

// Indicators extracts the observables referenced by the synthetic alerts.
func Indicators() []models.Indicator {
	alerts := Alerts()
	out := make([]models.Indicator, 0, len(alerts))
	for i, a := range alerts {
		g := NewLCG(Seed("indicator-" + a.Entity))
		out = append(out, models.Indicator{
			Value:    a.Indicators[0],
			Kind:     indicatorKinds[g.Intn(len(indicatorKinds))],
			Entity:   a.Entity,
			Score:    scoreForRank(i, 92, 1.5),
			LastSeen: a.LastSeen,
		})
	}
	return out
}

// MitreMappings aggregates the synthetic alerts by ATT&CK technique.
func MitreMappings() []models.MitreMapping {
	names := map[string][2]string{
		"T1071": {"Application Layer Protocol", "command-and-control"},
		"T1090": {"Proxy", "command-and-control"},
		"T1568": {"Dynamic Resolution", "command-and-control"},
		"T1021": {"Remote Services", "lateral-movement"},
		"T1046": {"Network Service Discovery", "discovery"},
		"T1566": {"Phishing", "initial-access"},
		"T1059": {"Command and Scripting Interpreter", "execution"},
		"T1105": {"Ingress Tool Transfer", "command-and-control"},
	}

	byTechnique := make(map[string][]string)
	for _, a := range Alerts() {
		for _, t := range a.Techniques {
			byTechnique[t] = append(byTechnique[t], a.Entity)
		}
	}

	out := make([]models.MitreMapping, 0, len(alertTechniques))
	for _, id := range alertTechniques {
		entities := byTechnique[id]
		if len(entities) == 0 {
			continue
		}
		meta := names[id]
		out = append(out, models.MitreMapping{
			TechniqueID:   id,
			TechniqueName: meta[0],
			Tactic:        meta[1],
			AlertCount:    len(entities),
			Entities:      dedupe(entities),
		})
	}
	return out
}

// LogStats returns fixed ingest statistics for the data page.
func LogStats() models.LogStats {
	return models.LogStats{
		TotalRecords: 18_423_077,
		TotalBytes:   6_871_947_674,
		OldestRecord: BaseTime.Add(-7 * 24 * time.Hour).Unix(),
		NewestRecord: BaseTime.Unix(),
		BySource: map[string]int64{
			"conn": 14_752_003,
			"dns":  3_214_880,
			"http": 391_227,
			"ssl":  64_967,
		},
	}
}

// HealthStatus returns the degraded-mode health payload.
func HealthStatus() models.Health {
	return models.Health{Status: "fixture", Version: "offline"}
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := in[:0]
	for _, v := range in {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
