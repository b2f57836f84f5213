package view

import (
	"strings"

	"github.com/solomonneas/bro-hunter-sub000/pkg/models"
)

// AlertAdapter reads alerts for the engine. Search covers the entity, every
// indicator, every MITRE technique ID, and the free-text reasons.
func AlertAdapter() Adapter[models.Alert] {
	return Adapter[models.Alert]{
		SearchText: func(a models.Alert) []string {
			fields := make([]string, 0, 2+len(a.Indicators)+len(a.Techniques)+len(a.Reasons))
			fields = append(fields, a.Entity, a.Category)
			fields = append(fields, a.Indicators...)
			fields = append(fields, a.Techniques...)
			fields = append(fields, a.Reasons...)
			return fields
		},
		Score: func(a models.Alert) float64 { return a.Score },
		Less: map[string]func(a, b models.Alert) bool{
			"score":      func(a, b models.Alert) bool { return a.Score < b.Score },
			"confidence": func(a, b models.Alert) bool { return a.Confidence < b.Confidence },
			"entity":     func(a, b models.Alert) bool { return strings.Compare(a.Entity, b.Entity) < 0 },
			"first_seen": func(a, b models.Alert) bool { return a.FirstSeen < b.FirstSeen },
			"last_seen":  func(a, b models.Alert) bool { return a.LastSeen < b.LastSeen },
		},
	}
}

// BeaconAdapter reads beacons for the engine.
func BeaconAdapter() Adapter[models.Beacon] {
	return Adapter[models.Beacon]{
		SearchText: func(b models.Beacon) []string {
			fields := make([]string, 0, 2+len(b.Techniques)+len(b.Reasons))
			fields = append(fields, b.SrcIP, b.DstIP)
			fields = append(fields, b.Techniques...)
			fields = append(fields, b.Reasons...)
			return fields
		},
		Score: func(b models.Beacon) float64 { return b.Score },
		Less: map[string]func(a, b models.Beacon) bool{
			"score":        func(a, b models.Beacon) bool { return a.Score < b.Score },
			"confidence":   func(a, b models.Beacon) bool { return a.Confidence < b.Confidence },
			"src_ip":       func(a, b models.Beacon) bool { return strings.Compare(a.SrcIP, b.SrcIP) < 0 },
			"dst_ip":       func(a, b models.Beacon) bool { return strings.Compare(a.DstIP, b.DstIP) < 0 },
			"conn_count":   func(a, b models.Beacon) bool { return a.ConnCount < b.ConnCount },
			"avg_interval": func(a, b models.Beacon) bool { return a.AvgIntervalSec < b.AvgIntervalSec },
			"last_seen":    func(a, b models.Beacon) bool { return a.LastSeen < b.LastSeen },
		},
	}
}

// DnsThreatAdapter reads DNS threats for the engine.
func DnsThreatAdapter() Adapter[models.DnsThreat] {
	return Adapter[models.DnsThreat]{
		SearchText: func(d models.DnsThreat) []string {
			fields := make([]string, 0, 2+len(d.Indicators)+len(d.Reasons))
			fields = append(fields, d.Domain, d.ThreatType)
			fields = append(fields, d.Indicators...)
			fields = append(fields, d.Reasons...)
			return fields
		},
		Score: func(d models.DnsThreat) float64 { return d.Score },
		Less: map[string]func(a, b models.DnsThreat) bool{
			"score":       func(a, b models.DnsThreat) bool { return a.Score < b.Score },
			"confidence":  func(a, b models.DnsThreat) bool { return a.Confidence < b.Confidence },
			"domain":      func(a, b models.DnsThreat) bool { return strings.Compare(a.Domain, b.Domain) < 0 },
			"query_count": func(a, b models.DnsThreat) bool { return a.QueryCount < b.QueryCount },
			"last_seen":   func(a, b models.DnsThreat) bool { return a.LastSeen < b.LastSeen },
		},
	}
}

// IndicatorAdapter reads indicators for the engine.
func IndicatorAdapter() Adapter[models.Indicator] {
	return Adapter[models.Indicator]{
		SearchText: func(i models.Indicator) []string {
			return []string{i.Value, i.Kind, i.Entity}
		},
		Score: func(i models.Indicator) float64 { return i.Score },
		Less: map[string]func(a, b models.Indicator) bool{
			"score":     func(a, b models.Indicator) bool { return a.Score < b.Score },
			"value":     func(a, b models.Indicator) bool { return strings.Compare(a.Value, b.Value) < 0 },
			"last_seen": func(a, b models.Indicator) bool { return a.LastSeen < b.LastSeen },
		},
	}
}
