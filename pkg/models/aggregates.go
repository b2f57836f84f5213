package models

// TimelinePoint is one bucket of hunt activity over time.
type TimelinePoint struct {
	Timestamp   int64   `json:"timestamp"`
	AlertCount  int     `json:"alert_count"`
	BeaconCount int     `json:"beacon_count"`
	DnsCount    int     `json:"dns_count"`
	MaxScore    float64 `json:"max_score"`
}

// SeverityBucket counts records at one severity level.
type SeverityBucket struct {
	Level string `json:"level"`
	Count int    `json:"count"`
}

// DashboardStats is the headline summary for the overview cards.
type DashboardStats struct {
	TotalAlerts       int     `json:"total_alerts"`
	CriticalAlerts    int     `json:"critical_alerts"`
	ActiveBeacons     int     `json:"active_beacons"`
	DnsThreats        int     `json:"dns_threats"`
	EntitiesMonitored int     `json:"entities_monitored"`
	AvgScore          float64 `json:"avg_score"`
}

// Indicator is a standalone observable extracted from scored records.
type Indicator struct {
	Value    string  `json:"value"`
	Kind     string  `json:"kind"`
	Entity   string  `json:"entity,omitempty"`
	Score    float64 `json:"score"`
	LastSeen int64   `json:"last_seen"`
}

// MitreMapping aggregates alerts under one ATT&CK technique.
type MitreMapping struct {
	TechniqueID   string   `json:"technique_id"`
	TechniqueName string   `json:"technique_name"`
	Tactic        string   `json:"tactic"`
	AlertCount    int      `json:"alert_count"`
	Entities      []string `json:"entities,omitempty"`
}

// LogStats summarizes the ingested log corpus the analysis ran over.
type LogStats struct {
	TotalRecords int64            `json:"total_records"`
	TotalBytes   int64            `json:"total_bytes"`
	OldestRecord int64            `json:"oldest_record"`
	NewestRecord int64            `json:"newest_record"`
	BySource     map[string]int64 `json:"by_source,omitempty"`
}

// Health is the backend's probe payload.
type Health struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

// ThreatsResponse wraps the alert list endpoint payload.
type ThreatsResponse struct {
	Threats []Alert `json:"threats"`
}

// ThreatDetailResponse wraps the single-alert endpoint payload.
type ThreatDetailResponse struct {
	Data *Alert `json:"data,omitempty"`
}

// IndicatorsResponse wraps the indicator list endpoint payload.
type IndicatorsResponse struct {
	Indicators []Indicator `json:"indicators"`
}

// MitreResponse wraps the MITRE mapping endpoint payload.
type MitreResponse struct {
	Mappings []MitreMapping `json:"mappings"`
}
