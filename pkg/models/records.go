package models

// Alert describes a scored threat-hunting finding for a single entity.
type Alert struct {
	Entity     string   `json:"entity"`
	Category   string   `json:"category,omitempty"`
	Score      float64  `json:"score"`
	Confidence float64  `json:"confidence"`
	Reasons    []string `json:"reasons,omitempty"`
	Indicators []string `json:"indicators,omitempty"`
	Techniques []string `json:"mitre_techniques,omitempty"`
	FirstSeen  int64    `json:"first_seen"`
	LastSeen   int64    `json:"last_seen"`
}

// Beacon summarizes a periodic connection pattern between two hosts.
type Beacon struct {
	SrcIP             string    `json:"src_ip"`
	DstIP             string    `json:"dst_ip"`
	DstPort           int       `json:"dst_port,omitempty"`
	Score             float64   `json:"score"`
	Confidence        float64   `json:"confidence"`
	ConnCount         int       `json:"conn_count"`
	AvgIntervalSec    float64   `json:"avg_interval_sec"`
	IntervalHistogram []int     `json:"interval_histogram,omitempty"`
	Reasons           []string  `json:"reasons,omitempty"`
	Techniques        []string  `json:"mitre_techniques,omitempty"`
	FirstSeen         int64     `json:"first_seen"`
	LastSeen          int64     `json:"last_seen"`
}

// DnsThreat describes a suspicious domain observed in DNS traffic.
type DnsThreat struct {
	Domain         string   `json:"domain"`
	ThreatType     string   `json:"threat_type"`
	Score          float64  `json:"score"`
	Confidence     float64  `json:"confidence"`
	QueryCount     int      `json:"query_count"`
	SubdomainCount int      `json:"subdomain_count"`
	Reasons        []string `json:"reasons,omitempty"`
	Indicators     []string `json:"indicators,omitempty"`
	FirstSeen      int64    `json:"first_seen"`
	LastSeen       int64    `json:"last_seen"`
}

// Normalize clamps score and confidence and orders the seen timestamps.
func (a *Alert) Normalize() {
	a.Score = clampScore(a.Score)
	a.Confidence = clampUnit(a.Confidence)
	a.FirstSeen, a.LastSeen = orderSeen(a.FirstSeen, a.LastSeen)
}

// Normalize clamps score and confidence and orders the seen timestamps.
func (b *Beacon) Normalize() {
	b.Score = clampScore(b.Score)
	b.Confidence = clampUnit(b.Confidence)
	b.FirstSeen, b.LastSeen = orderSeen(b.FirstSeen, b.LastSeen)
}

// Normalize clamps score and confidence and orders the seen timestamps.
func (d *DnsThreat) Normalize() {
	d.Score = clampScore(d.Score)
	d.Confidence = clampUnit(d.Confidence)
	d.FirstSeen, d.LastSeen = orderSeen(d.FirstSeen, d.LastSeen)
}

func clampScore(v float64) float64 {
	if v != v { // NaN
		return 0
	}
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func clampUnit(v float64) float64 {
	if v != v {
		return 0
	}
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func orderSeen(first, last int64) (int64, int64) {
	if last < first {
		return last, first
	}
	return first, last
}
