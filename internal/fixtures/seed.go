package fixtures

import "hash/fnv"

// Seed derives a stable 64-bit seed from a record identity.
func Seed(identity string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(identity))
	return h.Sum64()
}

// LCG is a small linear-congruential generator. State advances only through
// Next, so two generators built from the same seed emit identical sequences.
type LCG struct {
	state uint64
}

// NewLCG creates a generator at the given seed.
func NewLCG(seed uint64) *LCG {
	return &LCG{state: seed}
}

// Next advances the generator and returns the raw state.
func (g *LCG) Next() uint64 {
	g.state = g.state*6364136223846793005 + 1442695040888963407
	return g.state
}

// Float returns the next value in [0,1).
func (g *LCG) Float() float64 {
	return float64(g.Next()>>11) / float64(1<<53)
}

// Intn returns the next value in [0,n). n must be positive.
func (g *LCG) Intn(n int) int {
	return int(g.Next() % uint64(n))
}

// IntervalHistogram builds a per-record histogram shape from the record's own
// identity, so repeated generations of the same record match exactly.
func IntervalHistogram(identity string, bins int) []int {
	g := NewLCG(Seed(identity))
	out := make([]int, bins)
	peak := g.Intn(bins)
	for i := range out {
		dist := i - peak
		if dist < 0 {
			dist = -dist
		}
		base := bins - dist
		out[i] = base*3 + g.Intn(bins+1)
	}
	return out
}
