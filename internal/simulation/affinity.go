package simulation

import (
	"math"
	"math/rand/v2"

	"VirtualScreening/internal/domain"
	"VirtualScreening/internal/ports"
)

// Score bounds in kcal/mol-like units. Lower is a stronger binder.
const (
	baseMin          = -10.0
	baseMax          = -6.0
	syntheticBiasMin = 1.0
	syntheticBiasMax = 2.0
)

// Source yields uniform values in [0, 1).
type Source interface {
	Float64() float64
}

// AffinityScorer draws a random score biased towards synthetic inhibitors.
// The score has no relation to structure.
type AffinityScorer struct {
	source Source
}

var _ ports.AffinityScorer = (*AffinityScorer)(nil)

// NewAffinityScorer uses the provided source, or a freshly seeded one when nil.
func NewAffinityScorer(source Source) *AffinityScorer {
	if source == nil {
		source = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &AffinityScorer{source: source}
}

// Score returns base in [-10, -6], minus a further [1, 2] for synthetic
// compounds, rounded to 2 decimals.
func (s *AffinityScorer) Score(category domain.Category) float64 {
	score := uniform(s.source, baseMin, baseMax)
	if category == domain.CategorySynthetic {
		score -= uniform(s.source, syntheticBiasMin, syntheticBiasMax)
	}
	return math.Round(score*100) / 100
}

func uniform(src Source, lo, hi float64) float64 {
	return lo + (hi-lo)*src.Float64()
}
