package simulation

import (
	"math/rand/v2"
	"testing"

	"VirtualScreening/internal/domain"
)

type fixedSource struct {
	values []float64
	next   int
}

func (f *fixedSource) Float64() float64 {
	v := f.values[f.next%len(f.values)]
	f.next++
	return v
}

func TestScorePinnedSource(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		category domain.Category
		values   []float64
		want     float64
	}{
		{name: "natural lower bound", category: domain.CategoryNatural, values: []float64{0}, want: -10},
		{name: "natural midpoint", category: domain.CategoryNatural, values: []float64{0.5}, want: -8},
		{name: "synthetic both midpoints", category: domain.CategorySynthetic, values: []float64{0.5, 0.5}, want: -9.5},
		{name: "synthetic weakest", category: domain.CategorySynthetic, values: []float64{0.999999, 0}, want: -7},
		{name: "rounded to cents", category: domain.CategoryNatural, values: []float64{0.12345}, want: -9.51},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			scorer := NewAffinityScorer(&fixedSource{values: tc.values})
			if got := scorer.Score(tc.category); got != tc.want {
				t.Fatalf("Score(%s) = %v, want %v", tc.category, got, tc.want)
			}
		})
	}
}

func TestScoreRanges(t *testing.T) {
	t.Parallel()

	scorer := NewAffinityScorer(rand.New(rand.NewPCG(7, 11)))
	for i := 0; i < 2000; i++ {
		if got := scorer.Score(domain.CategoryNatural); got < -10 || got > -6 {
			t.Fatalf("natural score %v outside [-10, -6]", got)
		}
		if got := scorer.Score(domain.CategorySynthetic); got < -12 || got > -7 {
			t.Fatalf("synthetic score %v outside [-12, -7]", got)
		}
	}
}

func TestSyntheticScoresLowerOnAverage(t *testing.T) {
	t.Parallel()

	scorer := NewAffinityScorer(rand.New(rand.NewPCG(1, 2)))
	const n = 5000
	var natural, synthetic float64
	for i := 0; i < n; i++ {
		natural += scorer.Score(domain.CategoryNatural)
		synthetic += scorer.Score(domain.CategorySynthetic)
	}
	natural /= n
	synthetic /= n

	if synthetic >= natural-1 {
		t.Fatalf("expected synthetic mean (%v) at least 1 below natural mean (%v)", synthetic, natural)
	}
}

func TestDefaultSource(t *testing.T) {
	t.Parallel()

	scorer := NewAffinityScorer(nil)
	if got := scorer.Score(domain.CategoryNatural); got < -10 || got > -6 {
		t.Fatalf("score %v outside range", got)
	}
}
