package analysis

import (
	"errors"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"VirtualScreening/internal/domain"
)

// ErrInsufficientData is returned when a trend needs more distinct points.
var ErrInsufficientData = errors.New("not enough points for a trend line")

// Categories is the fixed display order.
var Categories = []domain.Category{domain.CategoryNatural, domain.CategorySynthetic}

// CategoryMean is the average score of one category.
type CategoryMean struct {
	Category domain.Category
	Mean     float64
	Count    int
}

// MeanByCategory averages scores per category, skipping categories without rows.
func MeanByCategory(rows []domain.ScreeningResult) []CategoryMean {
	var out []CategoryMean
	for _, cat := range Categories {
		var scores []float64
		for _, r := range rows {
			if r.Category == cat {
				scores = append(scores, r.Score)
			}
		}
		if len(scores) == 0 {
			continue
		}
		out = append(out, CategoryMean{Category: cat, Mean: stat.Mean(scores, nil), Count: len(scores)})
	}
	return out
}

// Leaderboard orders results by ascending score so the strongest binder is first.
// Ties keep their stored order.
func Leaderboard(rows []domain.ScreeningResult) []domain.ScreeningResult {
	out := make([]domain.ScreeningResult, len(rows))
	copy(out, rows)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score < out[j].Score })
	return out
}

// Trend is a degree-1 least-squares fit y = Intercept + Slope*x.
type Trend struct {
	Intercept float64
	Slope     float64
	MinX      float64
	MaxX      float64
}

// At evaluates the fitted line.
func (t Trend) At(x float64) float64 {
	return t.Intercept + t.Slope*x
}

// Sample returns n evenly spaced points across the fitted x range.
func (t Trend) Sample(n int) (xs, ys []float64) {
	if n < 2 {
		n = 2
	}
	xs = make([]float64, n)
	floats.Span(xs, t.MinX, t.MaxX)
	ys = make([]float64, n)
	for i, x := range xs {
		ys[i] = t.At(x)
	}
	return xs, ys
}

// SizeTrend fits score against molecular weight over every row with a known weight.
func SizeTrend(rows []domain.ScreeningResult) (Trend, error) {
	var xs, ys []float64
	for _, r := range rows {
		if r.MolecularWeight == nil {
			continue
		}
		xs = append(xs, *r.MolecularWeight)
		ys = append(ys, r.Score)
	}
	if len(xs) < 2 {
		return Trend{}, ErrInsufficientData
	}
	minX, maxX := floats.Min(xs), floats.Max(xs)
	if minX == maxX {
		return Trend{}, ErrInsufficientData
	}

	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	return Trend{Intercept: alpha, Slope: beta, MinX: minX, MaxX: maxX}, nil
}

// ByCategory splits rows keeping their order within each category.
func ByCategory(rows []domain.ScreeningResult) map[domain.Category][]domain.ScreeningResult {
	out := make(map[domain.Category][]domain.ScreeningResult, len(Categories))
	for _, r := range rows {
		out[r.Category] = append(out[r.Category], r)
	}
	return out
}
