package analysis

import (
	"errors"
	"math"
	"testing"

	"VirtualScreening/internal/domain"
)

func ptr[T any](v T) *T { return &v }

func scenario() []domain.ScreeningResult {
	return []domain.ScreeningResult{
		{Name: "Folic Acid", Category: domain.CategoryNatural, MolecularWeight: ptr(441.4), LogP: -0.44, Score: -7.5},
		{Name: "Dihydrofolate", Category: domain.CategoryNatural, MolecularWeight: ptr(443.4), LogP: -0.9, Score: -8.5},
		{Name: "Methotrexate", Category: domain.CategorySynthetic, MolecularWeight: ptr(454.4), LogP: 0.27, Score: -11.0},
	}
}

func TestMeanByCategory(t *testing.T) {
	t.Parallel()

	means := MeanByCategory(scenario())
	if len(means) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(means))
	}
	if means[0].Category != domain.CategoryNatural || means[0].Mean != -8 || means[0].Count != 2 {
		t.Fatalf("unexpected natural mean: %+v", means[0])
	}
	if means[1].Category != domain.CategorySynthetic || means[1].Mean != -11 {
		t.Fatalf("unexpected synthetic mean: %+v", means[1])
	}

	only := MeanByCategory(scenario()[:1])
	if len(only) != 1 || only[0].Category != domain.CategoryNatural {
		t.Fatalf("expected only natural, got %+v", only)
	}
}

func TestLeaderboardPutsBestBinderFirst(t *testing.T) {
	t.Parallel()

	rows := scenario()
	board := Leaderboard(rows)
	if board[0].Name != "Methotrexate" || board[len(board)-1].Name != "Folic Acid" {
		t.Fatalf("unexpected order: %s ... %s", board[0].Name, board[len(board)-1].Name)
	}
	if rows[0].Name != "Folic Acid" {
		t.Fatalf("input slice was reordered")
	}
}

func TestSizeTrend(t *testing.T) {
	t.Parallel()

	rows := []domain.ScreeningResult{
		{MolecularWeight: ptr(100.0), Score: -6},
		{MolecularWeight: ptr(200.0), Score: -8},
		{MolecularWeight: ptr(300.0), Score: -10},
		{MolecularWeight: nil, Score: 50},
	}
	trend, err := SizeTrend(rows)
	if err != nil {
		t.Fatalf("trend: %v", err)
	}
	if math.Abs(trend.Slope+0.02) > 1e-12 || math.Abs(trend.Intercept+4) > 1e-9 {
		t.Fatalf("unexpected fit: %+v", trend)
	}

	xs, ys := trend.Sample(100)
	if len(xs) != 100 || xs[0] != 100 || xs[99] != 300 {
		t.Fatalf("unexpected sample range: %v..%v (%d)", xs[0], xs[len(xs)-1], len(xs))
	}
	if math.Abs(ys[99]+10) > 1e-9 {
		t.Fatalf("unexpected sampled value %v", ys[99])
	}

	if _, err := SizeTrend(rows[:1]); !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData, got %v", err)
	}
	flat := []domain.ScreeningResult{{MolecularWeight: ptr(1.0)}, {MolecularWeight: ptr(1.0)}}
	if _, err := SizeTrend(flat); !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData for a vertical fit, got %v", err)
	}
}

func TestByCategory(t *testing.T) {
	t.Parallel()

	groups := ByCategory(scenario())
	if len(groups[domain.CategoryNatural]) != 2 || len(groups[domain.CategorySynthetic]) != 1 {
		t.Fatalf("unexpected grouping: %v", groups)
	}
}
