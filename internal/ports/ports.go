package ports

import (
	"context"
	"time"

	"VirtualScreening/internal/domain"
)

// PropertyFetcher looks up the structural encoding and mass of a compound by name.
type PropertyFetcher interface {
	Fetch(ctx context.Context, name string) (domain.Properties, error)
}

// DescriptorCalculator derives the lipophilicity descriptor from an encoding.
type DescriptorCalculator interface {
	Lipophilicity(smiles *string) float64
}

// AffinityScorer assigns a simulated binding score to a compound category.
type AffinityScorer interface {
	Score(category domain.Category) float64
}

// ResultRepository persists screening results for the current run.
type ResultRepository interface {
	Reset(ctx context.Context) error
	Append(ctx context.Context, result domain.ScreeningResult) error
	All(ctx context.Context) ([]domain.ScreeningResult, error)
}

// ResultSink snapshots stored results into every configured export format.
// It returns the written path keyed by format name.
type ResultSink interface {
	Export(ctx context.Context, rows []domain.ScreeningResult) (map[string]string, error)
}

// ResultLoader reads a previously exported table back into results.
type ResultLoader interface {
	Load(ctx context.Context, path string) ([]domain.ScreeningResult, error)
}

// DashboardRenderer draws the comparison dashboard image.
type DashboardRenderer interface {
	Render(ctx context.Context, rows []domain.ScreeningResult, output string) error
}

// MetricsRecorder collects per-run counters.
type MetricsRecorder interface {
	ObserveFetch(category domain.Category, outcome string, elapsed time.Duration)
	RecordStored(category domain.Category)
	Flush() error
}

// ArtifactPublisher uploads generated files to remote storage.
type ArtifactPublisher interface {
	Publish(ctx context.Context, paths ...string) error
}
