package app

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"VirtualScreening/internal/config"
	"VirtualScreening/internal/descriptor"
	"VirtualScreening/internal/domain"
	"VirtualScreening/internal/export"
	"VirtualScreening/internal/infrastructure/artifacts"
	"VirtualScreening/internal/infrastructure/metrics"
	"VirtualScreening/internal/infrastructure/plotting"
	"VirtualScreening/internal/infrastructure/pubchem"
	"VirtualScreening/internal/infrastructure/storage"
	"VirtualScreening/internal/infrastructure/tabular"
	"VirtualScreening/internal/logging"
	"VirtualScreening/internal/ports"
	"VirtualScreening/internal/simulation"
	"VirtualScreening/internal/usecase"
)

// Application wires configs to use cases.
type Application struct {
	cfg    config.Config
	logger *slog.Logger
}

// New builds an application; a nil logger is created from cfg.
func New(cfg config.Config, baseLogger *slog.Logger) *Application {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level, cfg.Logging.Format)
	}
	return &Application{cfg: cfg, logger: baseLogger}
}

// Registry builds the immutable compound list from config.
func (a *Application) Registry() domain.Registry {
	return domain.NewRegistry(a.cfg.Compounds.Natural, a.cfg.Compounds.Synthetic)
}

// Run screens the registry, exports the results and optionally renders the dashboard.
func (a *Application) Run(ctx context.Context, withDashboard bool) (domain.RunSummary, error) {
	repo, err := a.openStore(ctx)
	if err != nil {
		return domain.RunSummary{}, err
	}
	defer a.closeStore(repo)

	publisher, err := a.publisher(ctx)
	if err != nil {
		return domain.RunSummary{}, err
	}

	var source simulation.Source
	if seed := a.cfg.Pipeline.Seed; seed != 0 {
		source = rand.New(rand.NewPCG(seed, seed))
	}

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Fetcher: pubchem.NewClient(nil, pubchem.Options{
			BaseURL:   a.cfg.PubChem.BaseURL,
			UserAgent: a.cfg.PubChem.UserAgent,
			Timeout:   a.cfg.PubChem.Timeout,
		}, a.logger.With("component", "pubchem")),
		Calculator: descriptor.NewCalculator(a.logger.With("component", "descriptor")),
		Scorer:     simulation.NewAffinityScorer(source),
		Repository: repo,
		Sink:       a.sink(),
		Metrics:    metrics.NewRecorder(a.cfg.Metrics.TextfilePath),
		Publisher:  publisher,
		Logger:     a.logger.With("component", "pipeline"),
		Pause:      a.cfg.Pipeline.Pause,
	})

	summary, err := pipeline.Run(ctx, a.Registry())
	if err != nil {
		return summary, err
	}

	if withDashboard {
		input := a.cfg.Dashboard.Input
		if path, ok := summary.Exported["csv"]; ok {
			input = path
		}
		if err := a.Dashboard(ctx, input, a.cfg.Dashboard.Output); err != nil {
			return summary, err
		}
	}
	return summary, nil
}

// Export rewrites the configured files from the existing store without fetching.
func (a *Application) Export(ctx context.Context) (map[string]string, error) {
	repo, err := a.openStore(ctx)
	if err != nil {
		return nil, err
	}
	defer a.closeStore(repo)

	publisher, err := a.publisher(ctx)
	if err != nil {
		return nil, err
	}

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Repository: repo,
		Sink:       a.sink(),
		Publisher:  publisher,
		Logger:     a.logger.With("component", "export"),
	})
	return pipeline.Export(ctx)
}

// Dashboard renders the figure from an exported CSV.
func (a *Application) Dashboard(ctx context.Context, input, output string) error {
	publisher, err := a.publisher(ctx)
	if err != nil {
		return err
	}

	dash := usecase.NewDashboard(usecase.DashboardDeps{
		Loader: tabular.CSVReader{},
		Renderer: plotting.NewDashboard(plotting.Options{
			Title: a.cfg.Dashboard.Title,
			DPI:   a.cfg.Dashboard.DPI,
		}, a.logger.With("component", "dashboard")),
		Publisher: publisher,
		Logger:    a.logger.With("component", "dashboard"),
	})
	return dash.Render(ctx, input, output)
}

func (a *Application) sink() *export.Sink {
	registry := export.NewRegistry(tabular.CSVWriter{}, tabular.XLSXWriter{})

	targets := make([]export.Target, 0, len(a.cfg.Export.Targets))
	for _, t := range a.cfg.Export.Targets {
		targets = append(targets, export.Target{Format: t.Format, Path: t.Path})
	}
	return export.NewSink(registry, targets, a.logger.With("component", "export"))
}

func (a *Application) openStore(ctx context.Context) (*storage.ResultsRepository, error) {
	repo, err := storage.Open(ctx, a.cfg.Database.Driver, a.cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("open result store: %w", err)
	}
	return repo, nil
}

func (a *Application) closeStore(repo *storage.ResultsRepository) {
	if err := repo.Close(); err != nil {
		a.logger.Warn("close result store", "error", err)
	}
}

func (a *Application) publisher(ctx context.Context) (ports.ArtifactPublisher, error) {
	if !a.cfg.Artifacts.Enabled() {
		return nil, nil
	}
	pub, err := artifacts.NewS3Publisher(ctx, artifacts.Config{
		Bucket:    a.cfg.Artifacts.Bucket,
		Prefix:    a.cfg.Artifacts.Prefix,
		Region:    a.cfg.Artifacts.Region,
		Endpoint:  a.cfg.Artifacts.Endpoint,
		PathStyle: a.cfg.Artifacts.PathStyle,
	}, a.logger.With("component", "artifacts"))
	if err != nil {
		return nil, fmt.Errorf("configure artifact upload: %w", err)
	}
	return pub, nil
}
