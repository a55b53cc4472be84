package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"VirtualScreening/internal/domain"
	"VirtualScreening/internal/ports"
)

// PipelineDeps wires all driven adapters into the screening pipeline.
type PipelineDeps struct {
	Fetcher    ports.PropertyFetcher
	Calculator ports.DescriptorCalculator
	Scorer     ports.AffinityScorer
	Repository ports.ResultRepository
	Sink       ports.ResultSink
	Metrics    ports.MetricsRecorder
	Publisher  ports.ArtifactPublisher
	Logger     *slog.Logger
	// Pause is waited between successive lookups.
	Pause time.Duration
}

// Pipeline implements the fetch, describe, score and store workflow.
type Pipeline struct {
	fetcher    ports.PropertyFetcher
	calculator ports.DescriptorCalculator
	scorer     ports.AffinityScorer
	repository ports.ResultRepository
	sink       ports.ResultSink
	metrics    ports.MetricsRecorder
	publisher  ports.ArtifactPublisher
	logger     *slog.Logger
	pause      time.Duration
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	return &Pipeline{
		fetcher:    deps.Fetcher,
		calculator: deps.Calculator,
		scorer:     deps.Scorer,
		repository: deps.Repository,
		sink:       deps.Sink,
		metrics:    deps.Metrics,
		publisher:  deps.Publisher,
		logger:     deps.Logger,
		pause:      deps.Pause,
	}
}

// Run screens every registry item in order, then exports the stored rows.
// Lookup failures skip the item; store and export failures abort the run.
func (p *Pipeline) Run(ctx context.Context, registry domain.Registry) (domain.RunSummary, error) {
	var summary domain.RunSummary
	if p.fetcher == nil || p.calculator == nil || p.scorer == nil || p.repository == nil {
		return summary, errors.New("pipeline is missing a required dependency")
	}

	if err := p.repository.Reset(ctx); err != nil {
		return summary, fmt.Errorf("reset store: %w", err)
	}

	items := registry.Items()
	p.info("screening started", "compounds", len(items))

	for i, item := range items {
		if i > 0 {
			if err := p.wait(ctx); err != nil {
				return summary, err
			}
		}
		summary.Processed++

		stored, err := p.screen(ctx, item)
		if err != nil {
			return summary, err
		}
		if stored {
			summary.Stored++
		} else {
			summary.Skipped++
		}
	}

	exported, err := p.Export(ctx)
	if err != nil {
		return summary, err
	}
	summary.Exported = exported

	p.info("screening finished", "processed", summary.Processed, "stored", summary.Stored, "skipped", summary.Skipped)
	return summary, nil
}

// screen handles one compound and reports whether a row was stored.
func (p *Pipeline) screen(ctx context.Context, item domain.Compound) (bool, error) {
	p.info("fetch compound", "compound", item.Name, "category", item.Category)

	started := time.Now()
	props, err := p.fetcher.Fetch(ctx, item.Name)
	outcome := fetchOutcome(props, err)
	if p.metrics != nil {
		p.metrics.ObserveFetch(item.Category, outcome, time.Since(started))
	}
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return false, ctxErr
		}
		p.warn("property lookup failed", "compound", item.Name, "error", err)
		props = domain.Properties{}
	}
	if !props.Found() {
		p.info("skipping compound", "compound", item.Name, "reason", "no structure")
		return false, nil
	}

	result := domain.ScreeningResult{
		Name:            item.Name,
		Category:        item.Category,
		SMILES:          props.SMILES,
		MolecularWeight: props.MolecularWeight,
		LogP:            p.calculator.Lipophilicity(props.SMILES),
		Score:           p.scorer.Score(item.Category),
	}
	if err := p.repository.Append(ctx, result); err != nil {
		return false, fmt.Errorf("store %s: %w", item.Name, err)
	}
	if p.metrics != nil {
		p.metrics.RecordStored(item.Category)
	}
	p.info("stored result", "compound", item.Name, "logp", result.LogP, "score", result.Score)
	return true, nil
}

// Export snapshots the store into every configured format and publishes the files.
func (p *Pipeline) Export(ctx context.Context) (map[string]string, error) {
	if p.repository == nil {
		return nil, errors.New("pipeline has no repository")
	}

	rows, err := p.repository.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("read stored results: %w", err)
	}

	var exported map[string]string
	if p.sink != nil {
		exported, err = p.sink.Export(ctx, rows)
		if err != nil {
			return exported, fmt.Errorf("export results: %w", err)
		}
	}

	if p.metrics != nil {
		if err := p.metrics.Flush(); err != nil {
			p.warn("metrics flush failed", "error", err)
		}
	}

	if p.publisher != nil && len(exported) > 0 {
		if err := p.publisher.Publish(ctx, sortedPaths(exported)...); err != nil {
			return exported, fmt.Errorf("publish exports: %w", err)
		}
	}
	return exported, nil
}

func (p *Pipeline) wait(ctx context.Context) error {
	if p.pause <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(p.pause)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (p *Pipeline) info(msg string, args ...interface{}) {
	if p.logger != nil {
		p.logger.Info(msg, args...)
	}
}

func (p *Pipeline) warn(msg string, args ...interface{}) {
	if p.logger != nil {
		p.logger.Warn(msg, args...)
	}
}
