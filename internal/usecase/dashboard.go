package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"VirtualScreening/internal/ports"
)

// DashboardDeps wires the adapters of the reporting stage.
type DashboardDeps struct {
	Loader    ports.ResultLoader
	Renderer  ports.DashboardRenderer
	Publisher ports.ArtifactPublisher
	Logger    *slog.Logger
}

// Dashboard renders the comparison figure from an exported table.
type Dashboard struct {
	loader    ports.ResultLoader
	renderer  ports.DashboardRenderer
	publisher ports.ArtifactPublisher
	logger    *slog.Logger
}

// NewDashboard constructs the reporting stage.
func NewDashboard(deps DashboardDeps) *Dashboard {
	return &Dashboard{
		loader:    deps.Loader,
		renderer:  deps.Renderer,
		publisher: deps.Publisher,
		logger:    deps.Logger,
	}
}

// Render loads input and writes the image to output. A load failure
// aborts before anything is written.
func (d *Dashboard) Render(ctx context.Context, input, output string) error {
	if d.loader == nil || d.renderer == nil {
		return errors.New("dashboard is missing a required dependency")
	}

	rows, err := d.loader.Load(ctx, input)
	if err != nil {
		return fmt.Errorf("load %s: %w", input, err)
	}
	if d.logger != nil {
		d.logger.Info("rendering dashboard", "input", input, "rows", len(rows))
	}

	if err := d.renderer.Render(ctx, rows, output); err != nil {
		return fmt.Errorf("render dashboard: %w", err)
	}

	if d.publisher != nil {
		if err := d.publisher.Publish(ctx, output); err != nil {
			return fmt.Errorf("publish dashboard: %w", err)
		}
	}
	return nil
}
