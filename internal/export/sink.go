package export

import (
	"context"
	"fmt"
	"log/slog"

	"VirtualScreening/internal/domain"
	"VirtualScreening/internal/ports"
)

// Sink writes a results snapshot to every configured target.
type Sink struct {
	registry *Registry
	targets  []Target
	logger   *slog.Logger
}

var _ ports.ResultSink = (*Sink)(nil)

// NewSink wires the writer registry with config-defined targets.
func NewSink(reg *Registry, targets []Target, log *slog.Logger) *Sink {
	return &Sink{
		registry: reg,
		targets:  targets,
		logger:   log,
	}
}

// Export resolves each target's writer and overwrites its file.
func (s *Sink) Export(ctx context.Context, rows []domain.ScreeningResult) (map[string]string, error) {
	if s.registry == nil {
		return nil, fmt.Errorf("export registry is not configured")
	}

	written := make(map[string]string, len(s.targets))
	for _, target := range s.targets {
		writer, err := s.registry.Resolve(target.Format)
		if err != nil {
			return written, fmt.Errorf("target %s: %w", target.Path, err)
		}
		if err := writer.Write(ctx, target.Path, rows); err != nil {
			return written, fmt.Errorf("write %s export: %w", target.Format, err)
		}
		s.info("exported results", "format", target.Format, "path", target.Path, "rows", len(rows))
		written[target.Format] = target.Path
	}
	return written, nil
}

func (s *Sink) info(msg string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Info(msg, args...)
	}
}
