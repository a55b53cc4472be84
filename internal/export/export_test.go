package export

import (
	"context"
	"errors"
	"testing"

	"VirtualScreening/internal/domain"
)

type recordingWriter struct {
	format string
	paths  []string
	rows   int
	err    error
}

func (w *recordingWriter) Format() string { return w.format }

func (w *recordingWriter) Write(_ context.Context, path string, rows []domain.ScreeningResult) error {
	w.paths = append(w.paths, path)
	w.rows = len(rows)
	return w.err
}

func TestRegistryResolve(t *testing.T) {
	t.Parallel()

	csv := &recordingWriter{format: "csv"}
	reg := NewRegistry(csv, &recordingWriter{format: "xlsx"})

	got, err := reg.Resolve("csv")
	if err != nil || got != csv {
		t.Fatalf("expected csv writer, got %v (%v)", got, err)
	}
	if _, err := reg.Resolve("parquet"); err == nil {
		t.Fatalf("expected error for unknown format")
	}
	if formats := reg.Formats(); len(formats) != 2 || formats[0] != "csv" || formats[1] != "xlsx" {
		t.Fatalf("unexpected formats: %v", formats)
	}
}

func TestSinkWritesEveryTarget(t *testing.T) {
	t.Parallel()

	csv := &recordingWriter{format: "csv"}
	xlsx := &recordingWriter{format: "xlsx"}
	sink := NewSink(NewRegistry(csv, xlsx), []Target{
		{Format: "csv", Path: "out.csv"},
		{Format: "xlsx", Path: "out.xlsx"},
	}, nil)

	rows := []domain.ScreeningResult{{Name: "a"}, {Name: "b"}}
	written, err := sink.Export(context.Background(), rows)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if written["csv"] != "out.csv" || written["xlsx"] != "out.xlsx" {
		t.Fatalf("unexpected written map: %v", written)
	}
	if csv.rows != 2 || xlsx.rows != 2 {
		t.Fatalf("writers did not receive all rows")
	}
}

func TestSinkStopsOnWriterError(t *testing.T) {
	t.Parallel()

	boom := errors.New("disk full")
	sink := NewSink(NewRegistry(&recordingWriter{format: "csv", err: boom}), []Target{{Format: "csv", Path: "x"}}, nil)
	if _, err := sink.Export(context.Background(), nil); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped writer error, got %v", err)
	}

	missing := NewSink(NewRegistry(), []Target{{Format: "csv", Path: "x"}}, nil)
	if _, err := missing.Export(context.Background(), nil); err == nil {
		t.Fatalf("expected error for unregistered format")
	}
}
