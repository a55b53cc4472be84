package storage

import (
	"context"
	"path/filepath"
	"testing"

	"VirtualScreening/internal/domain"
)

func openTemp(t *testing.T) *ResultsRepository {
	t.Helper()

	repo, err := Open(context.Background(), DriverSQLite, filepath.Join(t.TempDir(), "results.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func ptr[T any](v T) *T { return &v }

func TestAppendAndAllPreserveOrder(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := openTemp(t)
	if err := repo.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}

	input := []domain.ScreeningResult{
		{Name: "Folic Acid", Category: domain.CategoryNatural, SMILES: ptr("C1=CC=CC=C1"), MolecularWeight: ptr(441.4), LogP: -0.5, Score: -7.2},
		{Name: "Methotrexate", Category: domain.CategorySynthetic, SMILES: ptr("CCO"), MolecularWeight: nil, LogP: 0.27, Score: -11.05},
		{Name: "Methotrexate", Category: domain.CategorySynthetic, SMILES: ptr("CCO"), MolecularWeight: ptr(454.4), LogP: 0.27, Score: -9.1},
	}
	for _, res := range input {
		if err := repo.Append(ctx, res); err != nil {
			t.Fatalf("append %s: %v", res.Name, err)
		}
	}

	got, err := repo.All(ctx)
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(got) != len(input) {
		t.Fatalf("expected %d rows, got %d", len(input), len(got))
	}
	for i := range input {
		if got[i].Name != input[i].Name || got[i].Category != input[i].Category || got[i].Score != input[i].Score {
			t.Fatalf("row %d mismatch: %+v", i, got[i])
		}
	}
	if got[1].MolecularWeight != nil {
		t.Fatalf("expected NULL weight to stay nil, got %v", *got[1].MolecularWeight)
	}
	if got[0].MolecularWeight == nil || *got[0].MolecularWeight != 441.4 {
		t.Fatalf("weight not round-tripped: %v", got[0].MolecularWeight)
	}
}

func TestResetDiscardsPreviousRun(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := openTemp(t)

	for run := 0; run < 2; run++ {
		if err := repo.Reset(ctx); err != nil {
			t.Fatalf("reset run %d: %v", run, err)
		}
		for i := 0; i < 3; i++ {
			if err := repo.Append(ctx, domain.ScreeningResult{Name: "x", Category: domain.CategoryNatural, SMILES: ptr("C")}); err != nil {
				t.Fatalf("append: %v", err)
			}
		}
		got, err := repo.All(ctx)
		if err != nil {
			t.Fatalf("all: %v", err)
		}
		if len(got) != 3 {
			t.Fatalf("run %d: expected 3 rows, got %d", run, len(got))
		}
	}
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	t.Parallel()

	if _, err := Open(context.Background(), "oracle", "dsn"); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}

func TestPostgresStatements(t *testing.T) {
	t.Parallel()

	d := dialects[DriverPostgres]
	query, args, err := d.builder.Insert(resultsTable).Columns(resultColumns...).
		Values("a", "Natural", nil, nil, 1.0, -7.0).ToSql()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	want := "INSERT INTO screening_results (name,type,smiles,mw,logp,score) VALUES ($1,$2,$3,$4,$5,$6)"
	if query != want {
		t.Fatalf("unexpected query:\n%s\nwant:\n%s", query, want)
	}
	if len(args) != 6 {
		t.Fatalf("expected 6 args, got %d", len(args))
	}
}
