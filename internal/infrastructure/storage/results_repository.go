package storage

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
	_ "modernc.org/sqlite"             // registers the "sqlite" driver

	"VirtualScreening/internal/domain"
	"VirtualScreening/internal/ports"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "pgx"

	resultsTable = "screening_results"
)

var resultColumns = []string{"name", "type", "smiles", "mw", "logp", "score"}

// dialect captures the few statements that differ between engines.
type dialect struct {
	createTable string
	orderBy     string
	builder     sq.StatementBuilderType
}

var dialects = map[string]dialect{
	DriverSQLite: {
		createTable: `CREATE TABLE ` + resultsTable + ` (
			name TEXT,
			type TEXT,
			smiles TEXT,
			mw REAL,
			logp REAL,
			score REAL
		)`,
		orderBy: "rowid",
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Question),
	},
	DriverPostgres: {
		createTable: `CREATE TABLE ` + resultsTable + ` (
			id BIGSERIAL PRIMARY KEY,
			name TEXT,
			type TEXT,
			smiles TEXT,
			mw DOUBLE PRECISION,
			logp DOUBLE PRECISION,
			score DOUBLE PRECISION
		)`,
		orderBy: "id",
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	},
}

// ResultsRepository stores screening results in a single SQL table.
type ResultsRepository struct {
	db      *sql.DB
	dialect dialect
}

var _ ports.ResultRepository = (*ResultsRepository)(nil)

// Open connects to the store with a single pooled connection.
func Open(ctx context.Context, driver, dsn string) (*ResultsRepository, error) {
	d, ok := dialects[driver]
	if !ok {
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}

	return &ResultsRepository{db: db, dialect: d}, nil
}

// NewResultsRepository wraps an already opened database.
func NewResultsRepository(db *sql.DB, driver string) (*ResultsRepository, error) {
	d, ok := dialects[driver]
	if !ok {
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
	return &ResultsRepository{db: db, dialect: d}, nil
}

// Close releases the connection.
func (r *ResultsRepository) Close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}

// Reset drops and recreates the results table, discarding prior rows.
func (r *ResultsRepository) Reset(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DROP TABLE IF EXISTS `+resultsTable); err != nil {
		return fmt.Errorf("drop results table: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, r.dialect.createTable); err != nil {
		return fmt.Errorf("create results table: %w", err)
	}
	return nil
}

// Append inserts one result row.
func (r *ResultsRepository) Append(ctx context.Context, result domain.ScreeningResult) error {
	query, args, err := r.dialect.builder.
		Insert(resultsTable).
		Columns(resultColumns...).
		Values(result.Name, string(result.Category), nullable(result.SMILES), nullable(result.MolecularWeight), result.LogP, result.Score).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert result %s: %w", result.Name, err)
	}
	return nil
}

// All returns every stored row in insertion order.
func (r *ResultsRepository) All(ctx context.Context) ([]domain.ScreeningResult, error) {
	query, args, err := r.dialect.builder.
		Select(resultColumns...).
		From(resultsTable).
		OrderBy(r.dialect.orderBy).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []domain.ScreeningResult
	for rows.Next() {
		var (
			res      domain.ScreeningResult
			category string
			smiles   sql.NullString
			mw       sql.NullFloat64
			logp     sql.NullFloat64
			score    sql.NullFloat64
		)
		if err := rows.Scan(&res.Name, &category, &smiles, &mw, &logp, &score); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		res.Category = domain.Category(category)
		if smiles.Valid {
			s := smiles.String
			res.SMILES = &s
		}
		if mw.Valid {
			v := mw.Float64
			res.MolecularWeight = &v
		}
		res.LogP = logp.Float64
		res.Score = score.Float64
		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return results, nil
}

// nullable maps a nil pointer to SQL NULL and dereferences anything else.
func nullable[T any](v *T) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
