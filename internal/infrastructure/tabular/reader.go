package tabular

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"VirtualScreening/internal/domain"
	"VirtualScreening/internal/ports"
)

// ErrHeaderMismatch means the file does not carry the exported column layout.
var ErrHeaderMismatch = errors.New("unexpected table header")

// CSVReader loads an exported CSV back into results.
type CSVReader struct{}

var _ ports.ResultLoader = CSVReader{}

// Load reads and validates the whole file.
func (CSVReader) Load(ctx context.Context, path string) ([]domain.ScreeningResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	return Decode(f)
}

// Decode parses CSV content in the exported layout.
func Decode(r io.Reader) ([]domain.ScreeningResult, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(Header)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i, col := range Header {
		if strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff")) != col {
			return nil, fmt.Errorf("%w: column %d is %q, want %q", ErrHeaderMismatch, i+1, header[i], col)
		}
	}

	var out []domain.ScreeningResult
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read line %d: %w", line, err)
		}
		res, err := parseRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, res)
	}
	return out, nil
}

func parseRecord(rec []string) (domain.ScreeningResult, error) {
	category, err := domain.ParseCategory(rec[1])
	if err != nil {
		return domain.ScreeningResult{}, err
	}

	res := domain.ScreeningResult{Name: rec[0], Category: category}
	if rec[2] != "" {
		smiles := rec[2]
		res.SMILES = &smiles
	}
	if strings.TrimSpace(rec[3]) != "" {
		mw, err := strconv.ParseFloat(strings.TrimSpace(rec[3]), 64)
		if err != nil {
			return domain.ScreeningResult{}, fmt.Errorf("molecular weight: %w", err)
		}
		res.MolecularWeight = &mw
	}
	if res.LogP, err = strconv.ParseFloat(strings.TrimSpace(rec[4]), 64); err != nil {
		return domain.ScreeningResult{}, fmt.Errorf("logp: %w", err)
	}
	if res.Score, err = strconv.ParseFloat(strings.TrimSpace(rec[5]), 64); err != nil {
		return domain.ScreeningResult{}, fmt.Errorf("score: %w", err)
	}
	return res, nil
}
