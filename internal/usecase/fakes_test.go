package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"VirtualScreening/internal/domain"
)

type stubFetcher struct {
	props map[string]domain.Properties
	errs  map[string]error
	calls []string
}

func (f *stubFetcher) Fetch(_ context.Context, name string) (domain.Properties, error) {
	f.calls = append(f.calls, name)
	if err, ok := f.errs[name]; ok {
		return domain.Properties{}, err
	}
	return f.props[name], nil
}

type constCalculator float64

func (c constCalculator) Lipophilicity(smiles *string) float64 {
	if smiles == nil {
		return 0
	}
	return float64(c)
}

type categoryScorer struct{}

func (categoryScorer) Score(category domain.Category) float64 {
	if category == domain.CategorySynthetic {
		return -11
	}
	return -7
}

type memoryRepo struct {
	rows      []domain.ScreeningResult
	resets    int
	appendErr error
}

func (r *memoryRepo) Reset(context.Context) error {
	r.resets++
	r.rows = nil
	return nil
}

func (r *memoryRepo) Append(_ context.Context, res domain.ScreeningResult) error {
	if r.appendErr != nil {
		return r.appendErr
	}
	r.rows = append(r.rows, res)
	return nil
}

func (r *memoryRepo) All(context.Context) ([]domain.ScreeningResult, error) {
	out := make([]domain.ScreeningResult, len(r.rows))
	copy(out, r.rows)
	return out, nil
}

type captureSink struct {
	rows [][]domain.ScreeningResult
	err  error
}

func (s *captureSink) Export(_ context.Context, rows []domain.ScreeningResult) (map[string]string, error) {
	s.rows = append(s.rows, rows)
	if s.err != nil {
		return nil, s.err
	}
	return map[string]string{"csv": "natvssynt.csv", "xlsx": "natvssynt.xlsx"}, nil
}

type countingMetrics struct {
	mu       sync.Mutex
	outcomes map[string]int
	stored   int
	flushed  int
}

func (m *countingMetrics) ObserveFetch(_ domain.Category, outcome string, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.outcomes == nil {
		m.outcomes = map[string]int{}
	}
	m.outcomes[outcome]++
}

func (m *countingMetrics) RecordStored(domain.Category) { m.stored++ }

func (m *countingMetrics) Flush() error {
	m.flushed++
	return nil
}

type capturePublisher struct {
	paths []string
	err   error
}

func (p *capturePublisher) Publish(_ context.Context, paths ...string) error {
	p.paths = append(p.paths, paths...)
	return p.err
}

var errLookup = errors.New("connection reset")

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }
