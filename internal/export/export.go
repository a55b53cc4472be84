package export

import (
	"context"
	"fmt"
	"sort"

	"VirtualScreening/internal/domain"
)

// Target pairs a registered format with the file it should be written to.
type Target struct {
	Format string
	Path   string
}

// Writer renders results into one file format.
type Writer interface {
	Format() string
	Write(ctx context.Context, path string, rows []domain.ScreeningResult) error
}

// Registry keeps a mapping from format names to their writers.
type Registry struct {
	writers map[string]Writer
}

// NewRegistry builds a registry holding the given writers.
func NewRegistry(writers ...Writer) *Registry {
	r := &Registry{writers: map[string]Writer{}}
	for _, w := range writers {
		r.Register(w)
	}
	return r
}

// Register adds or replaces a writer.
func (r *Registry) Register(writer Writer) {
	if r.writers == nil {
		r.writers = map[string]Writer{}
	}
	r.writers[writer.Format()] = writer
}

// Resolve returns a writer by format or an error if it is absent.
func (r *Registry) Resolve(format string) (Writer, error) {
	if writer, ok := r.writers[format]; ok {
		return writer, nil
	}
	return nil, fmt.Errorf("export format %s is not registered", format)
}

// Formats lists registered format names in sorted order.
func (r *Registry) Formats() []string {
	out := make([]string, 0, len(r.writers))
	for name := range r.writers {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
