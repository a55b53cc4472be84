package domain

import "fmt"

// Category groups compounds for scoring bias and every downstream chart.
type Category string

const (
	CategoryNatural   Category = "Natural"
	CategorySynthetic Category = "Synthetic"
)

// ParseCategory maps an exported "Type" cell back to a Category.
func ParseCategory(value string) (Category, error) {
	switch Category(value) {
	case CategoryNatural, CategorySynthetic:
		return Category(value), nil
	default:
		return "", fmt.Errorf("unknown category %q", value)
	}
}

// Compound is a single registry entry.
type Compound struct {
	Name     string
	Category Category
}

// Registry is the immutable screening list: natural substrates first, then synthetic inhibitors.
type Registry struct {
	items []Compound
}

// NewRegistry copies both name lists so later mutation by the caller has no effect.
func NewRegistry(natural, synthetic []string) Registry {
	items := make([]Compound, 0, len(natural)+len(synthetic))
	for _, name := range natural {
		items = append(items, Compound{Name: name, Category: CategoryNatural})
	}
	for _, name := range synthetic {
		items = append(items, Compound{Name: name, Category: CategorySynthetic})
	}
	return Registry{items: items}
}

// Items returns the compounds in processing order.
func (r Registry) Items() []Compound {
	out := make([]Compound, len(r.items))
	copy(out, r.items)
	return out
}

// Len reports how many compounds the registry holds.
func (r Registry) Len() int {
	return len(r.items)
}

// Contains reports whether a compound with this name and category is registered.
func (r Registry) Contains(name string, category Category) bool {
	for _, item := range r.items {
		if item.Name == name && item.Category == category {
			return true
		}
	}
	return false
}

// Properties is what the lookup service returned for one compound.
// Both fields are nil when the lookup failed.
type Properties struct {
	SMILES          *string
	MolecularWeight *float64
}

// Found reports whether a structural encoding is available.
func (p Properties) Found() bool {
	return p.SMILES != nil
}

// ScreeningResult is one persisted row.
type ScreeningResult struct {
	Name            string
	Category        Category
	SMILES          *string
	MolecularWeight *float64
	LogP            float64
	Score           float64
}

// RunSummary counts what happened during a pipeline run.
type RunSummary struct {
	Processed int
	Stored    int
	Skipped   int
	Exported  map[string]string
}

// Lookup outcomes reported for every fetched compound.
const (
	OutcomeFound    = "found"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)
