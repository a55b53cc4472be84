package descriptor

import (
	"fmt"
	"log/slog"
	"math"

	"VirtualScreening/internal/chem"
	"VirtualScreening/internal/ports"
)

// Calculator turns SMILES strings into rounded Crippen LogP values.
type Calculator struct {
	logger *slog.Logger
}

var _ ports.DescriptorCalculator = (*Calculator)(nil)

// NewCalculator wires an optional logger for parse diagnostics.
func NewCalculator(logger *slog.Logger) *Calculator {
	return &Calculator{logger: logger}
}

// Lipophilicity returns the LogP rounded to 4 decimals, or 0 when the
// encoding is missing or cannot be parsed.
func (c *Calculator) Lipophilicity(smiles *string) float64 {
	if smiles == nil {
		return 0.0
	}

	value, err := compute(*smiles)
	if err != nil {
		c.debug("could not calculate logp", "smiles", *smiles, "error", err)
		return 0.0
	}
	return Round(value, 4)
}

func compute(smiles string) (value float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("typing panic: %v", r)
		}
	}()

	mol, err := chem.ParseSMILES(smiles)
	if err != nil {
		return 0, fmt.Errorf("parse smiles: %w", err)
	}
	return LogP(mol), nil
}

// Round rounds half away from zero to the given number of decimals.
func Round(value float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.Round(value*scale) / scale
}

func (c *Calculator) debug(msg string, args ...interface{}) {
	if c.logger != nil {
		c.logger.Debug(msg, args...)
	}
}
