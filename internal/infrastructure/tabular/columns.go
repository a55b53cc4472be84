package tabular

import (
	"strconv"

	"VirtualScreening/internal/domain"
)

// Header is the fixed column order of every exported table.
var Header = []string{"Name", "Type", "SMILES", "Molecular Weight", "LogP", "Score"}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func record(res domain.ScreeningResult) []string {
	smiles := ""
	if res.SMILES != nil {
		smiles = *res.SMILES
	}
	mw := ""
	if res.MolecularWeight != nil {
		mw = formatFloat(*res.MolecularWeight)
	}
	return []string{
		res.Name,
		string(res.Category),
		smiles,
		mw,
		formatFloat(res.LogP),
		formatFloat(res.Score),
	}
}
