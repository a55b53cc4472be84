package usecase

import (
	"sort"

	"VirtualScreening/internal/domain"
)

func fetchOutcome(props domain.Properties, err error) string {
	switch {
	case err != nil:
		return domain.OutcomeError
	case !props.Found():
		return domain.OutcomeNotFound
	default:
		return domain.OutcomeFound
	}
}

func sortedPaths(byFormat map[string]string) []string {
	formats := make([]string, 0, len(byFormat))
	for f := range byFormat {
		formats = append(formats, f)
	}
	sort.Strings(formats)

	paths := make([]string, 0, len(formats))
	for _, f := range formats {
		paths = append(paths, byFormat[f])
	}
	return paths
}
