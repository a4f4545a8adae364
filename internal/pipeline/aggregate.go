package pipeline

import (
	"sort"

	"github.com/westside-labs/rentscout/internal/model"
)

// Aggregate deduplicates candidates by URL and ranks the survivors.
// Dedup is strict first-occurrence-wins in input order: a later
// duplicate never replaces an earlier one, even with a higher score.
// Ranking is a stable sort by validation percentage descending, with
// area priority (ascending) as tie-break.
func Aggregate(apartments []model.RankedApartment) []model.RankedApartment {
	seen := make(map[string]bool, len(apartments))
	unique := make([]model.RankedApartment, 0, len(apartments))
	for _, apt := range apartments {
		if apt.URL == "" || seen[apt.URL] {
			continue
		}
		seen[apt.URL] = true
		unique = append(unique, apt)
	}

	sort.SliceStable(unique, func(i, j int) bool {
		if unique[i].Validation.Percentage != unique[j].Validation.Percentage {
			return unique[i].Validation.Percentage > unique[j].Validation.Percentage
		}
		return unique[i].Area.Priority < unique[j].Area.Priority
	})

	return unique
}
