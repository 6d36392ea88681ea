package aggregating

import (
	"strings"

	"github.com/clinsight/clinic-insights-api/internal/domain"
	"github.com/clinsight/clinic-insights-api/pkg/utils"
)

// ApplyFilters recorta o conjunto de fatos como interseção pura de
// predicados. Campos vazios ou "all" não filtram; a data final é inclusiva.
func ApplyFilters(facts []domain.FactRow, filters domain.FilterState) []domain.FactRow {
	filtered := make([]domain.FactRow, 0, len(facts))

	for _, fact := range facts {
		if matchesFilters(fact, filters) {
			filtered = append(filtered, fact)
		}
	}

	return filtered
}

func matchesFilters(fact domain.FactRow, filters domain.FilterState) bool {
	if filters.StartDate != nil && fact.Timestamp.Before(*filters.StartDate) {
		return false
	}

	if filters.EndDate != nil && fact.Timestamp.After(utils.EndOfDay(*filters.EndDate)) {
		return false
	}

	if !matchesDimension(filters.Channel, fact.Channel) {
		return false
	}

	if !matchesDimension(filters.Professional, fact.Professional) {
		return false
	}

	if !matchesDimension(filters.Procedure, fact.Procedure) {
		return false
	}

	if !matchesDimension(filters.Status, string(fact.Status)) {
		return false
	}

	if !matchesDimension(filters.Unit, fact.Unit) {
		return false
	}

	if !matchesDimension(filters.Pipeline, fact.Pipeline) {
		return false
	}

	return true
}

func matchesDimension(filterValue, factValue string) bool {
	if filterValue == "" || strings.EqualFold(filterValue, "all") {
		return true
	}

	return strings.EqualFold(filterValue, factValue)
}
