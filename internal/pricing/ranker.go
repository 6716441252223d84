package pricing

import (
	"sort"

	"greenjourney/internal/domain"
	"greenjourney/internal/domain/models"
)

// Rank returns a stably sorted copy of results. Unknown keys keep the input order.
func Rank(results []models.PricedJourney, key domain.SortKey) []models.PricedJourney {
	out := make([]models.PricedJourney, len(results))
	copy(out, results)

	var less func(a, b models.PricedJourney) bool
	switch key {
	case domain.SortCheapest:
		less = func(a, b models.PricedJourney) bool { return a.Cost < b.Cost }
	case domain.SortFastest:
		less = func(a, b models.PricedJourney) bool { return a.DurationMinutes < b.DurationMinutes }
	case domain.SortLowestCO2:
		less = func(a, b models.PricedJourney) bool { return a.CO2Emissions < b.CO2Emissions }
	default:
		return out
	}

	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}
