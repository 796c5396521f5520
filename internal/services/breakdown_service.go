package services

import (
	"sort"
	"strings"

	"tripplanner/internal/models/response_models"
)

const uncategorized = "other"

// AggregateBreakdown rolls activity costs up per category and per day in one pass.
func AggregateBreakdown(itinerary response_models.Itinerary) response_models.BudgetBreakdown {
	categories := make(map[string]float64)
	dailyCosts := make([]response_models.DailyCost, 0, len(itinerary))
	total := 0.0

	for _, day := range itinerary {
		dayCost := 0.0
		for _, act := range day.Activities {
			cost := act.Cost.Float()
			category := strings.TrimSpace(act.Category)
			if category == "" {
				category = uncategorized
			}
			categories[category] += cost
			total += cost
			dayCost += cost
		}
		dailyCosts = append(dailyCosts, response_models.DailyCost{Day: day.Day, Cost: dayCost})
	}

	categoryData := make([]response_models.CategoryAmount, 0, len(categories))
	for name, value := range categories {
		categoryData = append(categoryData, response_models.CategoryAmount{Name: name, Value: value})
	}
	sort.Slice(categoryData, func(i, j int) bool {
		return categoryData[i].Name < categoryData[j].Name
	})

	return response_models.BudgetBreakdown{
		TotalCost:      total,
		CategoryTotals: categories,
		CategoryData:   categoryData,
		DailyCosts:     dailyCosts,
	}
}
