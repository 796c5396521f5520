package services

import (
	"fmt"
	"strconv"

	"tripplanner/internal/models/request_models"
	"tripplanner/internal/models/response_models"
)

// DefaultBudgetTolerance is the absolute amount a plan may exceed the budget by.
const DefaultBudgetTolerance = 5000.0

// ConstraintChecker reports budget and day-count violations of an itinerary.
type ConstraintChecker struct {
	Tolerance float64
}

func NewConstraintChecker(tolerance float64) ConstraintChecker {
	return ConstraintChecker{Tolerance: tolerance}
}

// Check runs the budget check then the day-count check; issue order follows check order.
func (c ConstraintChecker) Check(itinerary response_models.Itinerary, request request_models.TripRequest) response_models.ValidationResult {
	totalCost := TotalCost(itinerary)
	issues := []string{}

	if totalCost > request.Budget+c.Tolerance {
		issues = append(issues, fmt.Sprintf("Total cost (₹%s) exceeds budget (₹%s) by ₹%s",
			formatAmount(totalCost), formatAmount(request.Budget), formatAmount(totalCost-request.Budget)))
	}

	if len(itinerary) != request.Days {
		issues = append(issues, fmt.Sprintf("Itinerary has %d days, expected %d", len(itinerary), request.Days))
	}

	return response_models.ValidationResult{
		Valid:     len(issues) == 0,
		Issues:    issues,
		TotalCost: totalCost,
	}
}

// TotalCost sums every activity cost, non-numeric costs counting as 0.
func TotalCost(itinerary response_models.Itinerary) float64 {
	total := 0.0
	for _, day := range itinerary {
		for _, act := range day.Activities {
			total += act.Cost.Float()
		}
	}
	return total
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
