package services

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"tripplanner/internal/models/request_models"
	"tripplanner/internal/models/response_models"
)

var travelStyleDesc = map[request_models.TravelStyle]string{
	request_models.StyleBudget:   "Cost-effective choices",
	request_models.StyleBalanced: "Mix of value & comfort",
	request_models.StyleLuxury:   "Premium experiences",
}

var paceDesc = map[request_models.Pace]string{
	request_models.PaceRelaxed:  "2-3 activities/day",
	request_models.PaceModerate: "4-5 activities/day",
	request_models.PacePacked:   "6+ activities/day",
}

const activityCategories = "sightseeing, food, culture, adventure, relaxation, shopping, nightlife"

func orDefault(values []string, fallback string) string {
	if len(values) == 0 {
		return fallback
	}
	return strings.Join(values, ", ")
}

func transportLabel(mode request_models.TransportMode) string {
	if mode == request_models.TransportAuto || mode == "" {
		return "AI Choice (choose best for destination)"
	}
	return string(mode)
}

func writeTripDetails(b *strings.Builder, req request_models.TripRequest) {
	b.WriteString("DETAILS:\n")
	fmt.Fprintf(b, "- Destination: %s\n", req.Destination)
	fmt.Fprintf(b, "- Origin: %s\n", req.Origin)
	fmt.Fprintf(b, "- Journey Context: Planning a trip from %s to %s\n", req.Origin, req.Destination)
	fmt.Fprintf(b, "- Transport Mode: %s\n", transportLabel(req.TransportMode))
	fmt.Fprintf(b, "- Food Preferences: %s\n", orDefault(req.FoodPreferences, "No restrictions"))
	fmt.Fprintf(b, "- Activity Preferences: %s\n", orDefault(req.Preferences, "General Interest"))
	fmt.Fprintf(b, "- Travel Style: %s (%s)\n", req.TravelStyle, travelStyleDesc[req.TravelStyle])
	fmt.Fprintf(b, "- Trip Pace: %s (%s)\n", req.Pace, paceDesc[req.Pace])
}

// buildFullPlanPrompt asks for the whole trip plus the hero image query and theme.
func buildFullPlanPrompt(req request_models.TripRequest) string {
	var b strings.Builder
	budgetPerDay := math.Floor(req.Budget / float64(req.Days))

	b.WriteString("You are an expert travel planner. Create a comprehensive day-by-day trip itinerary.\n")
	writeTripDetails(&b, req)
	fmt.Fprintf(&b, "- Duration: %d days\n", req.Days)
	fmt.Fprintf(&b, "- Total Budget: ₹%s\n", formatAmount(req.Budget))
	fmt.Fprintf(&b, "- Budget per day (approximate): ₹%s\n\n", formatAmount(budgetPerDay))

	b.WriteString("REQUIREMENTS:\n")
	b.WriteString("1. Return a JSON OBJECT containing:\n")
	fmt.Fprintf(&b, "   - \"heroImageQuery\": a photo search query for an iconic landscape of the broader region where %s is located.\n", req.Destination)
	fmt.Fprintf(&b, "   - \"itinerary\": an array of %d day objects.\n", req.Days)
	fmt.Fprintf(&b, "   - \"theme\": an array of 2 Tailwind CSS gradient colors representing the vibe of %s (e.g. [\"from-red-600\", \"to-white\"]).\n", req.Destination)
	b.WriteString("2. Each day object MUST include \"day\", \"daySummary\" (one sentence), \"highlights\" (exactly 3 short phrases), ")
	b.WriteString("\"imageSearchQuery\" (unique per day, iconic landmark or view) and \"activities\".\n")
	b.WriteString("3. Activities must have \"time\", \"name\", \"description\", \"cost\" (number, INR only), \"duration\" (hours), \"category\".\n")
	fmt.Fprintf(&b, "4. Categories allowed: %s.\n", activityCategories)
	fmt.Fprintf(&b, "5. Prioritize these interests: %s.\n", orDefault(req.Preferences, "General Interest"))
	fmt.Fprintf(&b, "6. DAY 1 MUST START with the journey from %s to %s, with realistic cost and duration.\n", req.Origin, req.Destination)
	fmt.Fprintf(&b, "7. Dietary restrictions are mandatory: %s. Every food activity must confirm compliance.\n", orDefault(req.FoodPreferences, "No restrictions"))
	b.WriteString("8. Ensure every activity is reachable with the chosen transport mode.\n")
	fmt.Fprintf(&b, "9. If %s is a landmark, mountain or trek, plan from the nearest base town and include permits, guides and gear.\n\n", req.Destination)

	b.WriteString("CRITICAL BUDGET RULES:\n")
	fmt.Fprintf(&b, "- Total cost across ALL %d days should be approximately ₹%s (±10%%).\n", req.Days, formatAmount(req.Budget))
	fmt.Fprintf(&b, "- Aim for ~₹%s per day. Food and entry fees always have a cost.\n\n", formatAmount(budgetPerDay))

	fmt.Fprintf(&b, "IMPORTANT: You MUST generate ALL %d days. Return ONLY the JSON object. Do NOT output markdown code blocks.\n", req.Days)
	return b.String()
}

// buildSingleDayPrompt asks for exactly one day of the trip.
func buildSingleDayPrompt(req request_models.TripRequest, day int) string {
	var b strings.Builder

	b.WriteString("You are an expert travel planner.\n")
	writeTripDetails(&b, req)
	fmt.Fprintf(&b, "- Budget: ₹%s\n\n", formatAmount(req.Budget))

	fmt.Fprintf(&b, "TASK: Create the itinerary for **Day %d ONLY**.\n\n", day)
	b.WriteString("REQUIREMENTS:\n")
	fmt.Fprintf(&b, "1. Return a JSON ARRAY with ONE object for Day %d.\n", day)
	fmt.Fprintf(&b, "2. Structure: [{\"day\": %d, \"daySummary\": \"...\", \"highlights\": [\"...\", \"...\", \"...\"], \"imageSearchQuery\": \"...\", \"activities\": [...]}]\n", day)
	b.WriteString("3. Include 3-4 activities with \"time\", \"name\", \"description\", \"cost\" (in INR), \"duration\", \"category\".\n")
	fmt.Fprintf(&b, "4. Categories: %s.\n", activityCategories)
	if day == 1 {
		fmt.Fprintf(&b, "5. Include an activity for traveling from %s to %s with mode, time and cost.\n", req.Origin, req.Destination)
	}
	fmt.Fprintf(&b, "\nThe imageSearchQuery must capture an iconic view of %s.\n", req.Destination)
	b.WriteString("IMPORTANT: Return ONLY valid JSON. No markdown.\n")
	return b.String()
}

// buildReplanPrompt sends the current plan back with every detected issue.
func buildReplanPrompt(current response_models.Itinerary, req request_models.TripRequest, issues []string, iteration int) string {
	var b strings.Builder

	planJSON, err := json.Marshal(current)
	if err != nil {
		planJSON = []byte("[]")
	}

	fmt.Fprintf(&b, "The previous itinerary for %s has issues:\n", req.Destination)
	b.WriteString(strings.Join(issues, "\n"))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Original Request: %d days, Budget ₹%s. Revision attempt %d.\n\n", req.Days, formatAmount(req.Budget), iteration)
	b.WriteString("Current Plan (JSON):\n")
	b.Write(planJSON)
	b.WriteString("\n\nTASK:\nFix the issues strictly.\n")
	fmt.Fprintf(&b, "- If the issue is \"Itinerary has X days, expected Y\", you MUST generate the full %d days.\n", req.Days)
	b.WriteString("- If over budget, replace expensive activities with cheaper alternatives or free ones.\n")
	b.WriteString("- Keep the same JSON structure.\n")
	b.WriteString("- Do NOT output markdown, just the JSON.\n\n")
	fmt.Fprintf(&b, "Return the CORRECTED JSON array with exactly %d items.\n", req.Days)
	return b.String()
}
