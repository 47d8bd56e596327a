package metrics

import (
	"fmt"

	"ironpulse/local-app/internal/model"
)

// HydrationStep is the increment used when adjusting a water amount
const HydrationStep = 50

// Food is one nutrition suggestion
type Food struct {
	Name     string
	Calories string
	Benefit  string
}

var foodsByGoal = map[model.Goal][]Food{
	model.GoalGain: {
		{"Avocado", "160kcal/100g", "Healthy fats"},
		{"Nuts & Butters", "600kcal/100g", "Calorie dense"},
		{"Lean Red Meat", "250kcal/100g", "Protein & Iron"},
		{"Oats", "389kcal/100g", "Complex Carbs"},
		{"Whole Eggs", "155kcal/100g", "Complete Protein"},
	},
	model.GoalLoss: {
		{"Leafy Greens", "25kcal/100g", "High volume"},
		{"White Fish", "90kcal/100g", "Lean Protein"},
		{"Berries", "50kcal/100g", "Antioxidants"},
		{"Egg Whites", "52kcal/100g", "Pure Protein"},
		{"Cucumber", "16kcal/100g", "Hydration & Fiber"},
	},
	model.GoalMaintain: {
		{"Whole Grains", "120kcal/100g", "Fiber"},
		{"Chicken Breast", "165kcal/100g", "Protein"},
		{"Greek Yogurt", "59kcal/100g", "Probiotics"},
		{"Sweet Potato", "86kcal/100g", "Vitamins"},
		{"Quinoa", "120kcal/100g", "Complete Amino Profile"},
	},
}

// NutritionSuggestions returns foods suited to a goal. General fitness uses the maintenance list.
func NutritionSuggestions(goal model.Goal) []Food {
	foods, ok := foodsByGoal[goal]
	if !ok {
		foods = foodsByGoal[model.GoalMaintain]
	}
	out := make([]Food, len(foods))
	copy(out, foods)
	return out
}

// ActivityDescription explains an activity level
func ActivityDescription(level model.ActivityLevel) string {
	switch level {
	case model.ActivitySedentary:
		return "Little or no exercise, desk job."
	case model.ActivityLight:
		return "Light exercise/sports 1-3 days/week."
	case model.ActivityModerate:
		return "Moderate exercise/sports 3-5 days/week."
	case model.ActivityActive:
		return "Hard exercise/sports 6-7 days/week."
	default:
		return ""
	}
}

// GoalDescription explains a training goal
func GoalDescription(goal model.Goal) string {
	switch goal {
	case model.GoalGain:
		return "Focus on hypertrophy and strength. Caloric surplus required."
	case model.GoalLoss:
		return "Focus on fat reduction. Caloric deficit required."
	case model.GoalMaintain:
		return "Keep current body composition."
	case model.GoalFitness:
		return "General health and well-being improvement."
	default:
		return ""
	}
}

// AdjustHydration moves amount by steps of HydrationStep, never below one step
func AdjustHydration(amountMl, steps int) int {
	amountMl += steps * HydrationStep
	if amountMl < HydrationStep {
		return HydrationStep
	}
	return amountMl
}

// FormatSleep renders a duration in minutes as "8h" or "7h 30m"
func FormatSleep(minutes int) string {
	h, m := minutes/60, minutes%60
	if m == 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh %dm", h, m)
}
