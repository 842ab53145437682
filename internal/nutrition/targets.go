package nutrition

import "github.com/bensuskins/nutrition-hub/internal/models"

const (
	defaultCalorieMultiplier = 33.0
	proteinGramsPerKg        = 1.2
	carbCalorieShare         = 0.5
	fatCalorieShare          = 0.3
	kcalPerGramCarb          = 4.0
	kcalPerGramFat           = 9.0
	fiberTargetGrams         = 30
)

// kcal per kg of body weight
var calorieMultipliers = map[models.ActivityLevel]float64{
	models.ActivitySedentary: 30,
	models.ActivityModerate:  35,
	models.ActivityActive:    40,
}

// ComputeDailyTargets derives the calorie budget from weight and activity,
// then splits it into macros. Carbs and fats come from the unrounded budget.
func ComputeDailyTargets(weightKg float64, level models.ActivityLevel) models.DailyTargets {
	multiplier, ok := calorieMultipliers[NormalizeActivityLevel(string(level))]
	if !ok {
		multiplier = defaultCalorieMultiplier
	}
	calories := weightKg * multiplier

	return models.DailyTargets{
		Calories: roundHalfUp(calories),
		Protein:  roundHalfUp(weightKg * proteinGramsPerKg),
		Carbs:    roundHalfUp(calories * carbCalorieShare / kcalPerGramCarb),
		Fats:     roundHalfUp(calories * fatCalorieShare / kcalPerGramFat),
		Fiber:    fiberTargetGrams,
	}
}
