package nutrition

import (
	"math"

	"github.com/bensuskins/nutrition-hub/internal/models"
)

const (
	highRiskCalories   = 2500.0
	highRiskFats       = 100.0
	fiberMinimumGrams  = 25.0
	minProteinShare    = 0.15
	proteinFloorRatio  = 0.8
	kcalPerGramProtein = 4.0
)

var healthRisks = []models.HealthRisk{
	{Level: "Low Risk", Score: 0, Details: "Your current nutritional intake is balanced. Keep maintaining healthy eating habits."},
	{Level: "Medium Risk", Score: 1, Details: "Some nutritional imbalances detected. Consider adjusting portion sizes and food choices."},
	{Level: "High Risk", Score: 2, Details: "High nutritional risk detected. Consult with a healthcare professional for personalized guidance."},
}

type mealRule struct {
	applies func(totals models.NutrientTotals, weightKg float64) bool
	message string
}

var mealRules = []mealRule{
	{
		applies: func(totals models.NutrientTotals, weightKg float64) bool {
			return totals.Protein < weightKg*proteinGramsPerKg*proteinFloorRatio
		},
		message: "Increase protein intake. Consider adding lean meats, legumes, or dairy.",
	},
	{
		applies: func(totals models.NutrientTotals, _ float64) bool {
			return totals.Fiber < fiberMinimumGrams
		},
		message: "Add more fiber-rich foods like vegetables, fruits, and whole grains.",
	},
	{
		applies: func(totals models.NutrientTotals, _ float64) bool {
			return totals.Calories > 0 && totals.Protein*kcalPerGramProtein/totals.Calories < minProteinShare
		},
		message: "Meal is low in protein. Add a protein source for better balance.",
	},
}

// AssessHealthRisk scores intake: high calories raise the score to 1, high
// fats to 2.
func AssessHealthRisk(totals models.NutrientTotals) models.HealthRisk {
	score := 0
	if totals.Calories > highRiskCalories {
		score = 1
	}
	if totals.Fats > highRiskFats {
		score = 2
	}
	return healthRisks[score]
}

func MealRecommendations(totals models.NutrientTotals, weightKg float64) []string {
	recommendations := []string{}
	for _, rule := range mealRules {
		if rule.applies(totals, weightKg) {
			recommendations = append(recommendations, rule.message)
		}
	}
	return recommendations
}

func CompareToTargets(totals models.NutrientTotals, targets models.DailyTargets) models.TargetProgress {
	return models.TargetProgress{
		Calories: progress(totals.Calories, targets.Calories),
		Protein:  progress(totals.Protein, targets.Protein),
		Carbs:    progress(totals.Carbs, targets.Carbs),
		Fats:     progress(totals.Fats, targets.Fats),
		Fiber:    progress(totals.Fiber, targets.Fiber),
	}
}

func progress(consumed float64, target int) models.NutrientProgress {
	percent := 0.0
	if target > 0 {
		percent = math.Min(consumed/float64(target)*100, 100)
	}
	return models.NutrientProgress{
		Consumed: consumed,
		Target:   target,
		Percent:  roundTo1(percent),
	}
}

func Assess(profile models.UserProfile) models.Assessment {
	bmi := ComputeBMI(profile.WeightKg, profile.HeightCm)
	return models.Assessment{
		BMI:          bmi,
		Advice:       BMIAdvice(bmi.Category),
		DailyTargets: ComputeDailyTargets(profile.WeightKg, profile.ActivityLevel),
	}
}

func AnalyzeMeal(submission models.MealSubmission, profile models.UserProfile, database models.NutrientDatabase) models.MealAnalysis {
	return AnalyzeTotals(Aggregate(submission.FoodItems, database), profile)
}

// AnalyzeTotals evaluates already-aggregated intake against a profile.
func AnalyzeTotals(totals models.NutrientTotals, profile models.UserProfile) models.MealAnalysis {
	targets := ComputeDailyTargets(profile.WeightKg, profile.ActivityLevel)
	return models.MealAnalysis{
		Nutrition:       totals,
		BMI:             ComputeBMI(profile.WeightKg, profile.HeightCm),
		DailyTargets:    targets,
		Progress:        CompareToTargets(totals, targets),
		HealthRisk:      AssessHealthRisk(totals),
		Recommendations: MealRecommendations(totals, profile.WeightKg),
	}
}
