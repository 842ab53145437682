package nutrition

import (
	"strings"

	"github.com/bensuskins/nutrition-hub/internal/models"
)

// FoodKey is the reference-table key for a food name.
func FoodKey(name string) string {
	return strings.ToLower(name)
}

// Aggregate sums quantity-scaled nutrients for every item found in database.
// Unknown foods contribute nothing. Totals are left unrounded.
func Aggregate(items []models.FoodItem, database models.NutrientDatabase) models.NutrientTotals {
	var totals models.NutrientTotals
	for _, item := range items {
		nutrients, ok := database[FoodKey(item.Name)]
		if !ok {
			continue
		}
		totals.Calories += nutrients.CaloriesPerUnit * item.Quantity
		totals.Protein += nutrients.ProteinPerUnit * item.Quantity
		totals.Carbs += nutrients.CarbsPerUnit * item.Quantity
		totals.Fats += nutrients.FatsPerUnit * item.Quantity
		totals.Fiber += fiberOrZero(nutrients.FiberPerUnit) * item.Quantity
	}
	return totals
}

// Sum adds meal totals together, e.g. for a day of logged meals.
func Sum(meals ...models.NutrientTotals) models.NutrientTotals {
	var totals models.NutrientTotals
	for _, meal := range meals {
		totals.Calories += meal.Calories
		totals.Protein += meal.Protein
		totals.Carbs += meal.Carbs
		totals.Fats += meal.Fats
		totals.Fiber += meal.Fiber
	}
	return totals
}

func fiberOrZero(fiber *float64) float64 {
	if fiber == nil {
		return 0
	}
	return *fiber
}
