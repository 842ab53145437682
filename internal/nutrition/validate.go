// Package nutrition holds the pure nutrition rules: input validation, BMI,
// meal aggregation, daily targets and community statistics. Nothing here
// performs I/O or keeps state between calls.
package nutrition

import (
	"fmt"
	"strings"

	"github.com/bensuskins/nutrition-hub/internal/models"
)

const (
	minAge, maxAge       = 13, 120
	minWeight, maxWeight = 20.0, 300.0
	minHeight, maxHeight = 100.0, 250.0
	maxQuantity          = 100.0
)

// ValidateUserProfile runs every profile check and reports all violations.
func ValidateUserProfile(input models.ProfileInput) models.ValidationResult {
	problems := []string{}

	if input.Age == nil {
		problems = append(problems, "age is required")
	}
	if input.Weight == nil {
		problems = append(problems, "weight is required")
	}
	if input.Height == nil {
		problems = append(problems, "height is required")
	}

	if input.Age != nil && (*input.Age < minAge || *input.Age > maxAge) {
		problems = append(problems, fmt.Sprintf("Age must be between %d and %d", minAge, maxAge))
	}
	if input.Weight != nil && (*input.Weight < minWeight || *input.Weight > maxWeight) {
		problems = append(problems, fmt.Sprintf("Weight must be between %gkg and %gkg", minWeight, maxWeight))
	}
	if input.Height != nil && (*input.Height < minHeight || *input.Height > maxHeight) {
		problems = append(problems, fmt.Sprintf("Height must be between %gcm and %gcm", minHeight, maxHeight))
	}

	if input.ActivityLevel != "" && !isActivityLevel(input.ActivityLevel) {
		problems = append(problems, "Activity level must be one of: "+joinActivityLevels())
	}

	return result(problems)
}

// ValidateMealSubmission stops at a missing food list; every other check is
// reported together.
func ValidateMealSubmission(input models.MealInput) models.ValidationResult {
	if input.FoodItems == nil {
		return result([]string{"Food items must be an array"})
	}

	problems := []string{}
	if len(input.FoodItems) == 0 {
		problems = append(problems, "At least one food item is required")
	}

	for index, item := range input.FoodItems {
		if strings.TrimSpace(item.Name) == "" {
			problems = append(problems, fmt.Sprintf("Food item %d must have a name", index+1))
		}
		// a zero quantity counts as not given
		outOfRange := item.Quantity != nil && *item.Quantity != 0 && (*item.Quantity <= 0 || *item.Quantity > maxQuantity)
		if item.QuantityInvalid || outOfRange {
			problems = append(problems, fmt.Sprintf("Food item %d quantity must be between 0 and %g", index+1, maxQuantity))
		}
	}

	if input.MealType != "" && !isMealType(input.MealType) {
		problems = append(problems, "Meal type must be one of: "+joinMealTypes())
	}

	return result(problems)
}

func ValidateNutrientProfile(name string, nutrients models.NutrientProfile) models.ValidationResult {
	problems := []string{}
	if strings.TrimSpace(name) == "" {
		problems = append(problems, "name is required")
	}

	fields := []struct {
		name  string
		value float64
	}{
		{"calories", nutrients.CaloriesPerUnit},
		{"protein", nutrients.ProteinPerUnit},
		{"carbs", nutrients.CarbsPerUnit},
		{"fats", nutrients.FatsPerUnit},
		{"fiber", fiberOrZero(nutrients.FiberPerUnit)},
	}
	for _, field := range fields {
		if field.value < 0 {
			problems = append(problems, field.name+" cannot be negative")
		}
	}

	return result(problems)
}

// ToUserProfile converts a profile that already passed ValidateUserProfile.
func ToUserProfile(input models.ProfileInput) models.UserProfile {
	profile := models.UserProfile{ActivityLevel: NormalizeActivityLevel(input.ActivityLevel)}
	if input.Age != nil {
		profile.Age = *input.Age
	}
	if input.Weight != nil {
		profile.WeightKg = *input.Weight
	}
	if input.Height != nil {
		profile.HeightCm = *input.Height
	}
	return profile
}

// ToMealSubmission converts a meal that already passed ValidateMealSubmission.
// Items without a quantity count as a single unit.
func ToMealSubmission(input models.MealInput) models.MealSubmission {
	submission := models.MealSubmission{
		FoodItems: make([]models.FoodItem, 0, len(input.FoodItems)),
		MealType:  models.MealType(strings.ToLower(input.MealType)),
	}
	for _, item := range input.FoodItems {
		quantity := 1.0
		if item.Quantity != nil {
			quantity = *item.Quantity
		}
		submission.FoodItems = append(submission.FoodItems, models.FoodItem{Name: item.Name, Quantity: quantity})
	}
	return submission
}

func NormalizeActivityLevel(level string) models.ActivityLevel {
	return models.ActivityLevel(strings.ToLower(level))
}

func isActivityLevel(level string) bool {
	normalized := NormalizeActivityLevel(level)
	for _, known := range models.ActivityLevels {
		if normalized == known {
			return true
		}
	}
	return false
}

func isMealType(mealType string) bool {
	normalized := models.MealType(strings.ToLower(mealType))
	for _, known := range models.MealTypes {
		if normalized == known {
			return true
		}
	}
	return false
}

func joinActivityLevels() string {
	names := make([]string, 0, len(models.ActivityLevels))
	for _, level := range models.ActivityLevels {
		names = append(names, string(level))
	}
	return strings.Join(names, ", ")
}

func joinMealTypes() string {
	names := make([]string, 0, len(models.MealTypes))
	for _, mealType := range models.MealTypes {
		names = append(names, string(mealType))
	}
	return strings.Join(names, ", ")
}

func result(problems []string) models.ValidationResult {
	return models.ValidationResult{Valid: len(problems) == 0, Errors: problems}
}
