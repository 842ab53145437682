package services_test

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/bensuskins/nutrition-hub/internal/models"
	"github.com/bensuskins/nutrition-hub/internal/repository"
	"github.com/bensuskins/nutrition-hub/internal/services"
	"github.com/bensuskins/nutrition-hub/internal/testutil"
	"github.com/google/go-cmp/cmp"
)

func setupNutritionService(t *testing.T) (*services.NutritionService, *repository.SQLiteMealLogRepository) {
	t.Helper()
	db := testutil.NewTestDatabase(t)
	testutil.SeedFoods(t, db)
	mealRepo := repository.NewMealLogRepository(db)
	service := services.NewNutritionService(
		repository.NewProfileRepository(db),
		repository.NewFoodRepository(db),
		mealRepo,
	)
	return service, mealRepo
}

func validProfileInput() models.ProfileInput {
	return models.ProfileInput{
		Name:          " Alice ",
		Age:           testutil.IntPtr(30),
		Weight:        testutil.FloatPtr(70),
		Height:        testutil.FloatPtr(175),
		ActivityLevel: "Moderate",
		Region:        "North",
	}
}

func lunchInput() models.MealInput {
	return models.MealInput{
		FoodItems: []models.FoodItemInput{
			{Name: "apple", Quantity: testutil.FloatPtr(2)},
			{Name: "Chicken Breast"},
		},
		MealType: "lunch",
	}
}

func TestNutritionService_CreateProfile(t *testing.T) {
	service, _ := setupNutritionService(t)

	profile, err := service.CreateProfile(context.Background(), validProfileInput())
	if err != nil {
		t.Fatalf("creating profile: %v", err)
	}
	if profile.ID == "" {
		t.Fatal("expected non-empty ID")
	}
	if profile.Name != "Alice" {
		t.Errorf("expected trimmed name 'Alice', got '%s'", profile.Name)
	}
	if profile.ActivityLevel != models.ActivityModerate {
		t.Errorf("expected normalized activity 'moderate', got '%s'", profile.ActivityLevel)
	}
	if profile.Region != "north" {
		t.Errorf("expected region 'north', got '%s'", profile.Region)
	}
}

func TestNutritionService_CreateProfile_Invalid(t *testing.T) {
	service, _ := setupNutritionService(t)

	_, err := service.CreateProfile(context.Background(), models.ProfileInput{Age: testutil.IntPtr(5)})

	var validationErr *services.ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	want := []string{"weight is required", "height is required", "Age must be between 13 and 120"}
	if diff := cmp.Diff(want, validationErr.Errors); diff != "" {
		t.Errorf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestNutritionService_UpdateProfile(t *testing.T) {
	service, _ := setupNutritionService(t)
	ctx := context.Background()

	profile, _ := service.CreateProfile(ctx, validProfileInput())

	input := validProfileInput()
	input.Weight = testutil.FloatPtr(72.5)
	updated, err := service.UpdateProfile(ctx, profile.ID, input)
	if err != nil {
		t.Fatalf("updating profile: %v", err)
	}
	if updated.WeightKg != 72.5 {
		t.Errorf("expected weight 72.5, got %v", updated.WeightKg)
	}
	if !updated.CreatedAt.Equal(profile.CreatedAt) {
		t.Errorf("expected created_at to be preserved")
	}
}

func TestNutritionService_NotFound(t *testing.T) {
	service, _ := setupNutritionService(t)
	ctx := context.Background()

	if _, err := service.GetProfile(ctx, "missing"); !errors.Is(err, services.ErrNotFound) {
		t.Errorf("get: expected ErrNotFound, got %v", err)
	}
	if _, err := service.UpdateProfile(ctx, "missing", validProfileInput()); !errors.Is(err, services.ErrNotFound) {
		t.Errorf("update: expected ErrNotFound, got %v", err)
	}
	if err := service.DeleteProfile(ctx, "missing"); !errors.Is(err, services.ErrNotFound) {
		t.Errorf("delete: expected ErrNotFound, got %v", err)
	}
}

func TestNutritionService_Assess(t *testing.T) {
	service, _ := setupNutritionService(t)

	assessment, err := service.Assess(validProfileInput())
	if err != nil {
		t.Fatalf("assessing profile: %v", err)
	}
	if assessment.BMI.Value != 22.9 {
		t.Errorf("expected BMI 22.9, got %v", assessment.BMI.Value)
	}
	if assessment.DailyTargets.Calories != 2450 {
		t.Errorf("expected 2450 calories, got %d", assessment.DailyTargets.Calories)
	}
}

func TestNutritionService_Analyze(t *testing.T) {
	service, _ := setupNutritionService(t)

	analysis, err := service.Analyze(context.Background(), validProfileInput(), lunchInput())
	if err != nil {
		t.Fatalf("analyzing meal: %v", err)
	}
	if math.Abs(analysis.Nutrition.Calories-355) > 1e-9 {
		t.Errorf("expected 355 calories, got %v", analysis.Nutrition.Calories)
	}
	if analysis.HealthRisk.Level != "Low Risk" {
		t.Errorf("expected Low Risk, got %q", analysis.HealthRisk.Level)
	}
}

func TestNutritionService_Analyze_CombinesErrors(t *testing.T) {
	service, _ := setupNutritionService(t)

	_, err := service.Analyze(context.Background(),
		models.ProfileInput{Age: testutil.IntPtr(30), Weight: testutil.FloatPtr(70)},
		models.MealInput{MealType: "lunch"},
	)

	var validationErr *services.ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	want := []string{"height is required", "Food items must be an array"}
	if diff := cmp.Diff(want, validationErr.Errors); diff != "" {
		t.Errorf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestNutritionService_LogMeal(t *testing.T) {
	service, _ := setupNutritionService(t)
	ctx := context.Background()

	profile, _ := service.CreateProfile(ctx, validProfileInput())
	input := lunchInput()
	input.FoodItems = append(input.FoodItems, models.FoodItemInput{Name: "unknown stew"})

	logged, err := service.LogMeal(ctx, profile, input, time.Time{})
	if err != nil {
		t.Fatalf("logging meal: %v", err)
	}
	if math.Abs(logged.Totals.Calories-355) > 1e-9 {
		t.Errorf("expected unknown food to add nothing, got %v calories", logged.Totals.Calories)
	}
	if len(logged.Items) != 3 {
		t.Errorf("expected every item to be kept, got %d", len(logged.Items))
	}
	if logged.LoggedAt.IsZero() {
		t.Error("expected logged_at to default to now")
	}

	meals, err := service.ListMeals(ctx, profile.ID, time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("listing meals: %v", err)
	}
	if len(meals) != 1 {
		t.Fatalf("expected 1 meal, got %d", len(meals))
	}
	if meals[0].Items[1].Quantity != 1 {
		t.Errorf("expected absent quantity to default to 1, got %v", meals[0].Items[1].Quantity)
	}
}

func TestNutritionService_LogMeal_Invalid(t *testing.T) {
	service, _ := setupNutritionService(t)
	ctx := context.Background()

	profile, _ := service.CreateProfile(ctx, validProfileInput())
	_, err := service.LogMeal(ctx, profile, models.MealInput{FoodItems: []models.FoodItemInput{}}, time.Time{})

	var validationErr *services.ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestNutritionService_DailySummary(t *testing.T) {
	service, _ := setupNutritionService(t)
	ctx := context.Background()

	profile, _ := service.CreateProfile(ctx, validProfileInput())
	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	service.LogMeal(ctx, profile, lunchInput(), day.Add(12*time.Hour))
	service.LogMeal(ctx, profile, models.MealInput{
		FoodItems: []models.FoodItemInput{{Name: "rice"}},
		MealType:  "dinner",
	}, day.Add(19*time.Hour))
	service.LogMeal(ctx, profile, lunchInput(), day.Add(-2*time.Hour))

	summary, err := service.DailySummary(ctx, profile, day.Add(3*time.Hour))
	if err != nil {
		t.Fatalf("building summary: %v", err)
	}
	if summary.Date != "2026-03-14" {
		t.Errorf("expected date 2026-03-14, got %s", summary.Date)
	}
	if summary.MealsLogged != 2 {
		t.Errorf("expected 2 meals, got %d", summary.MealsLogged)
	}
	if math.Abs(summary.Intake.Calories-560) > 1e-9 {
		t.Errorf("expected 560 calories, got %v", summary.Intake.Calories)
	}
	if summary.DailyTargets.Calories != 2450 {
		t.Errorf("expected 2450 target calories, got %d", summary.DailyTargets.Calories)
	}
	if summary.Progress.Calories.Percent != 22.9 {
		t.Errorf("expected 22.9 percent, got %v", summary.Progress.Calories.Percent)
	}
}

func TestNutritionService_DailySummary_NoMeals(t *testing.T) {
	service, _ := setupNutritionService(t)
	ctx := context.Background()

	profile, _ := service.CreateProfile(ctx, validProfileInput())
	summary, err := service.DailySummary(ctx, profile, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("building summary: %v", err)
	}
	if summary.MealsLogged != 0 || summary.Intake.Calories != 0 {
		t.Errorf("expected an empty day, got %+v", summary)
	}
	if summary.HealthRisk.Score != 0 {
		t.Errorf("expected Low Risk, got %q", summary.HealthRisk.Level)
	}
}
