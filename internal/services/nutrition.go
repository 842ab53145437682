package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bensuskins/nutrition-hub/internal/models"
	"github.com/bensuskins/nutrition-hub/internal/nutrition"
	"github.com/bensuskins/nutrition-hub/internal/repository"
)

const DateLayout = "2006-01-02"

type NutritionService struct {
	profileRepo repository.ProfileRepository
	foodRepo    repository.FoodRepository
	mealRepo    repository.MealLogRepository
}

func NewNutritionService(
	profileRepo repository.ProfileRepository,
	foodRepo repository.FoodRepository,
	mealRepo repository.MealLogRepository,
) *NutritionService {
	return &NutritionService{
		profileRepo: profileRepo,
		foodRepo:    foodRepo,
		mealRepo:    mealRepo,
	}
}

func (service *NutritionService) CreateProfile(ctx context.Context, input models.ProfileInput) (models.Profile, error) {
	if err := validationFailure(nutrition.ValidateUserProfile(input)); err != nil {
		return models.Profile{}, err
	}

	profile, err := service.profileRepo.Create(ctx, applyProfileInput(models.Profile{}, input))
	if err != nil {
		return models.Profile{}, fmt.Errorf("creating profile: %w", err)
	}
	return profile, nil
}

func (service *NutritionService) UpdateProfile(ctx context.Context, id string, input models.ProfileInput) (models.Profile, error) {
	if err := validationFailure(nutrition.ValidateUserProfile(input)); err != nil {
		return models.Profile{}, err
	}

	existing, err := service.profileRepo.FindByID(ctx, id)
	if err != nil {
		return models.Profile{}, translateNotFound(err, "finding profile")
	}

	updated, err := service.profileRepo.Update(ctx, applyProfileInput(existing, input))
	if err != nil {
		return models.Profile{}, translateNotFound(err, "updating profile")
	}
	return updated, nil
}

func (service *NutritionService) GetProfile(ctx context.Context, id string) (models.Profile, error) {
	profile, err := service.profileRepo.FindByID(ctx, id)
	if err != nil {
		return models.Profile{}, translateNotFound(err, "finding profile")
	}
	return profile, nil
}

func (service *NutritionService) ListProfiles(ctx context.Context) ([]models.Profile, error) {
	return service.profileRepo.FindAll(ctx)
}

func (service *NutritionService) DeleteProfile(ctx context.Context, id string) error {
	if err := service.profileRepo.Delete(ctx, id); err != nil {
		return translateNotFound(err, "deleting profile")
	}
	return nil
}

// Assess reports BMI, advice and daily targets for an unsaved profile.
func (service *NutritionService) Assess(input models.ProfileInput) (models.Assessment, error) {
	if err := validationFailure(nutrition.ValidateUserProfile(input)); err != nil {
		return models.Assessment{}, err
	}
	return nutrition.Assess(nutrition.ToUserProfile(input)), nil
}

// Analyze evaluates a meal against an unsaved profile using the stored food
// table. Profile and meal errors are reported together, profile first.
func (service *NutritionService) Analyze(ctx context.Context, profileInput models.ProfileInput, mealInput models.MealInput) (models.MealAnalysis, error) {
	if err := validationFailure(
		nutrition.ValidateUserProfile(profileInput),
		nutrition.ValidateMealSubmission(mealInput),
	); err != nil {
		return models.MealAnalysis{}, err
	}

	database, err := service.foodRepo.Database(ctx)
	if err != nil {
		return models.MealAnalysis{}, fmt.Errorf("loading food table: %w", err)
	}

	return nutrition.AnalyzeMeal(
		nutrition.ToMealSubmission(mealInput),
		nutrition.ToUserProfile(profileInput),
		database,
	), nil
}

// LogMeal validates and stores a meal with its totals computed against the
// current food table. A zero loggedAt means now.
func (service *NutritionService) LogMeal(ctx context.Context, profile models.Profile, input models.MealInput, loggedAt time.Time) (models.MealLog, error) {
	if err := validationFailure(nutrition.ValidateMealSubmission(input)); err != nil {
		return models.MealLog{}, err
	}

	database, err := service.foodRepo.Database(ctx)
	if err != nil {
		return models.MealLog{}, fmt.Errorf("loading food table: %w", err)
	}

	submission := nutrition.ToMealSubmission(input)
	log, err := service.mealRepo.Create(ctx, models.MealLog{
		ProfileID: profile.ID,
		MealType:  submission.MealType,
		Items:     submission.FoodItems,
		Totals:    nutrition.Aggregate(submission.FoodItems, database),
		LoggedAt:  loggedAt,
	})
	if err != nil {
		return models.MealLog{}, fmt.Errorf("logging meal: %w", err)
	}
	return log, nil
}

func (service *NutritionService) ListMeals(ctx context.Context, profileID string, from, to time.Time) ([]models.MealLog, error) {
	logs, err := service.mealRepo.FindByProfile(ctx, profileID, repository.MealLogFilter{From: from, To: to})
	if err != nil {
		return nil, fmt.Errorf("listing meals: %w", err)
	}
	return logs, nil
}

// DailySummary totals the meals logged on date's UTC day and compares them
// with the profile's targets.
func (service *NutritionService) DailySummary(ctx context.Context, profile models.Profile, date time.Time) (models.DailySummary, error) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	logs, err := service.ListMeals(ctx, profile.ID, start, start.AddDate(0, 0, 1))
	if err != nil {
		return models.DailySummary{}, err
	}

	meals := make([]models.NutrientTotals, 0, len(logs))
	for _, log := range logs {
		meals = append(meals, log.Totals)
	}

	analysis := nutrition.AnalyzeTotals(nutrition.Sum(meals...), profile.UserProfile())
	return models.DailySummary{
		Date:            start.Format(DateLayout),
		MealsLogged:     len(logs),
		Intake:          analysis.Nutrition,
		DailyTargets:    analysis.DailyTargets,
		Progress:        analysis.Progress,
		HealthRisk:      analysis.HealthRisk,
		Recommendations: analysis.Recommendations,
	}, nil
}

func applyProfileInput(profile models.Profile, input models.ProfileInput) models.Profile {
	core := nutrition.ToUserProfile(input)
	profile.Name = strings.TrimSpace(input.Name)
	profile.Age = core.Age
	profile.WeightKg = core.WeightKg
	profile.HeightCm = core.HeightCm
	profile.ActivityLevel = core.ActivityLevel
	profile.Region = strings.ToLower(strings.TrimSpace(input.Region))
	return profile
}
