package repository_test

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/bensuskins/nutrition-hub/internal/models"
	"github.com/bensuskins/nutrition-hub/internal/repository"
	"github.com/bensuskins/nutrition-hub/internal/testutil"
	"github.com/google/go-cmp/cmp"
)

func createTestMeal(t *testing.T, repo *repository.SQLiteMealLogRepository, profileID string, loggedAt time.Time, calories float64) models.MealLog {
	t.Helper()

	log, err := repo.Create(context.Background(), models.MealLog{
		ProfileID: profileID,
		MealType:  models.MealTypeLunch,
		Items:     []models.FoodItem{{Name: "apple", Quantity: 2}, {Name: "rice", Quantity: 1}},
		Totals:    models.NutrientTotals{Calories: calories, Protein: 5.3, Carbs: 95, Fats: 1, Fiber: 8.6},
		LoggedAt:  loggedAt,
	})
	if err != nil {
		t.Fatalf("creating meal log: %v", err)
	}
	return log
}

func TestMealLogRepository_CreateAndFind(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	profileID := testutil.SeedProfile(t, db, "p1", 70, 175, "")
	repo := repository.NewMealLogRepository(db)

	loggedAt := time.Date(2026, 3, 14, 12, 30, 0, 0, time.UTC)
	created := createTestMeal(t, repo, profileID, loggedAt, 395)
	if created.ID == "" {
		t.Fatal("expected non-empty ID")
	}

	logs, err := repo.FindByProfile(context.Background(), profileID, repository.MealLogFilter{})
	if err != nil {
		t.Fatalf("finding meal logs: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("expected 1 meal log, got %d", len(logs))
	}

	got := logs[0]
	wantItems := []models.FoodItem{{Name: "apple", Quantity: 2}, {Name: "rice", Quantity: 1}}
	if diff := cmp.Diff(wantItems, got.Items); diff != "" {
		t.Errorf("items mismatch (-want +got):\n%s", diff)
	}
	if got.Totals.Calories != 395 {
		t.Errorf("expected 395 calories, got %v", got.Totals.Calories)
	}
	if !got.LoggedAt.Equal(loggedAt) {
		t.Errorf("expected logged_at %v, got %v", loggedAt, got.LoggedAt)
	}
}

func TestMealLogRepository_FindByProfileRange(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	profileID := testutil.SeedProfile(t, db, "p1", 70, 175, "")
	otherID := testutil.SeedProfile(t, db, "p2", 80, 180, "")
	repo := repository.NewMealLogRepository(db)

	createTestMeal(t, repo, profileID, time.Date(2026, 3, 13, 19, 0, 0, 0, time.UTC), 700)
	createTestMeal(t, repo, profileID, time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC), 300)
	createTestMeal(t, repo, profileID, time.Date(2026, 3, 14, 13, 0, 0, 0, time.UTC), 500)
	createTestMeal(t, repo, otherID, time.Date(2026, 3, 14, 13, 0, 0, 0, time.UTC), 900)

	logs, err := repo.FindByProfile(context.Background(), profileID, repository.MealLogFilter{
		From: time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("finding meal logs: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("expected 2 meal logs, got %d", len(logs))
	}
	if logs[0].Totals.Calories != 300 || logs[1].Totals.Calories != 500 {
		t.Errorf("expected logs oldest first, got %v then %v", logs[0].Totals.Calories, logs[1].Totals.Calories)
	}
}

func TestMealLogRepository_AverageDailyCalories(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	profileID := testutil.SeedProfile(t, db, "p1", 70, 175, "")
	otherID := testutil.SeedProfile(t, db, "p2", 80, 180, "")
	testutil.SeedProfile(t, db, "p3", 60, 160, "")
	repo := repository.NewMealLogRepository(db)

	// day one sums to 2000, day two to 2400
	createTestMeal(t, repo, profileID, time.Date(2026, 3, 13, 8, 0, 0, 0, time.UTC), 800)
	createTestMeal(t, repo, profileID, time.Date(2026, 3, 13, 19, 0, 0, 0, time.UTC), 1200)
	createTestMeal(t, repo, profileID, time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC), 2400)
	createTestMeal(t, repo, otherID, time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC), 1800)

	averages, err := repo.AverageDailyCalories(context.Background())
	if err != nil {
		t.Fatalf("averaging daily calories: %v", err)
	}
	if math.Abs(averages["p1"]-2200) > 1e-9 {
		t.Errorf("expected p1 average 2200, got %v", averages["p1"])
	}
	if math.Abs(averages["p2"]-1800) > 1e-9 {
		t.Errorf("expected p2 average 1800, got %v", averages["p2"])
	}
	if _, ok := averages["p3"]; ok {
		t.Error("expected no average for a profile without logs")
	}
}

func TestMealLogRepository_CreateUnknownProfile(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	repo := repository.NewMealLogRepository(db)

	_, err := repo.Create(context.Background(), models.MealLog{ProfileID: "ghost", MealType: models.MealTypeSnack})
	if err == nil {
		t.Fatal("expected foreign key violation for unknown profile")
	}
}
