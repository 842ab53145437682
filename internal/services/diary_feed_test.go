package services_test

import (
	"context"
	"strings"
	"testing"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/bensuskins/nutrition-hub/internal/models"
	"github.com/bensuskins/nutrition-hub/internal/repository"
	"github.com/bensuskins/nutrition-hub/internal/services"
	"github.com/bensuskins/nutrition-hub/internal/testutil"
)

func TestDiaryFeed_Render(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	mealRepo := repository.NewMealLogRepository(db)
	feed := services.NewDiaryFeed(mealRepo)
	ctx := context.Background()

	testutil.SeedProfile(t, db, "p1", 70, 175, "")
	loggedAt := time.Date(2026, 3, 14, 12, 30, 0, 0, time.UTC)
	mealRepo.Create(ctx, models.MealLog{
		ProfileID: "p1",
		MealType:  models.MealTypeLunch,
		Items:     []models.FoodItem{{Name: "apple", Quantity: 2}, {Name: "chicken breast", Quantity: 1}},
		Totals:    models.NutrientTotals{Calories: 355, Protein: 32, Carbs: 50, Fats: 4.2, Fiber: 8},
		LoggedAt:  loggedAt,
	})

	data, err := feed.Render(ctx, models.Profile{ID: "p1", Name: "Alice"}, time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("rendering feed: %v", err)
	}

	if !strings.Contains(data, "X-WR-CALNAME:Alice Meal Diary") {
		t.Errorf("expected calendar name in feed:\n%s", data)
	}

	calendar, err := ical.ParseCalendar(strings.NewReader(data))
	if err != nil {
		t.Fatalf("parsing feed: %v", err)
	}
	events := calendar.Events()
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}

	summary := events[0].GetProperty(ical.ComponentPropertySummary)
	if summary == nil || summary.Value != "[Lunch] 355 kcal" {
		t.Errorf("unexpected summary %v", summary)
	}

	start, err := events[0].GetStartAt()
	if err != nil {
		t.Fatalf("reading start: %v", err)
	}
	if !start.Equal(loggedAt) {
		t.Errorf("expected start %v, got %v", loggedAt, start)
	}
}

func TestDiaryFeed_RenderEmpty(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	feed := services.NewDiaryFeed(repository.NewMealLogRepository(db))

	data, err := feed.Render(context.Background(), models.Profile{ID: "nobody"}, time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("rendering feed: %v", err)
	}
	if !strings.Contains(data, "BEGIN:VCALENDAR") || strings.Contains(data, "BEGIN:VEVENT") {
		t.Errorf("expected an empty calendar, got:\n%s", data)
	}
}

func TestMealSummary(t *testing.T) {
	tests := []struct {
		log  models.MealLog
		want string
	}{
		{models.MealLog{MealType: models.MealTypeBreakfast, Totals: models.NutrientTotals{Calories: 412.6}}, "[Breakfast] 413 kcal"},
		{models.MealLog{Totals: models.NutrientTotals{Calories: 95}}, "[Meal] 95 kcal"},
	}
	for _, test := range tests {
		if got := services.MealSummary(test.log); got != test.want {
			t.Errorf("expected %q, got %q", test.want, got)
		}
	}
}
