package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/bensuskins/nutrition-hub/internal/models"
	"github.com/bensuskins/nutrition-hub/internal/repository"
)

const mealEventDuration = 30 * time.Minute

// DiaryFeed renders a profile's meal logs as an iCalendar feed, one event
// per logged meal.
type DiaryFeed struct {
	mealRepo repository.MealLogRepository
}

func NewDiaryFeed(mealRepo repository.MealLogRepository) *DiaryFeed {
	return &DiaryFeed{mealRepo: mealRepo}
}

func (feed *DiaryFeed) Render(ctx context.Context, profile models.Profile, from, to time.Time) (string, error) {
	logs, err := feed.mealRepo.FindByProfile(ctx, profile.ID, repository.MealLogFilter{From: from, To: to})
	if err != nil {
		return "", fmt.Errorf("loading meal diary: %w", err)
	}

	calendar := ical.NewCalendar()
	calendar.SetMethod(ical.MethodPublish)
	calendar.SetProductId("-//Nutrition Hub//Meal Diary//EN")
	calendar.SetXWRCalName(diaryName(profile))

	for _, log := range logs {
		event := calendar.AddEvent(fmt.Sprintf("meal-%s@nutrition-hub", log.ID))
		event.SetSummary(MealSummary(log))
		event.SetDescription(mealDescription(log))
		event.SetStartAt(log.LoggedAt)
		event.SetEndAt(log.LoggedAt.Add(mealEventDuration))
		event.SetDtStampTime(log.LoggedAt)
	}

	return calendar.Serialize(), nil
}

// MealSummary is the one-line title of a logged meal, e.g. "[Lunch] 540 kcal".
func MealSummary(log models.MealLog) string {
	label := "Meal"
	if log.MealType != "" {
		label = capitalizeFirst(string(log.MealType))
	}
	return fmt.Sprintf("[%s] %.0f kcal", label, log.Totals.Calories)
}

func mealDescription(log models.MealLog) string {
	items := make([]string, 0, len(log.Items))
	for _, item := range log.Items {
		items = append(items, fmt.Sprintf("%g x %s", item.Quantity, item.Name))
	}

	return fmt.Sprintf("%s\nProtein %.1fg, carbs %.1fg, fats %.1fg, fiber %.1fg",
		strings.Join(items, ", "),
		log.Totals.Protein, log.Totals.Carbs, log.Totals.Fats, log.Totals.Fiber,
	)
}

func diaryName(profile models.Profile) string {
	if profile.Name == "" {
		return "Meal Diary"
	}
	return profile.Name + " Meal Diary"
}

func capitalizeFirst(value string) string {
	if value == "" {
		return value
	}
	return strings.ToUpper(value[:1]) + value[1:]
}
