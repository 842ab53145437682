package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/bensuskins/nutrition-hub/internal/middleware"
	"github.com/bensuskins/nutrition-hub/internal/models"
	"github.com/bensuskins/nutrition-hub/internal/services"
)

type MealHandler struct {
	service *services.NutritionService
}

func NewMealHandler(service *services.NutritionService) *MealHandler {
	return &MealHandler{service: service}
}

func (handler *MealHandler) List(w http.ResponseWriter, r *http.Request) {
	from, to, err := parseDateRange(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	meals, err := handler.service.ListMeals(r.Context(), middleware.GetProfile(r.Context()).ID, from, to)
	if err != nil {
		writeServiceError(w, err, "meals")
		return
	}
	writeJSON(w, http.StatusOK, meals)
}

// Log accepts a meal submission with an optional RFC 3339 "logged_at".
func (handler *MealHandler) Log(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}

	var input models.MealInput
	var timing struct {
		LoggedAt *time.Time `json:"logged_at"`
	}
	if json.Unmarshal(body, &input) != nil || json.Unmarshal(body, &timing) != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	var loggedAt time.Time
	if timing.LoggedAt != nil {
		loggedAt = *timing.LoggedAt
	}

	meal, err := handler.service.LogMeal(r.Context(), middleware.GetProfile(r.Context()), input, loggedAt)
	if err != nil {
		writeServiceError(w, err, "meal")
		return
	}
	writeJSON(w, http.StatusCreated, meal)
}

func (handler *MealHandler) Summary(w http.ResponseWriter, r *http.Request) {
	date := time.Now().UTC()
	if value := r.URL.Query().Get("date"); value != "" {
		parsed, err := time.Parse(services.DateLayout, value)
		if err != nil {
			writeError(w, http.StatusBadRequest, "date must be a date like 2006-01-02")
			return
		}
		date = parsed
	}

	summary, err := handler.service.DailySummary(r.Context(), middleware.GetProfile(r.Context()), date)
	if err != nil {
		writeServiceError(w, err, "summary")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
