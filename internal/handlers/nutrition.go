package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/bensuskins/nutrition-hub/internal/models"
	"github.com/bensuskins/nutrition-hub/internal/nutrition"
	"github.com/bensuskins/nutrition-hub/internal/services"
)

// NutritionHandler serves the stateless validation and analysis endpoints.
type NutritionHandler struct {
	service *services.NutritionService
}

func NewNutritionHandler(service *services.NutritionService) *NutritionHandler {
	return &NutritionHandler{service: service}
}

func (handler *NutritionHandler) ValidateProfile(w http.ResponseWriter, r *http.Request) {
	var input models.ProfileInput
	if !decodeJSON(w, r, &input) {
		return
	}
	writeJSON(w, http.StatusOK, nutrition.ValidateUserProfile(input))
}

func (handler *NutritionHandler) ValidateMeal(w http.ResponseWriter, r *http.Request) {
	var input models.MealInput
	if !decodeJSON(w, r, &input) {
		return
	}
	writeJSON(w, http.StatusOK, nutrition.ValidateMealSubmission(input))
}

func (handler *NutritionHandler) Assessment(w http.ResponseWriter, r *http.Request) {
	var input models.ProfileInput
	if !decodeJSON(w, r, &input) {
		return
	}

	assessment, err := handler.service.Assess(input)
	if err != nil {
		writeServiceError(w, err, "assessment")
		return
	}
	writeJSON(w, http.StatusOK, assessment)
}

// Analyze expects {"profile": {...}, "food_items": [...], "meal_type": "..."}.
func (handler *NutritionHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}

	// MealInput decodes itself, so the profile is read in a separate pass
	var request struct {
		Profile models.ProfileInput `json:"profile"`
	}
	var meal models.MealInput
	if json.Unmarshal(body, &request) != nil || json.Unmarshal(body, &meal) != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	analysis, err := handler.service.Analyze(r.Context(), request.Profile, meal)
	if err != nil {
		writeServiceError(w, err, "analysis")
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}

// Recommendations expects {"goals": ["weight_loss", ...]}.
func (handler *NutritionHandler) Recommendations(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Goals []string `json:"goals"`
	}
	if !decodeJSON(w, r, &request) {
		return
	}
	writeJSON(w, http.StatusOK, nutrition.AdviseGoals(request.Goals))
}
