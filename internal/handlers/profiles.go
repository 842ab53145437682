package handlers

import (
	"net/http"

	"github.com/bensuskins/nutrition-hub/internal/middleware"
	"github.com/bensuskins/nutrition-hub/internal/models"
	"github.com/bensuskins/nutrition-hub/internal/services"
)

type ProfileHandler struct {
	service *services.NutritionService
}

func NewProfileHandler(service *services.NutritionService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

func (handler *ProfileHandler) List(w http.ResponseWriter, r *http.Request) {
	profiles, err := handler.service.ListProfiles(r.Context())
	if err != nil {
		writeServiceError(w, err, "profiles")
		return
	}
	writeJSON(w, http.StatusOK, profiles)
}

func (handler *ProfileHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input models.ProfileInput
	if !decodeJSON(w, r, &input) {
		return
	}

	profile, err := handler.service.CreateProfile(r.Context(), input)
	if err != nil {
		writeServiceError(w, err, "profile")
		return
	}
	writeJSON(w, http.StatusCreated, profile)
}

// Get, Update and Delete run behind middleware.LoadProfile.
func (handler *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, middleware.GetProfile(r.Context()))
}

func (handler *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input models.ProfileInput
	if !decodeJSON(w, r, &input) {
		return
	}

	profile, err := handler.service.UpdateProfile(r.Context(), middleware.GetProfile(r.Context()).ID, input)
	if err != nil {
		writeServiceError(w, err, "profile")
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (handler *ProfileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := handler.service.DeleteProfile(r.Context(), middleware.GetProfile(r.Context()).ID); err != nil {
		writeServiceError(w, err, "profile")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
