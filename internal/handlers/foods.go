package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/bensuskins/nutrition-hub/internal/models"
	"github.com/bensuskins/nutrition-hub/internal/nutrition"
	"github.com/bensuskins/nutrition-hub/internal/repository"
	"github.com/go-chi/chi/v5"
)

type FoodHandler struct {
	foodRepo repository.FoodRepository
}

func NewFoodHandler(foodRepo repository.FoodRepository) *FoodHandler {
	return &FoodHandler{foodRepo: foodRepo}
}

func (handler *FoodHandler) List(w http.ResponseWriter, r *http.Request) {
	foods, err := handler.foodRepo.FindAll(r.Context())
	if err != nil {
		slog.Error("listing foods", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load foods")
		return
	}
	writeJSON(w, http.StatusOK, foods)
}

func (handler *FoodHandler) Get(w http.ResponseWriter, r *http.Request) {
	food, err := handler.foodRepo.FindByName(r.Context(), chi.URLParam(r, "name"))
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusNotFound, "food not found")
		return
	}
	if err != nil {
		slog.Error("finding food", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load food")
		return
	}
	writeJSON(w, http.StatusOK, food)
}

// Put creates or replaces the named entry with the per-unit nutrients in the body.
func (handler *FoodHandler) Put(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	var nutrients models.NutrientProfile
	if !decodeJSON(w, r, &nutrients) {
		return
	}

	if result := nutrition.ValidateNutrientProfile(name, nutrients); !result.Valid {
		writeJSON(w, http.StatusBadRequest, result)
		return
	}

	ctx := r.Context()
	if err := handler.foodRepo.Upsert(ctx, models.Food{Name: name, Nutrients: nutrients}); err != nil {
		slog.Error("saving food", "name", name, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save food")
		return
	}

	food, err := handler.foodRepo.FindByName(ctx, name)
	if err != nil {
		slog.Error("reloading food", "name", name, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load food")
		return
	}
	writeJSON(w, http.StatusOK, food)
}

func (handler *FoodHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := handler.foodRepo.Delete(r.Context(), chi.URLParam(r, "name"))
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusNotFound, "food not found")
		return
	}
	if err != nil {
		slog.Error("deleting food", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete food")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
