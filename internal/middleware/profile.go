package middleware

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/bensuskins/nutrition-hub/internal/models"
	"github.com/bensuskins/nutrition-hub/internal/repository"
	"github.com/go-chi/chi/v5"
)

type contextKey string

const ProfileContextKey contextKey = "profile"

// ProfileIDParam is the chi route parameter LoadProfile reads.
const ProfileIDParam = "profileID"

// LoadProfile resolves {profileID} and stores the profile in the request
// context, answering 404 when it does not exist.
func LoadProfile(profileRepo repository.ProfileRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			profile, err := profileRepo.FindByID(r.Context(), chi.URLParam(r, ProfileIDParam))
			if errors.Is(err, sql.ErrNoRows) {
				writeError(w, http.StatusNotFound, "profile not found")
				return
			}
			if err != nil {
				slog.Error("loading profile", "error", err)
				writeError(w, http.StatusInternalServerError, "failed to load profile")
				return
			}

			ctx := context.WithValue(r.Context(), ProfileContextKey, profile)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetProfile(ctx context.Context) models.Profile {
	profile, _ := ctx.Value(ProfileContextKey).(models.Profile)
	return profile
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
