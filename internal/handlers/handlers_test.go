package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bensuskins/nutrition-hub/internal/middleware"
	"github.com/bensuskins/nutrition-hub/internal/repository"
	"github.com/bensuskins/nutrition-hub/internal/services"
	"github.com/bensuskins/nutrition-hub/internal/testutil"
	"github.com/go-chi/chi/v5"
)

func newTestRouter(t *testing.T) (*chi.Mux, *sql.DB) {
	t.Helper()
	db := testutil.NewTestDatabase(t)
	testutil.SeedFoods(t, db)

	profileRepo := repository.NewProfileRepository(db)
	foodRepo := repository.NewFoodRepository(db)
	mealRepo := repository.NewMealLogRepository(db)
	nutritionService := services.NewNutritionService(profileRepo, foodRepo, mealRepo)

	nutritionHandler := NewNutritionHandler(nutritionService)
	profileHandler := NewProfileHandler(nutritionService)
	mealHandler := NewMealHandler(nutritionService)
	foodHandler := NewFoodHandler(foodRepo)
	communityHandler := NewCommunityHandler(services.NewCommunityService(profileRepo, mealRepo))
	diaryHandler := NewDiaryHandler(services.NewDiaryFeed(mealRepo))

	router := chi.NewRouter()
	router.Post("/api/validate/profile", nutritionHandler.ValidateProfile)
	router.Post("/api/validate/meal", nutritionHandler.ValidateMeal)
	router.Post("/api/assessment", nutritionHandler.Assessment)
	router.Post("/api/analyze", nutritionHandler.Analyze)
	router.Post("/api/recommendations", nutritionHandler.Recommendations)
	router.Get("/api/foods", foodHandler.List)
	router.Get("/api/foods/{name}", foodHandler.Get)
	router.Put("/api/foods/{name}", foodHandler.Put)
	router.Delete("/api/foods/{name}", foodHandler.Delete)
	router.Get("/api/profiles", profileHandler.List)
	router.Post("/api/profiles", profileHandler.Create)
	router.Route("/api/profiles/{profileID}", func(r chi.Router) {
		r.Use(middleware.LoadProfile(profileRepo))
		r.Get("/", profileHandler.Get)
		r.Put("/", profileHandler.Update)
		r.Delete("/", profileHandler.Delete)
		r.Get("/meals", mealHandler.List)
		r.Post("/meals", mealHandler.Log)
		r.Get("/summary", mealHandler.Summary)
		r.Get("/diary.ics", diaryHandler.Feed)
	})
	router.Get("/api/community-health", communityHandler.Report)
	return router, db
}

func doRequest(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	request := httptest.NewRequest(method, path, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

func decodeResponse(t *testing.T, recorder *httptest.ResponseRecorder, target interface{}) {
	t.Helper()
	if err := json.NewDecoder(recorder.Body).Decode(target); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
}
