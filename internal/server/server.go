package server

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/bensuskins/nutrition-hub/internal/config"
	"github.com/bensuskins/nutrition-hub/internal/handlers"
	"github.com/bensuskins/nutrition-hub/internal/middleware"
	"github.com/bensuskins/nutrition-hub/internal/repository"
	"github.com/bensuskins/nutrition-hub/internal/services"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	router *chi.Mux
	config config.Config
}

func New(database *sql.DB, cfg config.Config) *Server {
	profileRepo := repository.NewProfileRepository(database)
	foodRepo := repository.NewFoodRepository(database)
	mealRepo := repository.NewMealLogRepository(database)

	nutritionService := services.NewNutritionService(profileRepo, foodRepo, mealRepo)
	communityService := services.NewCommunityService(profileRepo, mealRepo)
	diaryFeed := services.NewDiaryFeed(mealRepo)

	nutritionHandler := handlers.NewNutritionHandler(nutritionService)
	profileHandler := handlers.NewProfileHandler(nutritionService)
	mealHandler := handlers.NewMealHandler(nutritionService)
	foodHandler := handlers.NewFoodHandler(foodRepo)
	communityHandler := handlers.NewCommunityHandler(communityService)
	diaryHandler := handlers.NewDiaryHandler(diaryFeed)

	router := chi.NewRouter()

	router.Use(chimiddleware.Logger)
	router.Use(chimiddleware.Recoverer)
	router.Use(chimiddleware.Compress(5))
	router.Use(cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	router.Route("/api", func(r chi.Router) {
		r.Post("/validate/profile", nutritionHandler.ValidateProfile)
		r.Post("/validate/meal", nutritionHandler.ValidateMeal)
		r.Post("/assessment", nutritionHandler.Assessment)
		r.Post("/analyze", nutritionHandler.Analyze)
		r.Post("/recommendations", nutritionHandler.Recommendations)

		r.Get("/foods", foodHandler.List)
		r.Get("/foods/{name}", foodHandler.Get)
		r.Put("/foods/{name}", foodHandler.Put)
		r.Delete("/foods/{name}", foodHandler.Delete)

		r.Get("/profiles", profileHandler.List)
		r.Post("/profiles", profileHandler.Create)

		r.Route("/profiles/{"+middleware.ProfileIDParam+"}", func(r chi.Router) {
			r.Use(middleware.LoadProfile(profileRepo))

			r.Get("/", profileHandler.Get)
			r.Put("/", profileHandler.Update)
			r.Delete("/", profileHandler.Delete)

			r.Get("/meals", mealHandler.List)
			r.Post("/meals", mealHandler.Log)
			r.Get("/summary", mealHandler.Summary)
			r.Get("/diary.ics", diaryHandler.Feed)
		})

		r.Get("/community-health", communityHandler.Report)
	})

	server := &Server{
		router: router,
		config: cfg,
	}

	return server
}

func (server *Server) Handler() http.Handler {
	return server.router
}

// Start serves until ctx is cancelled, then drains in-flight requests.
func (server *Server) Start(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              ":" + server.config.Port,
		Handler:           server.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("starting server", "address", httpServer.Addr)
		err := httpServer.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		serveErr <- err
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-serveErr
}
