package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/bensuskins/nutrition-hub/internal/database"
	"github.com/bensuskins/nutrition-hub/internal/foods"
	"github.com/bensuskins/nutrition-hub/internal/repository"
	"github.com/bensuskins/nutrition-hub/internal/server"
	"golang.org/x/sync/errgroup"
)

// serve runs until SIGINT or SIGTERM, or until the server or watcher fails.
func (application *app) serve(ctx context.Context) error {
	cfg := application.cfg
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	importer := foods.NewImporter(repository.NewFoodRepository(db), repository.NewSettingsRepository(db))
	if _, err := importer.Import(ctx, cfg.FoodDatabasePath); err != nil {
		return fmt.Errorf("importing food table: %w", err)
	}

	group, ctx := errgroup.WithContext(ctx)

	if cfg.WatchFoodDatabase {
		if cfg.FoodDatabasePath == "" {
			slog.Warn("WATCH_FOOD_DATABASE is set without FOOD_DATABASE_PATH; nothing to watch")
		} else {
			watcher, err := foods.NewWatcher(cfg.FoodDatabasePath, importer, foods.DefaultDebounce)
			if err != nil {
				return fmt.Errorf("creating food table watcher: %w", err)
			}
			if err := watcher.Start(ctx); err != nil {
				return fmt.Errorf("starting food table watcher: %w", err)
			}
			group.Go(func() error {
				<-ctx.Done()
				watcher.Stop()
				return nil
			})
		}
	}

	group.Go(func() error {
		return server.New(db, cfg).Start(ctx)
	})

	return group.Wait()
}
