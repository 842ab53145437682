package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/bensuskins/nutrition-hub/internal/config"
	"github.com/bensuskins/nutrition-hub/internal/database"
	"github.com/bensuskins/nutrition-hub/internal/foods"
	"github.com/bensuskins/nutrition-hub/internal/models"
	"github.com/bensuskins/nutrition-hub/internal/nutrition"
	"github.com/bensuskins/nutrition-hub/internal/repository"
	"github.com/spf13/cobra"
)

// app carries the configuration loaded before any subcommand runs.
type app struct {
	cfg config.Config
}

func newRootCommand() *cobra.Command {
	application := &app{}

	root := &cobra.Command{
		Use:           "nutrition-hub",
		Short:         "Nutrition analysis service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			application.cfg = cfg
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return application.serve(cmd.Context())
		},
	}

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return application.serve(cmd.Context())
		},
	}

	root.AddCommand(serve, application.foodsCommand(), bmiCommand(), targetsCommand())
	return root
}

func (application *app) foodsCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "foods",
		Short: "Manage the nutrient reference table",
	}

	importCommand := &cobra.Command{
		Use:   "import [path]",
		Short: "Import a YAML food table (the embedded table when no path is given)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := application.cfg.FoodDatabasePath
			if len(args) == 1 {
				path = args[0]
			}

			db, err := application.openDatabase(cmd)
			if err != nil {
				return err
			}
			defer db.Close()

			importer := foods.NewImporter(repository.NewFoodRepository(db), repository.NewSettingsRepository(db))
			count, err := importer.Import(cmd.Context(), path)
			if err != nil {
				return err
			}

			source := path
			if source == "" {
				source = foods.EmbeddedSource
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d foods from %s\n", count, source)
			return nil
		},
	}

	listCommand := &cobra.Command{
		Use:   "list",
		Short: "Print the stored food table and where it was imported from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := application.openDatabase(cmd)
			if err != nil {
				return err
			}
			defer db.Close()

			ctx := cmd.Context()
			foodRepo := repository.NewFoodRepository(db)
			settingsRepo := repository.NewSettingsRepository(db)

			count, err := foodRepo.Count(ctx)
			if err != nil {
				return err
			}
			source, err := settingsRepo.GetOrDefault(ctx, repository.SettingFoodsSource, "none")
			if err != nil {
				return err
			}
			importedAt, err := settingsRepo.GetOrDefault(ctx, repository.SettingFoodsImportedAt, "never")
			if err != nil {
				return err
			}

			entries, err := foodRepo.FindAll(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%d foods, source %s, imported %s\n", count, source, importedAt)
			fmt.Fprintf(out, "%-20s %9s %9s %9s %9s %9s\n", "NAME", "KCAL", "PROTEIN", "CARBS", "FATS", "FIBER")
			for _, food := range entries {
				fiber := "-"
				if food.Nutrients.FiberPerUnit != nil {
					fiber = fmt.Sprintf("%.1f", *food.Nutrients.FiberPerUnit)
				}
				fmt.Fprintf(out, "%-20s %9.1f %9.1f %9.1f %9.1f %9s\n",
					food.Name,
					food.Nutrients.CaloriesPerUnit,
					food.Nutrients.ProteinPerUnit,
					food.Nutrients.CarbsPerUnit,
					food.Nutrients.FatsPerUnit,
					fiber,
				)
			}
			return nil
		},
	}

	command.AddCommand(importCommand, listCommand)
	return command
}

func (application *app) openDatabase(cmd *cobra.Command) (*sql.DB, error) {
	db, err := database.Open(application.cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := database.Migrate(cmd.Context(), db); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return db, nil
}

func bmiCommand() *cobra.Command {
	var weight, height float64

	command := &cobra.Command{
		Use:   "bmi",
		Short: "Compute the body mass index",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if weight <= 0 || height <= 0 {
				return fmt.Errorf("weight and height must be positive")
			}
			result := nutrition.ComputeBMI(weight, height)
			fmt.Fprintf(cmd.OutOrStdout(), "BMI %.1f (%s): %s\n", result.Value, result.Category, nutrition.BMIAdvice(result.Category))
			return nil
		},
	}

	command.Flags().Float64Var(&weight, "weight", 0, "weight in kilograms")
	command.Flags().Float64Var(&height, "height", 0, "height in centimetres")
	command.MarkFlagRequired("weight")
	command.MarkFlagRequired("height")
	return command
}

func targetsCommand() *cobra.Command {
	var weight float64
	var activity string

	command := &cobra.Command{
		Use:   "targets",
		Short: "Compute daily nutrient targets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if weight <= 0 {
				return fmt.Errorf("weight must be positive")
			}
			targets := nutrition.ComputeDailyTargets(weight, nutrition.NormalizeActivityLevel(activity))

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "calories  %d kcal\n", targets.Calories)
			fmt.Fprintf(out, "protein   %d g\n", targets.Protein)
			fmt.Fprintf(out, "carbs     %d g\n", targets.Carbs)
			fmt.Fprintf(out, "fats      %d g\n", targets.Fats)
			fmt.Fprintf(out, "fiber     %d g\n", targets.Fiber)
			return nil
		},
	}

	command.Flags().Float64Var(&weight, "weight", 0, "weight in kilograms")
	command.Flags().StringVar(&activity, "activity", string(models.ActivityModerate), "activity level")
	command.MarkFlagRequired("weight")
	return command
}
