package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/bensuskins/nutrition-hub/internal/models"
	"github.com/bensuskins/nutrition-hub/internal/nutrition"
)

type FoodRepository interface {
	Upsert(ctx context.Context, food models.Food) error
	UpsertAll(ctx context.Context, foods []models.Food) error
	FindByName(ctx context.Context, name string) (models.Food, error)
	FindAll(ctx context.Context) ([]models.Food, error)
	Delete(ctx context.Context, name string) error
	Database(ctx context.Context) (models.NutrientDatabase, error)
	Count(ctx context.Context) (int, error)
}

type SQLiteFoodRepository struct {
	database *sql.DB
}

func NewFoodRepository(database *sql.DB) *SQLiteFoodRepository {
	return &SQLiteFoodRepository{database: database}
}

const foodColumns = "name, calories, protein, carbs, fats, fiber, created_at, updated_at"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFood(row rowScanner) (models.Food, error) {
	var food models.Food
	var fiber sql.NullFloat64
	err := row.Scan(
		&food.Name, &food.Nutrients.CaloriesPerUnit, &food.Nutrients.ProteinPerUnit,
		&food.Nutrients.CarbsPerUnit, &food.Nutrients.FatsPerUnit, &fiber,
		&food.CreatedAt, &food.UpdatedAt,
	)
	if err != nil {
		return models.Food{}, err
	}
	if fiber.Valid {
		food.Nutrients.FiberPerUnit = &fiber.Float64
	}
	return food, nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Upsert stores food under its lower-cased name, replacing any existing entry.
func (repository *SQLiteFoodRepository) Upsert(ctx context.Context, food models.Food) error {
	return upsertFood(ctx, repository.database, food, time.Now())
}

// UpsertAll stores every entry in one transaction. Either all of them are
// written or none are.
func (repository *SQLiteFoodRepository) UpsertAll(ctx context.Context, foods []models.Food) error {
	tx, err := repository.database.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning food import: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()
	for _, food := range foods {
		if err := upsertFood(ctx, tx, food, now); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing food import: %w", err)
	}
	return nil
}

func upsertFood(ctx context.Context, db execer, food models.Food, now time.Time) error {
	var fiber sql.NullFloat64
	if food.Nutrients.FiberPerUnit != nil {
		fiber = sql.NullFloat64{Float64: *food.Nutrients.FiberPerUnit, Valid: true}
	}

	_, err := db.ExecContext(ctx,
		`INSERT INTO foods (name, calories, protein, carbs, fats, fiber, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (name) DO UPDATE SET
			calories = excluded.calories,
			protein = excluded.protein,
			carbs = excluded.carbs,
			fats = excluded.fats,
			fiber = excluded.fiber,
			updated_at = excluded.updated_at`,
		nutrition.FoodKey(food.Name), food.Nutrients.CaloriesPerUnit, food.Nutrients.ProteinPerUnit,
		food.Nutrients.CarbsPerUnit, food.Nutrients.FatsPerUnit, fiber, now, now,
	)
	if err != nil {
		return fmt.Errorf("upserting food %s: %w", food.Name, err)
	}
	return nil
}

func (repository *SQLiteFoodRepository) FindByName(ctx context.Context, name string) (models.Food, error) {
	food, err := scanFood(repository.database.QueryRowContext(ctx,
		"SELECT "+foodColumns+" FROM foods WHERE name = ?", nutrition.FoodKey(name),
	))
	if err != nil {
		return models.Food{}, fmt.Errorf("finding food by name: %w", err)
	}
	return food, nil
}

func (repository *SQLiteFoodRepository) FindAll(ctx context.Context) ([]models.Food, error) {
	rows, err := repository.database.QueryContext(ctx, "SELECT "+foodColumns+" FROM foods ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("finding all foods: %w", err)
	}
	defer rows.Close()

	foods := []models.Food{}
	for rows.Next() {
		food, err := scanFood(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning food: %w", err)
		}
		foods = append(foods, food)
	}
	return foods, rows.Err()
}

func (repository *SQLiteFoodRepository) Delete(ctx context.Context, name string) error {
	result, err := repository.database.ExecContext(ctx, "DELETE FROM foods WHERE name = ?", nutrition.FoodKey(name))
	if err != nil {
		return fmt.Errorf("deleting food: %w", err)
	}
	return requireAffected(result, "deleting food")
}

// Database snapshots the stored table in the shape the aggregator reads.
func (repository *SQLiteFoodRepository) Database(ctx context.Context) (models.NutrientDatabase, error) {
	foods, err := repository.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	database := make(models.NutrientDatabase, len(foods))
	for _, food := range foods {
		database[food.Name] = food.Nutrients
	}
	return database, nil
}

func (repository *SQLiteFoodRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := repository.database.QueryRowContext(ctx, "SELECT COUNT(*) FROM foods").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting foods: %w", err)
	}
	return count, nil
}

// requireAffected reports sql.ErrNoRows when a write matched nothing.
func requireAffected(result sql.Result, action string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", action, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", action, sql.ErrNoRows)
	}
	return nil
}
