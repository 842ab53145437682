package testutil

import (
	"context"
	"database/sql"
	"testing"

	"github.com/bensuskins/nutrition-hub/internal/database"
	"github.com/bensuskins/nutrition-hub/internal/models"
)

func NewTestDatabase(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}

	if err := database.Migrate(context.Background(), db); err != nil {
		t.Fatalf("migrating test database: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func FloatPtr(value float64) *float64 { return &value }

func IntPtr(value int) *int { return &value }

// ReferenceFoods is a small nutrient table shared by repository, service and
// handler tests.
func ReferenceFoods() []models.Food {
	return []models.Food{
		{Name: "apple", Nutrients: models.NutrientProfile{CaloriesPerUnit: 95, ProteinPerUnit: 0.5, CarbsPerUnit: 25, FatsPerUnit: 0.3, FiberPerUnit: FloatPtr(4)}},
		{Name: "chicken breast", Nutrients: models.NutrientProfile{CaloriesPerUnit: 165, ProteinPerUnit: 31, CarbsPerUnit: 0, FatsPerUnit: 3.6, FiberPerUnit: FloatPtr(0)}},
		{Name: "rice", Nutrients: models.NutrientProfile{CaloriesPerUnit: 205, ProteinPerUnit: 4.3, CarbsPerUnit: 45, FatsPerUnit: 0.4, FiberPerUnit: FloatPtr(0.6)}},
	}
}

// SeedFoods inserts ReferenceFoods directly, bypassing the repository layer.
func SeedFoods(t *testing.T, db *sql.DB) {
	t.Helper()

	for _, food := range ReferenceFoods() {
		_, err := db.Exec(
			"INSERT INTO foods (name, calories, protein, carbs, fats, fiber) VALUES (?, ?, ?, ?, ?, ?)",
			food.Name, food.Nutrients.CaloriesPerUnit, food.Nutrients.ProteinPerUnit,
			food.Nutrients.CarbsPerUnit, food.Nutrients.FatsPerUnit, *food.Nutrients.FiberPerUnit,
		)
		if err != nil {
			t.Fatalf("seeding food %s: %v", food.Name, err)
		}
	}
}

// SeedProfile inserts a moderate-activity profile and returns its id.
func SeedProfile(t *testing.T, db *sql.DB, id string, weightKg, heightCm float64, region string) string {
	t.Helper()

	_, err := db.Exec(
		"INSERT INTO profiles (id, name, age, weight_kg, height_cm, activity_level, region) VALUES (?, ?, ?, ?, ?, ?, ?)",
		id, "Profile "+id, 30, weightKg, heightCm, models.ActivityModerate, region,
	)
	if err != nil {
		t.Fatalf("seeding profile %s: %v", id, err)
	}
	return id
}
