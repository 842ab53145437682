package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/bensuskins/nutrition-hub/internal/models"
	"github.com/google/uuid"
)

type ProfileRepository interface {
	Create(ctx context.Context, profile models.Profile) (models.Profile, error)
	FindByID(ctx context.Context, id string) (models.Profile, error)
	FindAll(ctx context.Context) ([]models.Profile, error)
	Update(ctx context.Context, profile models.Profile) (models.Profile, error)
	Delete(ctx context.Context, id string) error
}

type SQLiteProfileRepository struct {
	database *sql.DB
}

func NewProfileRepository(database *sql.DB) *SQLiteProfileRepository {
	return &SQLiteProfileRepository{database: database}
}

const profileColumns = "id, name, age, weight_kg, height_cm, activity_level, region, created_at, updated_at"

func scanProfile(row rowScanner) (models.Profile, error) {
	var profile models.Profile
	err := row.Scan(
		&profile.ID, &profile.Name, &profile.Age, &profile.WeightKg, &profile.HeightCm,
		&profile.ActivityLevel, &profile.Region, &profile.CreatedAt, &profile.UpdatedAt,
	)
	return profile, err
}

func (repository *SQLiteProfileRepository) Create(ctx context.Context, profile models.Profile) (models.Profile, error) {
	if profile.ID == "" {
		profile.ID = uuid.New().String()
	}
	now := time.Now()
	profile.CreatedAt = now
	profile.UpdatedAt = now

	_, err := repository.database.ExecContext(ctx,
		"INSERT INTO profiles ("+profileColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		profile.ID, profile.Name, profile.Age, profile.WeightKg, profile.HeightCm,
		profile.ActivityLevel, profile.Region, profile.CreatedAt, profile.UpdatedAt,
	)
	if err != nil {
		return models.Profile{}, fmt.Errorf("creating profile: %w", err)
	}
	return profile, nil
}

func (repository *SQLiteProfileRepository) FindByID(ctx context.Context, id string) (models.Profile, error) {
	profile, err := scanProfile(repository.database.QueryRowContext(ctx,
		"SELECT "+profileColumns+" FROM profiles WHERE id = ?", id,
	))
	if err != nil {
		return models.Profile{}, fmt.Errorf("finding profile by id: %w", err)
	}
	return profile, nil
}

func (repository *SQLiteProfileRepository) FindAll(ctx context.Context) ([]models.Profile, error) {
	rows, err := repository.database.QueryContext(ctx,
		"SELECT "+profileColumns+" FROM profiles ORDER BY name, created_at",
	)
	if err != nil {
		return nil, fmt.Errorf("finding all profiles: %w", err)
	}
	defer rows.Close()

	profiles := []models.Profile{}
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning profile: %w", err)
		}
		profiles = append(profiles, profile)
	}
	return profiles, rows.Err()
}

// Update overwrites every editable field and returns the stored profile.
func (repository *SQLiteProfileRepository) Update(ctx context.Context, profile models.Profile) (models.Profile, error) {
	profile.UpdatedAt = time.Now()
	result, err := repository.database.ExecContext(ctx,
		`UPDATE profiles SET name = ?, age = ?, weight_kg = ?, height_cm = ?, activity_level = ?, region = ?, updated_at = ?
		WHERE id = ?`,
		profile.Name, profile.Age, profile.WeightKg, profile.HeightCm,
		profile.ActivityLevel, profile.Region, profile.UpdatedAt, profile.ID,
	)
	if err != nil {
		return models.Profile{}, fmt.Errorf("updating profile: %w", err)
	}
	if err := requireAffected(result, "updating profile"); err != nil {
		return models.Profile{}, err
	}
	return repository.FindByID(ctx, profile.ID)
}

func (repository *SQLiteProfileRepository) Delete(ctx context.Context, id string) error {
	result, err := repository.database.ExecContext(ctx, "DELETE FROM profiles WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting profile: %w", err)
	}
	return requireAffected(result, "deleting profile")
}
