package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/bensuskins/nutrition-hub/internal/models"
	"github.com/google/uuid"
)

// MealLogFilter bounds logged_at to [From, To). Zero values leave that side open.
type MealLogFilter struct {
	From time.Time
	To   time.Time
}

type MealLogRepository interface {
	Create(ctx context.Context, log models.MealLog) (models.MealLog, error)
	FindByProfile(ctx context.Context, profileID string, filter MealLogFilter) ([]models.MealLog, error)
	AverageDailyCalories(ctx context.Context) (map[string]float64, error)
}

type SQLiteMealLogRepository struct {
	database *sql.DB
}

func NewMealLogRepository(database *sql.DB) *SQLiteMealLogRepository {
	return &SQLiteMealLogRepository{database: database}
}

// Create stores the log and its items in one transaction. Times are kept in
// UTC so range filters compare consistently.
func (repository *SQLiteMealLogRepository) Create(ctx context.Context, log models.MealLog) (models.MealLog, error) {
	if log.ID == "" {
		log.ID = uuid.New().String()
	}
	if log.LoggedAt.IsZero() {
		log.LoggedAt = time.Now()
	}
	log.LoggedAt = log.LoggedAt.UTC()

	transaction, err := repository.database.BeginTx(ctx, nil)
	if err != nil {
		return models.MealLog{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer transaction.Rollback()

	if _, err := transaction.ExecContext(ctx,
		`INSERT INTO meal_logs (id, profile_id, meal_type, calories, protein, carbs, fats, fiber, logged_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		log.ID, log.ProfileID, log.MealType, log.Totals.Calories, log.Totals.Protein,
		log.Totals.Carbs, log.Totals.Fats, log.Totals.Fiber, log.LoggedAt,
	); err != nil {
		return models.MealLog{}, fmt.Errorf("creating meal log: %w", err)
	}

	for position, item := range log.Items {
		if _, err := transaction.ExecContext(ctx,
			"INSERT INTO meal_log_items (meal_log_id, position, name, quantity) VALUES (?, ?, ?, ?)",
			log.ID, position, item.Name, item.Quantity,
		); err != nil {
			return models.MealLog{}, fmt.Errorf("inserting meal log item: %w", err)
		}
	}

	if err := transaction.Commit(); err != nil {
		return models.MealLog{}, fmt.Errorf("committing meal log: %w", err)
	}
	return log, nil
}

// FindByProfile returns logs oldest first, each with its items in entry order.
func (repository *SQLiteMealLogRepository) FindByProfile(ctx context.Context, profileID string, filter MealLogFilter) ([]models.MealLog, error) {
	query := `SELECT l.id, l.profile_id, l.meal_type, l.calories, l.protein, l.carbs, l.fats, l.fiber, l.logged_at,
		i.name, i.quantity
	FROM meal_logs l
	LEFT JOIN meal_log_items i ON i.meal_log_id = l.id
	WHERE l.profile_id = ?`

	args := []any{profileID}
	if !filter.From.IsZero() {
		query += " AND l.logged_at >= ?"
		args = append(args, filter.From.UTC())
	}
	if !filter.To.IsZero() {
		query += " AND l.logged_at < ?"
		args = append(args, filter.To.UTC())
	}
	query += " ORDER BY l.logged_at ASC, l.id, i.position"

	rows, err := repository.database.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("finding meal logs: %w", err)
	}
	defer rows.Close()

	logs := []models.MealLog{}
	for rows.Next() {
		var log models.MealLog
		var itemName sql.NullString
		var itemQuantity sql.NullFloat64
		if err := rows.Scan(
			&log.ID, &log.ProfileID, &log.MealType,
			&log.Totals.Calories, &log.Totals.Protein, &log.Totals.Carbs, &log.Totals.Fats, &log.Totals.Fiber,
			&log.LoggedAt, &itemName, &itemQuantity,
		); err != nil {
			return nil, fmt.Errorf("scanning meal log: %w", err)
		}

		if len(logs) == 0 || logs[len(logs)-1].ID != log.ID {
			log.Items = []models.FoodItem{}
			logs = append(logs, log)
		}
		if itemName.Valid {
			current := &logs[len(logs)-1]
			current.Items = append(current.Items, models.FoodItem{Name: itemName.String, Quantity: itemQuantity.Float64})
		}
	}
	return logs, rows.Err()
}

// AverageDailyCalories averages each profile's per-day calorie sums. Profiles
// with no logs are absent from the result.
func (repository *SQLiteMealLogRepository) AverageDailyCalories(ctx context.Context) (map[string]float64, error) {
	rows, err := repository.database.QueryContext(ctx,
		`SELECT profile_id, AVG(day_total) FROM (
			SELECT profile_id, substr(logged_at, 1, 10) AS day, SUM(calories) AS day_total
			FROM meal_logs
			GROUP BY profile_id, day
		) GROUP BY profile_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("averaging daily calories: %w", err)
	}
	defer rows.Close()

	averages := make(map[string]float64)
	for rows.Next() {
		var profileID string
		var average float64
		if err := rows.Scan(&profileID, &average); err != nil {
			return nil, fmt.Errorf("scanning daily calories: %w", err)
		}
		averages[profileID] = average
	}
	return averages, rows.Err()
}
