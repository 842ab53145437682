package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/bensuskins/nutrition-hub/internal/models"
)

var ErrNotFound = errors.New("not found")

// ValidationError carries the ordered messages of a failed validation.
type ValidationError struct {
	Errors []string
}

func (err *ValidationError) Error() string {
	return "validation failed: " + strings.Join(err.Errors, "; ")
}

func validationFailure(results ...models.ValidationResult) error {
	var problems []string
	for _, result := range results {
		problems = append(problems, result.Errors...)
	}
	if len(problems) == 0 {
		return nil
	}
	return &ValidationError{Errors: problems}
}

// translateNotFound maps a missing row onto ErrNotFound and wraps everything
// else with action.
func translateNotFound(err error, action string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", action, ErrNotFound)
	}
	return fmt.Errorf("%s: %w", action, err)
}
