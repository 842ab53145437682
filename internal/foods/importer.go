package foods

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bensuskins/nutrition-hub/internal/repository"
)

// Importer copies a food table into storage. Entries already stored but
// absent from the table are left in place.
type Importer struct {
	foods    repository.FoodRepository
	settings repository.SettingsRepository
	now      func() time.Time
}

func NewImporter(foods repository.FoodRepository, settings repository.SettingsRepository) *Importer {
	return &Importer{foods: foods, settings: settings, now: time.Now}
}

// Import loads path (or the embedded table when path is empty) and upserts
// every entry in one transaction. The source and time are recorded only after
// the entries are committed.
func (importer *Importer) Import(ctx context.Context, path string) (int, error) {
	table, err := Load(path)
	if err != nil {
		return 0, err
	}

	if err := importer.foods.UpsertAll(ctx, table); err != nil {
		return 0, fmt.Errorf("importing food table: %w", err)
	}

	source := path
	if source == "" {
		source = EmbeddedSource
	}
	if err := importer.settings.Set(ctx, repository.SettingFoodsSource, source); err != nil {
		return 0, err
	}
	if err := importer.settings.Set(ctx, repository.SettingFoodsImportedAt, importer.now().UTC().Format(time.RFC3339)); err != nil {
		return 0, err
	}

	slog.Info("imported food table", "source", source, "foods", len(table))
	return len(table), nil
}
