// Package foods loads the nutrient reference table from YAML and keeps the
// stored copy in sync with it.
package foods

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/bensuskins/nutrition-hub/internal/models"
	"github.com/bensuskins/nutrition-hub/internal/nutrition"
	"gopkg.in/yaml.v3"
)

// EmbeddedSource names the built-in table in import metadata.
const EmbeddedSource = "embedded"

//go:embed default_foods.yaml
var defaultCatalog []byte

type catalogFile struct {
	Foods map[string]models.NutrientProfile `yaml:"foods"`
}

// Parse decodes a YAML table and validates every entry. Entries are returned
// sorted by their lower-cased name.
func Parse(data []byte) ([]models.Food, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decoding food table: %w", err)
	}
	if len(file.Foods) == 0 {
		return nil, fmt.Errorf("food table has no entries")
	}

	seen := make(map[string]string, len(file.Foods))
	foods := make([]models.Food, 0, len(file.Foods))
	var problems []string
	for name, nutrients := range file.Foods {
		key := nutrition.FoodKey(strings.TrimSpace(name))
		if previous, ok := seen[key]; ok {
			problems = append(problems, fmt.Sprintf("%q duplicates %q", name, previous))
			continue
		}
		seen[key] = name

		if result := nutrition.ValidateNutrientProfile(key, nutrients); !result.Valid {
			problems = append(problems, fmt.Sprintf("%q: %s", name, strings.Join(result.Errors, ", ")))
			continue
		}
		foods = append(foods, models.Food{Name: key, Nutrients: nutrients})
	}

	if len(problems) > 0 {
		sort.Strings(problems)
		return nil, fmt.Errorf("invalid food table: %s", strings.Join(problems, "; "))
	}

	sort.Slice(foods, func(i, j int) bool { return foods[i].Name < foods[j].Name })
	return foods, nil
}

func Default() ([]models.Food, error) {
	return Parse(defaultCatalog)
}

// Load reads the table at path, or the embedded table when path is empty.
func Load(path string) ([]models.Food, error) {
	if path == "" {
		return Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading food table: %w", err)
	}
	return Parse(data)
}
