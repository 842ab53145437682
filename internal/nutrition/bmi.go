package nutrition

import (
	"math"

	"github.com/bensuskins/nutrition-hub/internal/models"
)

type bmiBand struct {
	below    float64
	category models.BMICategory
}

// Evaluated in order; a value not below any bound is Obese.
var bmiBands = []bmiBand{
	{below: 18.5, category: models.BMIUnderweight},
	{below: 25, category: models.BMINormal},
	{below: 30, category: models.BMIOverweight},
}

var bmiAdvice = map[models.BMICategory]string{
	models.BMIUnderweight: "Consider increasing calorie intake",
	models.BMINormal:      "Maintain healthy lifestyle",
	models.BMIOverweight:  "Consider diet and exercise",
	models.BMIObese:       "Consult healthcare professional",
}

// ComputeBMI rounds the reported value to one decimal but categorizes the
// unrounded index.
func ComputeBMI(weightKg, heightCm float64) models.BMIResult {
	bmi := bmiValue(weightKg, heightCm)
	return models.BMIResult{
		Value:    roundTo1(bmi),
		Category: categorizeBMI(bmi),
	}
}

func BMIAdvice(category models.BMICategory) string {
	return bmiAdvice[category]
}

func bmiValue(weightKg, heightCm float64) float64 {
	meters := heightCm / 100
	return weightKg / (meters * meters)
}

func categorizeBMI(bmi float64) models.BMICategory {
	for _, band := range bmiBands {
		if bmi < band.below {
			return band.category
		}
	}
	return models.BMIObese
}

func roundTo1(value float64) float64 {
	return math.Round(value*10) / 10
}

// roundHalfUp rounds .5 towards positive infinity.
func roundHalfUp(value float64) int {
	return int(math.Floor(value + 0.5))
}
