package nutrition

import "github.com/bensuskins/nutrition-hub/internal/models"

const (
	defaultAvgCalories = 2000.0
	obeseBMI           = 30.0
	overweightBMI      = 25.0
	unknownRegion      = "unknown"
)

type communityRule struct {
	applies func(models.CommunityStats) bool
	message string
}

var communityRules = []communityRule{
	{
		applies: func(stats models.CommunityStats) bool { return stats.ObesityRatePercent > 30 },
		message: "High obesity rate detected. Implement community nutrition education programs.",
	},
	{
		applies: func(stats models.CommunityStats) bool { return stats.AvgCalories > 2500 },
		message: "Average calorie intake is high. Promote balanced diet awareness in community.",
	},
	{
		applies: func(stats models.CommunityStats) bool { return stats.AvgBMI > 27 },
		message: "Elevated average BMI. Encourage physical activity initiatives.",
	},
}

const communityFallback = "Good community health indicators observed. Maintain current health initiatives."

// ComputeCommunityStats returns the zero value for an empty population. Each
// record's average calories are scored with AssessHealthRisk for the risk
// distribution; there is no per-record fat intake, so no record scores high.
func ComputeCommunityStats(records []models.CommunityRecord) models.CommunityStats {
	if len(records) == 0 {
		return models.CommunityStats{}
	}

	var bmiSum, calorieSum float64
	var obese, overweight int
	var riskScores [3]int
	for _, record := range records {
		bmi := bmiValue(record.WeightKg, record.HeightCm)
		bmiSum += bmi
		if bmi >= obeseBMI {
			obese++
		}
		if bmi >= overweightBMI {
			overweight++
		}

		calories := defaultAvgCalories
		if record.AvgCalories != nil {
			calories = *record.AvgCalories
		}
		calorieSum += calories
		riskScores[AssessHealthRisk(models.NutrientTotals{Calories: calories}).Score]++
	}

	count := float64(len(records))
	return models.CommunityStats{
		SampleSize:            len(records),
		AvgBMI:                roundTo1(bmiSum / count),
		AvgCalories:           float64(roundHalfUp(calorieSum / count)),
		ObesityRatePercent:    roundTo1(float64(obese) / count * 100),
		OverweightRatePercent: roundTo1(float64(overweight) / count * 100),
		HealthRisk: models.RiskDistribution{
			LowPercent:    roundTo1(float64(riskScores[0]) / count * 100),
			MediumPercent: roundTo1(float64(riskScores[1]) / count * 100),
			HighPercent:   roundTo1(float64(riskScores[2]) / count * 100),
		},
	}
}

// ComputeRegionalStats groups records by region. Records without a region are
// reported under "unknown".
func ComputeRegionalStats(records []models.CommunityRecord) map[string]models.CommunityStats {
	groups := make(map[string][]models.CommunityRecord)
	for _, record := range records {
		region := record.Region
		if region == "" {
			region = unknownRegion
		}
		groups[region] = append(groups[region], record)
	}

	regional := make(map[string]models.CommunityStats, len(groups))
	for region, members := range groups {
		regional[region] = ComputeCommunityStats(members)
	}
	return regional
}

// GenerateCommunityRecommendations appends one message per triggered rule, in
// rule order, or the single fallback message when none trigger.
func GenerateCommunityRecommendations(stats models.CommunityStats) []string {
	recommendations := []string{}
	for _, rule := range communityRules {
		if rule.applies(stats) {
			recommendations = append(recommendations, rule.message)
		}
	}
	if len(recommendations) == 0 {
		recommendations = append(recommendations, communityFallback)
	}
	return recommendations
}
