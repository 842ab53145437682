package nutrition

import (
	"strings"

	"github.com/bensuskins/nutrition-hub/internal/models"
)

const (
	GoalWeightLoss     = "weight_loss"
	GoalMuscleGain     = "muscle_gain"
	GoalMaintainWeight = "maintain_weight"
)

type goalRule struct {
	goal     string
	messages []string
}

// goalRules is applied in order; goals without a rule add nothing.
var goalRules = []goalRule{
	{
		goal: GoalWeightLoss,
		messages: []string{
			"Reduce calorie intake by 500 calories per day",
			"Increase protein intake to preserve muscle mass",
			"Include 30 minutes of cardio daily",
		},
	},
	{
		goal: GoalMuscleGain,
		messages: []string{
			"Increase protein intake to 1.6-2.2g per kg of body weight",
			"Consume calorie surplus of 300-500 calories",
			"Focus on strength training 3-4 times per week",
		},
	},
}

// AdviseGoals normalizes goals to lower case, defaulting to maintain_weight
// when none are given, and collects the advice for each recognised goal once.
func AdviseGoals(goals []string) models.GoalAdvice {
	normalized := []string{}
	seen := make(map[string]bool)
	for _, goal := range goals {
		goal = strings.ToLower(strings.TrimSpace(goal))
		if goal == "" || seen[goal] {
			continue
		}
		seen[goal] = true
		normalized = append(normalized, goal)
	}
	if len(normalized) == 0 {
		normalized = append(normalized, GoalMaintainWeight)
		seen[GoalMaintainWeight] = true
	}

	recommendations := []string{}
	for _, rule := range goalRules {
		if seen[rule.goal] {
			recommendations = append(recommendations, rule.messages...)
		}
	}
	return models.GoalAdvice{Goals: normalized, Recommendations: recommendations}
}
