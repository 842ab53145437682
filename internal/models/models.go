package models

import "time"

type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "light"
	ActivityModerate   ActivityLevel = "moderate"
	ActivityActive     ActivityLevel = "active"
	ActivityVeryActive ActivityLevel = "very active"
)

var ActivityLevels = []ActivityLevel{
	ActivitySedentary,
	ActivityLight,
	ActivityModerate,
	ActivityActive,
	ActivityVeryActive,
}

type MealType string

const (
	MealTypeBreakfast MealType = "breakfast"
	MealTypeLunch     MealType = "lunch"
	MealTypeDinner    MealType = "dinner"
	MealTypeSnack     MealType = "snack"
)

var MealTypes = []MealType{
	MealTypeBreakfast,
	MealTypeLunch,
	MealTypeDinner,
	MealTypeSnack,
}

type BMICategory string

const (
	BMIUnderweight BMICategory = "Underweight"
	BMINormal      BMICategory = "Normal"
	BMIOverweight  BMICategory = "Overweight"
	BMIObese       BMICategory = "Obese"
)

// ProfileInput is a profile as submitted by a caller. Nil fields were not supplied.
type ProfileInput struct {
	Name          string   `json:"name,omitempty"`
	Age           *int     `json:"age"`
	Weight        *float64 `json:"weight"`
	Height        *float64 `json:"height"`
	ActivityLevel string   `json:"activity_level,omitempty"`
	Region        string   `json:"region,omitempty"`
}

type FoodItemInput struct {
	Name     string   `json:"name"`
	Quantity *float64 `json:"quantity"`

	// QuantityInvalid is set when quantity was supplied but is not a number.
	QuantityInvalid bool `json:"-"`
}

// MealInput is a meal as submitted by a caller. FoodItems is nil when the
// field was absent or was not a JSON array.
type MealInput struct {
	FoodItems []FoodItemInput `json:"food_items"`
	MealType  string          `json:"meal_type,omitempty"`
}

type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

type UserProfile struct {
	Age           int           `json:"age"`
	WeightKg      float64       `json:"weight"`
	HeightCm      float64       `json:"height"`
	ActivityLevel ActivityLevel `json:"activity_level,omitempty"`
}

type FoodItem struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
}

type NutrientProfile struct {
	CaloriesPerUnit float64  `json:"calories" yaml:"calories"`
	ProteinPerUnit  float64  `json:"protein" yaml:"protein"`
	CarbsPerUnit    float64  `json:"carbs" yaml:"carbs"`
	FatsPerUnit     float64  `json:"fats" yaml:"fats"`
	FiberPerUnit    *float64 `json:"fiber,omitempty" yaml:"fiber,omitempty"`
}

// NutrientDatabase maps a lowercase food name to its per-unit nutrients.
type NutrientDatabase map[string]NutrientProfile

type MealSubmission struct {
	FoodItems []FoodItem `json:"food_items"`
	MealType  MealType   `json:"meal_type,omitempty"`
}

type NutrientTotals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
	Fiber    float64 `json:"fiber"`
}

type DailyTargets struct {
	Calories int `json:"calories"`
	Protein  int `json:"protein"`
	Carbs    int `json:"carbs"`
	Fats     int `json:"fats"`
	Fiber    int `json:"fiber"`
}

type BMIResult struct {
	Value    float64     `json:"value"`
	Category BMICategory `json:"category"`
}

type CommunityRecord struct {
	WeightKg    float64
	HeightCm    float64
	AvgCalories *float64
	Region      string
}

type CommunityStats struct {
	SampleSize            int              `json:"sample_size"`
	AvgBMI                float64          `json:"avg_bmi"`
	AvgCalories           float64          `json:"avg_calories"`
	ObesityRatePercent    float64          `json:"obesity_rate"`
	OverweightRatePercent float64          `json:"overweight_rate"`
	HealthRisk            RiskDistribution `json:"health_risk_distribution"`
}

// RiskDistribution holds the share of a population at each health risk score.
type RiskDistribution struct {
	LowPercent    float64 `json:"low_risk"`
	MediumPercent float64 `json:"medium_risk"`
	HighPercent   float64 `json:"high_risk"`
}

type CommunityReport struct {
	Stats           CommunityStats            `json:"community_stats"`
	Regional        map[string]CommunityStats `json:"regional_data"`
	Recommendations []string                  `json:"recommendations"`
}

// GoalAdvice is the advice for a set of fitness goals.
type GoalAdvice struct {
	Goals           []string `json:"goals"`
	Recommendations []string `json:"personalized_recommendations"`
}

type HealthRisk struct {
	Level   string `json:"level"`
	Score   int    `json:"score"`
	Details string `json:"details"`
}

type NutrientProgress struct {
	Consumed float64 `json:"consumed"`
	Target   int     `json:"target"`
	Percent  float64 `json:"percent"`
}

type TargetProgress struct {
	Calories NutrientProgress `json:"calories"`
	Protein  NutrientProgress `json:"protein"`
	Carbs    NutrientProgress `json:"carbs"`
	Fats     NutrientProgress `json:"fats"`
	Fiber    NutrientProgress `json:"fiber"`
}

type Assessment struct {
	BMI          BMIResult    `json:"bmi"`
	Advice       string       `json:"advice"`
	DailyTargets DailyTargets `json:"daily_targets"`
}

type MealAnalysis struct {
	Nutrition       NutrientTotals `json:"nutrition_analysis"`
	BMI             BMIResult      `json:"bmi"`
	DailyTargets    DailyTargets   `json:"daily_targets"`
	Progress        TargetProgress `json:"progress"`
	HealthRisk      HealthRisk     `json:"health_risk"`
	Recommendations []string       `json:"recommendations"`
}

type Food struct {
	Name      string          `json:"name"`
	Nutrients NutrientProfile `json:"nutrients"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type Profile struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Age           int           `json:"age"`
	WeightKg      float64       `json:"weight"`
	HeightCm      float64       `json:"height"`
	ActivityLevel ActivityLevel `json:"activity_level"`
	Region        string        `json:"region,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

func (profile Profile) UserProfile() UserProfile {
	return UserProfile{
		Age:           profile.Age,
		WeightKg:      profile.WeightKg,
		HeightCm:      profile.HeightCm,
		ActivityLevel: profile.ActivityLevel,
	}
}

type MealLog struct {
	ID        string         `json:"id"`
	ProfileID string         `json:"profile_id"`
	MealType  MealType       `json:"meal_type"`
	Items     []FoodItem     `json:"food_items"`
	Totals    NutrientTotals `json:"totals"`
	LoggedAt  time.Time      `json:"logged_at"`
}

type DailySummary struct {
	Date            string         `json:"date"`
	MealsLogged     int            `json:"meals_logged"`
	Intake          NutrientTotals `json:"todays_intake"`
	DailyTargets    DailyTargets   `json:"daily_targets"`
	Progress        TargetProgress `json:"progress"`
	HealthRisk      HealthRisk     `json:"health_risk"`
	Recommendations []string       `json:"recommendations"`
}
