package model

import "time"

var (
	ExerciseTypes = []string{"cardio", "strength", "flexibility", "sports", "other"}
	Intensities   = []string{"low", "medium", "high"}
)

type Exercise struct {
	Owned
	Date           time.Time `json:"date" db:"date"`
	ExerciseName   string    `json:"exerciseName" db:"exercise_name"`
	ExerciseType   string    `json:"exerciseType" db:"exercise_type"`
	Duration       int       `json:"duration" db:"duration"`
	CaloriesBurned float64   `json:"caloriesBurned" db:"calories_burned"`
	Intensity      string    `json:"intensity" db:"intensity"`
	Notes          string    `json:"notes" db:"notes"`
}

type WeightEntry struct {
	Owned
	Date              time.Time `json:"date" db:"date"`
	Weight            float64   `json:"weight" db:"weight"`
	Height            *float64  `json:"height" db:"height"`
	BMI               *float64  `json:"bmi" db:"bmi"`
	BodyFatPercentage *float64  `json:"bodyFatPercentage" db:"body_fat_percentage"`
	MuscleMass        *float64  `json:"muscleMass" db:"muscle_mass"`
	WaterPercentage   *float64  `json:"waterPercentage" db:"water_percentage"`
	Notes             string    `json:"notes" db:"notes"`
}

// HealthGoal is unique per (user, type).
type HealthGoal struct {
	Owned
	Type         string  `json:"type" db:"type"`
	CurrentValue float64 `json:"currentValue" db:"current_value"`
	TargetValue  float64 `json:"targetValue" db:"target_value"`
	Date         Date    `json:"date" db:"date"`
}

type HealthSummary struct {
	WeightHistory    []WeightEntry `json:"weightHistory"`
	CalorieHistory   []DietEntry   `json:"calorieHistory"`
	ExerciseHistory  []Exercise    `json:"exerciseHistory"`
	CaloriesConsumed float64       `json:"caloriesConsumed"`
	CaloriesBurned   float64       `json:"caloriesBurned"`
	NetCalories      float64       `json:"netCalories"`
	LatestBMI        *float64      `json:"latestBmi"`
	BMICategory      string        `json:"bmiCategory,omitempty"`
}
