package model

import "time"

var MealTypes = []string{"breakfast", "lunch", "dinner", "snack"}

type Diet struct {
	Owned
	Name           string  `json:"name" db:"name"`
	Description    string  `json:"description" db:"description"`
	TargetCalories float64 `json:"targetCalories" db:"target_calories"`
	TargetProtein  float64 `json:"targetProtein" db:"target_protein"`
	TargetCarbs    float64 `json:"targetCarbs" db:"target_carbs"`
	TargetFat      float64 `json:"targetFat" db:"target_fat"`
	TargetFiber    float64 `json:"targetFiber" db:"target_fiber"`
	IsActive       bool    `json:"isActive" db:"is_active"`
}

type DietEntry struct {
	Owned
	Date         time.Time `json:"date" db:"date"`
	FoodName     string    `json:"foodName" db:"food_name"`
	Description  string    `json:"description" db:"description"`
	Calories     float64   `json:"calories" db:"calories"`
	Protein      float64   `json:"protein" db:"protein"`
	Carbs        float64   `json:"carbs" db:"carbs"`
	Fat          float64   `json:"fat" db:"fat"`
	Fiber        float64   `json:"fiber" db:"fiber"`
	MealType     string    `json:"mealType" db:"meal_type"`
	IsCustomFood bool      `json:"isCustomFood" db:"is_custom_food"`
}

// Macros is a per-day nutrition total.
type Macros struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber"`
}

type NutritionSummary struct {
	Date      string  `json:"date"`
	Entries   int     `json:"entries"`
	Totals    Macros  `json:"totals"`
	Diet      *Diet   `json:"diet"`
	Remaining *Macros `json:"remaining"`
}

// Meal is a food search result.
type Meal struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber"`
}
