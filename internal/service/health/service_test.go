package health

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"lifetracker/internal/apperr"
	"lifetracker/internal/model"
	"lifetracker/internal/repository"
	"lifetracker/internal/repository/memory"
)

var testNow = time.Date(2024, 5, 20, 18, 30, 0, 0, time.UTC)

type stubFood struct {
	meals []model.Meal
	err   error
	calls int
}

func (f *stubFood) Search(context.Context, string) ([]model.Meal, error) {
	f.calls++
	return f.meals, f.err
}

func newTestService(food FoodSearcher) (*Service, *repository.Repositories) {
	repos := memory.New()
	return NewService(repos, food, zap.NewNop()).WithClock(func() time.Time { return testNow }), repos
}

func TestLogWeightComputesBMI(t *testing.T) {
	s, _ := newTestService(nil)
	ctx := context.Background()

	_, err := s.LogWeight(ctx, "u1", map[string]any{"weight": 70})
	require.Error(t, err)
	assert.Equal(t, "Weight and height are required", err.Error())

	w, err := s.LogWeight(ctx, "u1", map[string]any{"weight": 70, "height": 175})
	require.NoError(t, err)
	require.NotNil(t, w.BMI)
	assert.Equal(t, 22.9, *w.BMI)
	assert.Equal(t, "2024-05-20", w.Date.Format(model.DateLayout))

	w, err = s.LogWeight(ctx, "u1", map[string]any{"weight": 70, "height": 175, "bmi": 21.04})
	require.NoError(t, err)
	assert.Equal(t, 21.0, *w.BMI)
}

func TestLogExerciseMapsType(t *testing.T) {
	s, _ := newTestService(nil)
	ctx := context.Background()

	ex, err := s.LogExercise(ctx, "u1", map[string]any{"minutes": 30, "type": "Cardio", "caloriesBurned": 250})
	require.NoError(t, err)
	assert.Equal(t, "cardio", ex.ExerciseType)
	assert.Equal(t, 30, ex.Duration)

	ex, err = s.LogExercise(ctx, "u1", map[string]any{"minutes": 45, "type": "Climbing", "caloriesBurned": 400})
	require.NoError(t, err)
	assert.Equal(t, "other", ex.ExerciseType)
	assert.Equal(t, "Climbing", ex.ExerciseName)

	_, err = s.LogExercise(ctx, "u1", map[string]any{"type": "run"})
	assert.Equal(t, "Minutes, type, and calories burned are required", err.Error())
}

func TestSummary(t *testing.T) {
	s, repos := newTestService(nil)
	ctx := context.Background()

	_, err := s.LogWeight(ctx, "u1", map[string]any{"weight": 95, "height": 180})
	require.NoError(t, err)
	_, err = s.LogExercise(ctx, "u1", map[string]any{"minutes": 30, "type": "cardio", "caloriesBurned": 300})
	require.NoError(t, err)
	_, err = s.LogMeal(ctx, "u1", map[string]any{"mealId": "x", "name": "Pizza", "calories": 800})
	require.NoError(t, err)

	old := model.DietEntry{Date: testNow.AddDate(0, 0, -3), FoodName: "Soup", Calories: 200, MealType: "lunch"}
	old.UserID = "u1"
	require.NoError(t, repos.DietEntries.Create(ctx, &old))

	sum, err := s.Summary(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, sum.WeightHistory, 1)
	assert.Len(t, sum.CalorieHistory, 2)
	assert.Equal(t, 800.0, sum.CaloriesConsumed)
	assert.Equal(t, 300.0, sum.CaloriesBurned)
	assert.Equal(t, 500.0, sum.NetCalories)
	require.NotNil(t, sum.LatestBMI)
	assert.Equal(t, 29.3, *sum.LatestBMI)
	assert.Equal(t, "overweight", sum.BMICategory)

	empty, err := s.Summary(ctx, "u2")
	require.NoError(t, err)
	assert.Nil(t, empty.LatestBMI)
	assert.Empty(t, empty.WeightHistory)
}

func TestSetGoalUpserts(t *testing.T) {
	s, _ := newTestService(nil)
	ctx := context.Background()

	_, err := s.SetGoal(ctx, "u1", map[string]any{"type": "weight", "currentValue": 80})
	assert.Equal(t, "Goal type, current value, and target value are required", err.Error())

	first, err := s.SetGoal(ctx, "u1", map[string]any{"type": "weight", "currentValue": 80, "targetValue": 75})
	require.NoError(t, err)
	second, err := s.SetGoal(ctx, "u1", map[string]any{"type": "weight", "currentValue": 78, "targetValue": 75})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	_, err = s.SetGoal(ctx, "u1", map[string]any{"type": "calories", "currentValue": 0, "targetValue": 2000})
	require.NoError(t, err)

	goals, err := s.Goals(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, goals, 2)
	assert.Equal(t, "calories", goals[0].Type)
	assert.Equal(t, 78.0, goals[1].CurrentValue)
}

func TestSearchMeals(t *testing.T) {
	ctx := context.Background()

	s, _ := newTestService(nil)
	_, err := s.SearchMeals(ctx, "  ")
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	meals, err := s.SearchMeals(ctx, "RICE")
	require.NoError(t, err)
	require.Len(t, meals, 1)
	assert.Equal(t, "Brown Rice", meals[0].Title)

	food := &stubFood{meals: []model.Meal{{ID: "food_a", Title: "Apple"}}}
	s, _ = newTestService(food)
	meals, err = s.SearchMeals(ctx, "apple")
	require.NoError(t, err)
	assert.Equal(t, "food_a", meals[0].ID)

	food.err = errors.New("boom")
	meals, err = s.SearchMeals(ctx, "banana")
	require.NoError(t, err)
	require.Len(t, meals, 1)
	assert.Equal(t, "8", meals[0].ID)
	assert.Equal(t, 2, food.calls)
}

func TestLogMealScalesPortion(t *testing.T) {
	s, _ := newTestService(nil)
	ctx := context.Background()

	e, err := s.LogMeal(ctx, "u1", map[string]any{"mealId": "9", "name": "Eggs", "calories": 74, "portion": 2})
	require.NoError(t, err)
	assert.Equal(t, 148.0, e.Calories)
	assert.Equal(t, 12.6, e.Protein)
	assert.Equal(t, "snack", e.MealType)

	_, err = s.LogMeal(ctx, "u1", map[string]any{"name": "Eggs", "calories": 74})
	assert.Equal(t, "Meal ID, name, and calories are required", err.Error())
}

func TestNutrition(t *testing.T) {
	s, repos := newTestService(nil)
	ctx := context.Background()

	_, err := s.Nutrition(ctx, "u1", "someday")
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = s.LogMeal(ctx, "u1", map[string]any{"mealId": "1", "name": "Chicken", "calories": 165})
	require.NoError(t, err)

	sum, err := s.Nutrition(ctx, "u1", "")
	require.NoError(t, err)
	assert.Equal(t, "2024-05-20", sum.Date)
	assert.Equal(t, 1, sum.Entries)
	assert.Nil(t, sum.Diet)
	assert.Nil(t, sum.Remaining)

	diet := model.Diet{Name: "Cut", TargetCalories: 2000, TargetProtein: 150, TargetCarbs: 200, TargetFat: 60, TargetFiber: 25, IsActive: true}
	diet.UserID = "u1"
	require.NoError(t, repos.Diets.Create(ctx, &diet))

	sum, err = s.Nutrition(ctx, "u1", "2024-05-20")
	require.NoError(t, err)
	require.NotNil(t, sum.Remaining)
	assert.Equal(t, 1835.0, sum.Remaining.Calories)
	assert.Equal(t, 119.0, sum.Remaining.Protein)

	other, err := s.Nutrition(ctx, "u1", "2024-05-19")
	require.NoError(t, err)
	assert.Equal(t, 0, other.Entries)
}

func TestFinance(t *testing.T) {
	s, repos := newTestService(nil)
	ctx := context.Background()

	inc := model.Income{Amount: 1000, Source: "Job", Type: "salary", Date: testNow}
	inc.UserID = "u1"
	require.NoError(t, repos.Incomes.Create(ctx, &inc))
	exp := model.Expense{Amount: 200, Category: "food", Description: "groceries", Type: "personal", Date: testNow}
	exp.UserID = "u1"
	require.NoError(t, repos.Expenses.Create(ctx, &exp))
	lent := model.Loan{Amount: 50, PersonName: "Bob", Description: "lunch", Date: testNow}
	lent.UserID = "u1"
	require.NoError(t, repos.Lendings.Create(ctx, &lent))

	sum, err := s.Finance(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1000.0, sum.TotalIncome)
	assert.Equal(t, 750.0, sum.NetWorth)
	assert.Equal(t, 200.0, sum.ExpensesByCategory["food"])
}
