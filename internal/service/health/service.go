// Package health derives health, nutrition and finance summaries and serves
// the quick-entry shortcuts of the health tracker.
package health

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"

	"lifetracker/internal/apperr"
	"lifetracker/internal/model"
	"lifetracker/internal/repository"
	"lifetracker/internal/service/record"
	"lifetracker/internal/stats"
	"lifetracker/internal/validate"
	"lifetracker/pkg/metrics"
)

const historyLimit = 30

var weightSchema = validate.Schema{Entity: "Weight entry", Missing: "Weight and height are required", Fields: []validate.Field{
	{Name: "weight", Label: "Weight", Kind: validate.Number, Required: true, Positive: true},
	{Name: "height", Label: "Height", Kind: validate.Number, Required: true, Positive: true},
	{Name: "bmi", Label: "BMI", Kind: validate.Number, Nullable: true, Positive: true},
}}

var exerciseSchema = validate.Schema{Entity: "Exercise", Missing: "Minutes, type, and calories burned are required", Fields: []validate.Field{
	{Name: "minutes", Label: "Minutes", Kind: validate.Integer, Required: true, Positive: true},
	{Name: "type", Label: "Type", Kind: validate.String, Required: true, MinLen: 1},
	{Name: "caloriesBurned", Label: "Calories burned", Kind: validate.Number, Required: true, Min: validate.Float(0)},
}}

var goalSchema = validate.Schema{Entity: "Health goal", Missing: "Goal type, current value, and target value are required", Fields: []validate.Field{
	{Name: "type", Label: "Type", Kind: validate.String, Required: true, MinLen: 1},
	{Name: "currentValue", Label: "Current value", Kind: validate.Number, Required: true},
	{Name: "targetValue", Label: "Target value", Kind: validate.Number, Required: true},
}}

var mealSchema = validate.Schema{Entity: "Meal", Missing: "Meal ID, name, and calories are required", Fields: []validate.Field{
	{Name: "mealId", Label: "Meal id", Kind: validate.String, Required: true, MinLen: 1},
	{Name: "name", Label: "Name", Kind: validate.String, Required: true, MinLen: 1},
	{Name: "calories", Label: "Calories", Kind: validate.Number, Required: true, Positive: true},
	{Name: "portion", Label: "Portion", Kind: validate.Number, Positive: true, Default: 1.0},
}}

type Service struct {
	repos  *repository.Repositories
	food   FoodSearcher
	now    func() time.Time
	logger *zap.Logger
}

// NewService builds the service. A nil food searcher answers searches from
// the built-in catalog only.
func NewService(repos *repository.Repositories, food FoodSearcher, logger *zap.Logger) *Service {
	return &Service{
		repos:  repos,
		food:   food,
		now:    func() time.Time { return time.Now().UTC() },
		logger: logger,
	}
}

// WithClock replaces the time source.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// dayQuery bounds a list to the calendar day of t.
func dayQuery(t time.Time) repository.ListQuery {
	from := model.TruncateDay(t)
	return repository.ListQuery{From: from, To: from.AddDate(0, 0, 1)}
}

// Summary gathers recent history and today's calorie balance.
func (s *Service) Summary(ctx context.Context, userID string) (*model.HealthSummary, error) {
	recent := repository.ListQuery{Limit: historyLimit}
	weights, err := s.repos.Weights.List(ctx, userID, recent)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	meals, err := s.repos.DietEntries.List(ctx, userID, recent)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	exercises, err := s.repos.Exercises.List(ctx, userID, recent)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	today := dayQuery(s.now())
	todayMeals, err := s.repos.DietEntries.List(ctx, userID, today)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	todayExercise, err := s.repos.Exercises.List(ctx, userID, today)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	out := &model.HealthSummary{
		WeightHistory:    weights,
		CalorieHistory:   meals,
		ExerciseHistory:  exercises,
		CaloriesConsumed: stats.Nutrition(todayMeals).Calories,
		CaloriesBurned:   stats.CaloriesBurned(todayExercise),
	}
	out.NetCalories = stats.Round1(out.CaloriesConsumed - out.CaloriesBurned)

	// weights are newest first
	if i := slices.IndexFunc(weights, func(w model.WeightEntry) bool { return w.BMI != nil }); i >= 0 {
		bmi := *weights[i].BMI
		out.LatestBMI = &bmi
		out.BMICategory = stats.BMICategory(bmi)
	}
	return out, nil
}

// LogWeight stores a weight entry dated today.
func (s *Service) LogWeight(ctx context.Context, userID string, body map[string]any) (*model.WeightEntry, error) {
	now := s.now()
	v, err := weightSchema.Create(body, now)
	if err != nil {
		return nil, apperr.Validation(err.Error())
	}

	height := v.Float("height")
	w := &model.WeightEntry{Date: model.TruncateDay(now), Weight: v.Float("weight"), Height: &height}
	if v["bmi"] != nil {
		bmi := stats.Round1(v.Float("bmi"))
		w.BMI = &bmi
	} else {
		record.FillBMI(w)
	}
	return w, s.insert(ctx, userID, "weight_entry", &w.Owned, func() error { return s.repos.Weights.Create(ctx, w) })
}

// LogExercise stores an exercise dated today. Types outside the known set
// are kept as the exercise name under "other".
func (s *Service) LogExercise(ctx context.Context, userID string, body map[string]any) (*model.Exercise, error) {
	now := s.now()
	v, err := exerciseSchema.Create(body, now)
	if err != nil {
		return nil, apperr.Validation(err.Error())
	}

	kind := strings.ToLower(v.String("type"))
	ex := &model.Exercise{
		Date:           model.TruncateDay(now),
		ExerciseName:   v.String("type"),
		ExerciseType:   kind,
		Duration:       v.Int("minutes"),
		CaloriesBurned: v.Float("caloriesBurned"),
		Intensity:      "medium",
	}
	if !slices.Contains(model.ExerciseTypes, kind) {
		ex.ExerciseType = "other"
	}
	return ex, s.insert(ctx, userID, "exercise", &ex.Owned, func() error { return s.repos.Exercises.Create(ctx, ex) })
}

func (s *Service) insert(ctx context.Context, userID, entity string, o *model.Owned, create func() error) error {
	now := s.now()
	o.UserID = userID
	o.CreatedAt, o.UpdatedAt = now, now
	if err := create(); err != nil {
		s.logger.Error("Failed to store health entry", zap.String("entity", entity), zap.Error(err))
		return apperr.Internal(err)
	}
	metrics.IncrementEntityMutation(entity, "create")
	return nil
}

func (s *Service) Goals(ctx context.Context, userID string) ([]model.HealthGoal, error) {
	out, err := s.repos.Goals.List(ctx, userID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return out, nil
}

// SetGoal inserts or replaces the user's goal of the given type.
func (s *Service) SetGoal(ctx context.Context, userID string, body map[string]any) (*model.HealthGoal, error) {
	now := s.now()
	v, err := goalSchema.Create(body, now)
	if err != nil {
		return nil, apperr.Validation(err.Error())
	}

	g := &model.HealthGoal{
		Type:         v.String("type"),
		CurrentValue: v.Float("currentValue"),
		TargetValue:  v.Float("targetValue"),
		Date:         model.NewDate(now),
	}
	g.UserID = userID
	g.CreatedAt, g.UpdatedAt = now, now
	if err := s.repos.Goals.Upsert(ctx, g); err != nil {
		s.logger.Error("Failed to set health goal", zap.String("type", g.Type), zap.Error(err))
		return nil, apperr.Internal(err)
	}
	metrics.IncrementEntityMutation("health_goal", "upsert")
	return g, nil
}

// SearchMeals asks the food API and falls back to the built-in catalog when
// it is not configured or fails.
func (s *Service) SearchMeals(ctx context.Context, query string) ([]model.Meal, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperr.Validation("Query parameter is required")
	}
	if s.food == nil {
		return searchCatalog(query), nil
	}

	meals, err := s.food.Search(ctx, query)
	if err != nil {
		s.logger.Warn("Food search failed, using catalog", zap.String("query", query), zap.Error(err))
		return searchCatalog(query), nil
	}
	return meals, nil
}

// LogMeal records a searched meal as today's snack, scaled by portion.
func (s *Service) LogMeal(ctx context.Context, userID string, body map[string]any) (*model.DietEntry, error) {
	now := s.now()
	v, err := mealSchema.Create(body, now)
	if err != nil {
		return nil, apperr.Validation(err.Error())
	}

	portion := v.Float("portion")
	e := &model.DietEntry{
		Date:     model.TruncateDay(now),
		FoodName: v.String("name"),
		Calories: stats.Round1(v.Float("calories") * portion),
		MealType: "snack",
	}
	if m, ok := catalogMeal(v.String("mealId")); ok {
		e.Protein = stats.Round1(m.Protein * portion)
		e.Carbs = stats.Round1(m.Carbs * portion)
		e.Fat = stats.Round1(m.Fat * portion)
		e.Fiber = stats.Round1(m.Fiber * portion)
	}
	return e, s.insert(ctx, userID, "diet_entry", &e.Owned, func() error { return s.repos.DietEntries.Create(ctx, e) })
}

// Nutrition totals one day of diet entries against the active diet. An
// empty date means today.
func (s *Service) Nutrition(ctx context.Context, userID, date string) (*model.NutritionSummary, error) {
	day := s.now()
	if date != "" {
		t, err := model.ParseDate(date)
		if err != nil {
			return nil, apperr.Validation("Invalid date format")
		}
		day = t
	}

	entries, err := s.repos.DietEntries.List(ctx, userID, dayQuery(day))
	if err != nil {
		return nil, apperr.Internal(err)
	}
	out := &model.NutritionSummary{
		Date:    model.NewDate(day).String(),
		Entries: len(entries),
		Totals:  stats.Nutrition(entries),
	}

	diet, err := s.repos.Diets.Active(ctx, userID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
	case err != nil:
		return nil, apperr.Internal(err)
	default:
		remaining := stats.Remaining(*diet, out.Totals)
		out.Diet = diet
		out.Remaining = &remaining
	}
	return out, nil
}

// Finance reduces every money record of the user.
func (s *Service) Finance(ctx context.Context, userID string) (*model.FinanceSummary, error) {
	all := repository.ListQuery{}
	expenses, err := s.repos.Expenses.List(ctx, userID, all)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	incomes, err := s.repos.Incomes.List(ctx, userID, all)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	lent, err := s.repos.Lendings.List(ctx, userID, all)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	borrowed, err := s.repos.Borrowings.List(ctx, userID, all)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	investments, err := s.repos.Investments.List(ctx, userID, all)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	sum := stats.Finance(expenses, incomes, lent, borrowed, investments)
	return &sum, nil
}
