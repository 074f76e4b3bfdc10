package postgres

import "lifetracker/internal/model"

var boardColumns = Columns[model.Board]{
	Names:  []string{"name"},
	Values: func(r *model.Board) []any { return []any{r.Name} },
}

var expenseColumns = Columns[model.Expense]{
	Names: []string{"amount", "category", "description", "date", "type", "is_recoverable", "person_name"},
	Values: func(r *model.Expense) []any {
		return []any{r.Amount, r.Category, r.Description, r.Date, r.Type, r.IsRecoverable, r.PersonName}
	},
}

var incomeColumns = Columns[model.Income]{
	Names: []string{"amount", "source", "date", "type", "recurring", "recurring_day"},
	Values: func(r *model.Income) []any {
		return []any{r.Amount, r.Source, r.Date, r.Type, r.Recurring, r.RecurringDay}
	},
}

var loanColumns = Columns[model.Loan]{
	Names: []string{"amount", "person_name", "description", "date", "expected_return_date", "is_returned", "returned_date"},
	Values: func(r *model.Loan) []any {
		return []any{r.Amount, r.PersonName, r.Description, r.Date, r.ExpectedReturnDate, r.IsReturned, r.ReturnedDate}
	},
}

var investmentColumns = Columns[model.Investment]{
	Names: []string{"amount", "type", "description", "date", "expected_return", "is_active"},
	Values: func(r *model.Investment) []any {
		return []any{r.Amount, r.Type, r.Description, r.Date, r.ExpectedReturn, r.IsActive}
	},
}

var habitColumns = Columns[model.Habit]{
	Names: []string{"name", "description", "category", "frequency", "target_count", "color", "habit_type", "quit_date", "is_active"},
	Values: func(r *model.Habit) []any {
		return []any{r.Name, r.Description, r.Category, r.Frequency, r.TargetCount, r.Color, r.HabitType, r.QuitDate, r.IsActive}
	},
}

var dietColumns = Columns[model.Diet]{
	Names: []string{"name", "description", "target_calories", "target_protein", "target_carbs", "target_fat", "target_fiber", "is_active"},
	Values: func(r *model.Diet) []any {
		return []any{r.Name, r.Description, r.TargetCalories, r.TargetProtein, r.TargetCarbs, r.TargetFat, r.TargetFiber, r.IsActive}
	},
}

var dietEntryColumns = Columns[model.DietEntry]{
	Names: []string{"date", "food_name", "description", "calories", "protein", "carbs", "fat", "fiber", "meal_type", "is_custom_food"},
	Values: func(r *model.DietEntry) []any {
		return []any{r.Date, r.FoodName, r.Description, r.Calories, r.Protein, r.Carbs, r.Fat, r.Fiber, r.MealType, r.IsCustomFood}
	},
}

var exerciseColumns = Columns[model.Exercise]{
	Names: []string{"date", "exercise_name", "exercise_type", "duration", "calories_burned", "intensity", "notes"},
	Values: func(r *model.Exercise) []any {
		return []any{r.Date, r.ExerciseName, r.ExerciseType, r.Duration, r.CaloriesBurned, r.Intensity, r.Notes}
	},
}

var weightColumns = Columns[model.WeightEntry]{
	Names: []string{"date", "weight", "height", "bmi", "body_fat_percentage", "muscle_mass", "water_percentage", "notes"},
	Values: func(r *model.WeightEntry) []any {
		return []any{r.Date, r.Weight, r.Height, r.BMI, r.BodyFatPercentage, r.MuscleMass, r.WaterPercentage, r.Notes}
	},
}
