package record

import (
	"time"

	"lifetracker/internal/model"
	"lifetracker/internal/stats"
	"lifetracker/internal/validate"
)

const missingFields = "Missing required fields"

var (
	amountField = validate.Field{Name: "amount", Label: "Amount", Kind: validate.Number, Required: true, Positive: true}
	dateField   = validate.Field{Name: "date", Label: "Date", Kind: validate.Date, DefaultNow: true}
	descField   = validate.Field{Name: "description", Label: "Description", Kind: validate.String, Required: true, MinLen: 3}
	personField = validate.Field{Name: "personName", Label: "Person name", Kind: validate.String, Required: true, MinLen: 2}
)

var Expense = Definition[model.Expense]{
	Entity: "Expense",
	Create: validate.Schema{Entity: "Expense", Fields: []validate.Field{
		amountField,
		{Name: "category", Label: "Category", Kind: validate.String, Required: true, MinLen: 2},
		descField,
		dateField,
		{Name: "type", Label: "Type", Kind: validate.Enum, Values: model.ExpenseTypes, Default: "personal"},
		{Name: "isRecoverable", Label: "Is recoverable", Kind: validate.Bool, Default: false},
		{Name: "personName", Label: "Person name", Kind: validate.String, Default: ""},
	}},
}

var Income = Definition[model.Income]{
	Entity: "Income",
	Create: validate.Schema{Entity: "Income", Fields: []validate.Field{
		amountField,
		{Name: "source", Label: "Source", Kind: validate.String, Required: true, MinLen: 2},
		dateField,
		{Name: "type", Label: "Type", Kind: validate.Enum, Values: model.IncomeTypes, Default: "salary"},
		{Name: "recurring", Label: "Recurring", Kind: validate.Bool, Default: false},
		{Name: "recurringDay", Label: "Recurring day", Kind: validate.Integer, Nullable: true, Min: validate.Float(1), Max: validate.Float(31)},
	}},
	OnCreate: func(rec *model.Income, _ validate.Values, _ time.Time) { dropRecurringDay(rec) },
	OnUpdate: func(rec, _ *model.Income, _ validate.Values, _ time.Time) { dropRecurringDay(rec) },
}

// recurringDay is meaningful only for recurring income.
func dropRecurringDay(rec *model.Income) {
	if !rec.Recurring {
		rec.RecurringDay = nil
	}
}

func loanDefinition(entity string) Definition[model.Loan] {
	create := []validate.Field{
		amountField,
		personField,
		descField,
		dateField,
		{Name: "expectedReturnDate", Label: "Expected return date", Kind: validate.Date, Nullable: true},
	}
	update := append(append([]validate.Field{}, create...),
		validate.Field{Name: "isReturned", Label: "Is returned", Kind: validate.Bool})

	return Definition[model.Loan]{
		Entity: entity,
		Create: validate.Schema{Entity: entity, Fields: create},
		Update: validate.Schema{Entity: entity, Fields: update},
		OnCreate: func(rec *model.Loan, _ validate.Values, _ time.Time) {
			rec.IsReturned = false
			rec.ReturnedDate = nil
		},
		OnUpdate: func(rec, prev *model.Loan, v validate.Values, now time.Time) {
			if !v.Has("isReturned") {
				return
			}
			switch {
			case rec.IsReturned && (!prev.IsReturned || prev.ReturnedDate == nil):
				t := now
				rec.ReturnedDate = &t
			case !rec.IsReturned:
				rec.ReturnedDate = nil
			}
		},
	}
}

var (
	Lending   = loanDefinition("Lending")
	Borrowing = loanDefinition("Borrowing")
)

var Investment = Definition[model.Investment]{
	Entity: "Investment",
	Create: validate.Schema{Entity: "Investment", Fields: []validate.Field{
		amountField,
		{Name: "type", Label: "Type", Kind: validate.Enum, Values: model.InvestmentTypes, Required: true, Message: "Invalid investment type"},
		descField,
		dateField,
		{Name: "expectedReturn", Label: "Expected return", Kind: validate.Number, Nullable: true},
		{Name: "isActive", Label: "Is active", Kind: validate.Bool, Default: true},
	}},
}

var habitUpdateFields = []validate.Field{
	{Name: "name", Label: "Habit name", Kind: validate.String, Required: true, MinLen: 2},
	{Name: "description", Label: "Description", Kind: validate.String, Default: ""},
	{Name: "category", Label: "Category", Kind: validate.String, Default: "General"},
	{Name: "frequency", Label: "Frequency", Kind: validate.Enum, Values: model.HabitFrequencies, Default: "daily"},
	{Name: "targetCount", Label: "Target count", Kind: validate.Integer, Min: validate.Float(1), Default: 1},
	{Name: "color", Label: "Color", Kind: validate.String, Default: "#3B82F6"},
}

var Habit = Definition[model.Habit]{
	Entity: "Habit",
	Create: validate.Schema{Entity: "Habit", Fields: append(append([]validate.Field{}, habitUpdateFields...),
		validate.Field{Name: "habitType", Label: "Habit type", Kind: validate.Enum, Values: model.HabitTypes, Default: model.HabitTypeBuild},
		validate.Field{Name: "quitDate", Label: "Quit date", Kind: validate.Date, Nullable: true},
	)},
	Update: validate.Schema{Entity: "Habit", Fields: append(append([]validate.Field{}, habitUpdateFields...),
		validate.Field{Name: "isActive", Label: "Is active", Kind: validate.Bool},
	)},
	OnCreate: func(rec *model.Habit, _ validate.Values, _ time.Time) { rec.IsActive = true },
}

var Diet = Definition[model.Diet]{
	Entity: "Diet",
	Create: validate.Schema{Entity: "Diet", Missing: missingFields, Fields: []validate.Field{
		{Name: "name", Label: "Name", Kind: validate.String, Required: true},
		{Name: "description", Label: "Description", Kind: validate.String, Default: ""},
		{Name: "targetCalories", Label: "Target calories", Kind: validate.Number, Required: true, Positive: true},
		{Name: "targetProtein", Label: "Target protein", Kind: validate.Number, Required: true, Positive: true},
		{Name: "targetCarbs", Label: "Target carbs", Kind: validate.Number, Required: true, Positive: true},
		{Name: "targetFat", Label: "Target fat", Kind: validate.Number, Required: true, Positive: true},
		{Name: "targetFiber", Label: "Target fiber", Kind: validate.Number, Min: validate.Float(0), Default: 25.0},
		{Name: "isActive", Label: "Is active", Kind: validate.Bool, Default: false},
	}},
}

var DietEntry = Definition[model.DietEntry]{
	Entity: "Diet entry",
	Create: validate.Schema{Entity: "Diet entry", Missing: missingFields, Fields: []validate.Field{
		{Name: "date", Label: "Date", Kind: validate.Date, Required: true},
		{Name: "foodName", Label: "Food name", Kind: validate.String, Required: true},
		{Name: "description", Label: "Description", Kind: validate.String, Default: ""},
		{Name: "calories", Label: "Calories", Kind: validate.Number, Required: true, Min: validate.Float(0)},
		{Name: "protein", Label: "Protein", Kind: validate.Number, Required: true, Min: validate.Float(0)},
		{Name: "carbs", Label: "Carbs", Kind: validate.Number, Required: true, Min: validate.Float(0)},
		{Name: "fat", Label: "Fat", Kind: validate.Number, Required: true, Min: validate.Float(0)},
		{Name: "fiber", Label: "Fiber", Kind: validate.Number, Min: validate.Float(0), Default: 0.0},
		{Name: "mealType", Label: "Meal type", Kind: validate.Enum, Values: model.MealTypes, Default: "snack"},
		{Name: "isCustomFood", Label: "Is custom food", Kind: validate.Bool, Default: false},
	}},
}

var Exercise = Definition[model.Exercise]{
	Entity: "Exercise",
	Create: validate.Schema{Entity: "Exercise", Missing: missingFields, Fields: []validate.Field{
		{Name: "date", Label: "Date", Kind: validate.Date, Required: true},
		{Name: "exerciseName", Label: "Exercise name", Kind: validate.String, Required: true},
		{Name: "exerciseType", Label: "Exercise type", Kind: validate.Enum, Values: model.ExerciseTypes, Required: true},
		{Name: "duration", Label: "Duration", Kind: validate.Integer, Required: true, Positive: true},
		{Name: "caloriesBurned", Label: "Calories burned", Kind: validate.Number, Required: true, Min: validate.Float(0)},
		{Name: "intensity", Label: "Intensity", Kind: validate.Enum, Values: model.Intensities, Default: "medium"},
		{Name: "notes", Label: "Notes", Kind: validate.String, Default: ""},
	}},
}

var Weight = Definition[model.WeightEntry]{
	Entity: "Weight entry",
	Create: validate.Schema{Entity: "Weight entry", Fields: []validate.Field{
		dateField,
		{Name: "weight", Label: "Weight", Kind: validate.Number, Required: true, Positive: true},
		{Name: "height", Label: "Height", Kind: validate.Number, Nullable: true, Positive: true},
		{Name: "bmi", Label: "BMI", Kind: validate.Number, Nullable: true, Positive: true},
		{Name: "bodyFatPercentage", Label: "Body fat percentage", Kind: validate.Number, Nullable: true, Min: validate.Float(0), Max: validate.Float(100)},
		{Name: "muscleMass", Label: "Muscle mass", Kind: validate.Number, Nullable: true, Min: validate.Float(0)},
		{Name: "waterPercentage", Label: "Water percentage", Kind: validate.Number, Nullable: true, Min: validate.Float(0), Max: validate.Float(100)},
		{Name: "notes", Label: "Notes", Kind: validate.String, Default: ""},
	}},
	OnCreate: func(rec *model.WeightEntry, v validate.Values, _ time.Time) {
		if !v.Has("bmi") || rec.BMI == nil {
			FillBMI(rec)
		}
	},
	OnUpdate: func(rec, _ *model.WeightEntry, v validate.Values, _ time.Time) {
		if !v.Has("bmi") && (v.Has("weight") || v.Has("height")) {
			FillBMI(rec)
		}
	},
}

// FillBMI derives bmi from weight and height when height is known.
func FillBMI(rec *model.WeightEntry) {
	if rec.Height == nil || *rec.Height <= 0 || rec.Weight <= 0 {
		rec.BMI = nil
		return
	}
	b := stats.BMI(rec.Weight, *rec.Height)
	rec.BMI = &b
}
