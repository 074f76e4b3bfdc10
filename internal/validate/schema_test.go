package validate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lifetracker/internal/model"
)

var expenseLike = Schema{
	Entity: "Expense",
	Fields: []Field{
		{Name: "amount", Label: "Amount", Kind: Number, Required: true, Positive: true},
		{Name: "category", Label: "Category", Kind: String, Required: true, MinLen: 2},
		{Name: "description", Label: "Description", Kind: String, Required: true, MinLen: 3},
		{Name: "date", Label: "Date", Kind: Date, DefaultNow: true},
		{Name: "type", Label: "Type", Kind: Enum, Values: []string{"personal", "family"}, Default: "personal"},
		{Name: "isRecoverable", Label: "Is recoverable", Kind: Bool, Default: false},
		{Name: "recurringDay", Label: "Recurring day", Kind: Integer, Nullable: true, Min: Float(1), Max: Float(31)},
		{Name: "quantity", Label: "Quantity", Kind: Integer, Min: Float(1)},
	},
}

func TestCreateAppliesDefaults(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	v, err := expenseLike.Create(map[string]any{
		"amount":      12.5,
		"category":    "  food ",
		"description": "lunch",
	}, now)
	require.NoError(t, err)

	assert.Equal(t, 12.5, v.Float("amount"))
	assert.Equal(t, "food", v.String("category"))
	assert.Equal(t, "personal", v.String("type"))
	assert.Equal(t, false, v["isRecoverable"])
	got, ok := v.Time("date")
	require.True(t, ok)
	assert.True(t, got.Equal(now))
	assert.False(t, v.Has("recurringDay"))
}

func TestCreateShortCircuitsInFieldOrder(t *testing.T) {
	_, err := expenseLike.Create(map[string]any{"category": "x"}, time.Now())
	require.Error(t, err)
	assert.Equal(t, "Amount must be greater than 0", err.Error())

	_, err = expenseLike.Create(map[string]any{"amount": 5, "category": "x", "description": "ab"}, time.Now())
	require.Error(t, err)
	assert.Equal(t, "Category must be at least 2 characters", err.Error())
}

func TestChecks(t *testing.T) {
	base := func() map[string]any {
		return map[string]any{"amount": 1.0, "category": "food", "description": "lunch"}
	}

	tests := []struct {
		name  string
		key   string
		value any
		want  string
	}{
		{"negative amount", "amount", -3.0, "Amount must be greater than 0"},
		{"zero amount", "amount", 0.0, "Amount must be greater than 0"},
		{"non numeric amount", "amount", "abc", "Amount must be a number"},
		{"short description", "description", "  ab  ", "Description must be at least 3 characters"},
		{"bad enum", "type", "business", "Invalid type"},
		{"bad date", "date", "yesterday", "Invalid date format"},
		{"bool as string", "isRecoverable", "true", "Is recoverable must be a boolean"},
		{"day out of range", "recurringDay", 32.0, "Recurring day must be a number between 1 and 31"},
		{"fractional day", "recurringDay", 2.5, "Recurring day must be a whole number"},
		{"huge integer", "quantity", 1e20, "Quantity must be a number between -2147483648 and 2147483647"},
		{"integer past int4", "quantity", 3e9, "Quantity must be a number between -2147483648 and 2147483647"},
		{"huge negative integer", "quantity", -1e20, "Quantity must be at least 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := base()
			body[tt.key] = tt.value
			_, err := expenseLike.Create(body, time.Now())
			require.Error(t, err)
			assert.Equal(t, tt.want, err.Error())

			var ve *Error
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.key, ve.Field)
		})
	}
}

func TestIntegerAtInt4Bound(t *testing.T) {
	v, err := expenseLike.Create(map[string]any{"amount": 1.0, "category": "food", "description": "lunch", "quantity": 2147483647.0}, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 2147483647, v.Int("quantity"))
}

func TestNumericStringsAreAccepted(t *testing.T) {
	v, err := expenseLike.Create(map[string]any{"amount": "42.5", "category": "rent", "description": "march"}, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 42.5, v.Float("amount"))
}

func TestUpdateOnlyReturnsSuppliedFields(t *testing.T) {
	v, err := expenseLike.Update(map[string]any{"amount": 50.0})
	require.NoError(t, err)
	assert.Equal(t, Values{"amount": 50.0}, v)
}

func TestUpdateRejectsNullOnNonNullable(t *testing.T) {
	_, err := expenseLike.Update(map[string]any{"category": nil})
	require.Error(t, err)
	assert.Equal(t, "Category must be at least 2 characters", err.Error())
}

func TestUpdateNullClearsNullable(t *testing.T) {
	v, err := expenseLike.Update(map[string]any{"recurringDay": nil})
	require.NoError(t, err)
	assert.True(t, v.Has("recurringDay"))
	assert.Nil(t, v["recurringDay"])
}

func TestSchemaMissingMessage(t *testing.T) {
	s := Schema{
		Missing: "Missing required fields",
		Fields: []Field{
			{Name: "name", Label: "Name", Kind: String, Required: true},
			{Name: "targetCalories", Label: "Target calories", Kind: Number, Required: true, Positive: true},
		},
	}
	_, err := s.Create(map[string]any{"name": "Keto"}, time.Now())
	require.Error(t, err)
	assert.Equal(t, "Missing required fields", err.Error())

	_, err = s.Create(map[string]any{"name": "   ", "targetCalories": 2000}, time.Now())
	require.Error(t, err)
	assert.Equal(t, "Missing required fields", err.Error())
}

func TestApplyMergesIntoStruct(t *testing.T) {
	day := 15
	rec := model.Income{
		Amount:       100,
		Source:       "Acme",
		Type:         "salary",
		Recurring:    true,
		RecurringDay: &day,
		Date:         time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	err := Apply(&rec, Values{"amount": 250.0, "recurringDay": nil})
	require.NoError(t, err)

	assert.Equal(t, 250.0, rec.Amount)
	assert.Equal(t, "Acme", rec.Source)
	assert.True(t, rec.Recurring)
	assert.Nil(t, rec.RecurringDay)
	assert.Equal(t, 2024, rec.Date.Year())
}

func TestApplyDateIntoCalendarDay(t *testing.T) {
	var task model.Task
	ts, err := model.ParseDate("2024-05-06T22:30:00Z")
	require.NoError(t, err)

	require.NoError(t, Apply(&task, Values{"dueDate": ts}))
	require.NotNil(t, task.DueDate)
	assert.Equal(t, "2024-05-06", task.DueDate.String())
}

func TestApplyDoesNotAliasPointers(t *testing.T) {
	day := 10
	stored := model.Income{Recurring: true, RecurringDay: &day}
	working := stored

	require.NoError(t, Apply(&working, Values{"recurringDay": 20}))
	assert.Equal(t, 20, *working.RecurringDay)
	assert.Equal(t, 10, *stored.RecurringDay)
}
