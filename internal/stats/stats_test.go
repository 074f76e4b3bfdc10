package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lifetracker/internal/model"
)

func TestStreaks(t *testing.T) {
	tests := []struct {
		name    string
		days    []bool
		current int
		longest int
	}{
		{"empty", nil, 0, 0},
		{"mixed ending true", []bool{true, true, false, true}, 1, 2},
		{"all true", []bool{true, true, true}, 3, 3},
		{"ending false", []bool{true, true, true, false}, 0, 3},
		{"two runs", []bool{true, false, true, true, true, false, true, true}, 2, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CurrentStreak(tt.days); got != tt.current {
				t.Errorf("CurrentStreak() = %d, want %d", got, tt.current)
			}
			if got := LongestStreak(tt.days); got != tt.longest {
				t.Errorf("LongestStreak() = %d, want %d", got, tt.longest)
			}
		})
	}
}

func TestPercentAndMean(t *testing.T) {
	tests := []struct {
		part, total int
		want        int
	}{
		{0, 0, 0},
		{1, 3, 33},
		{2, 3, 67},
		{5, 5, 100},
	}
	for _, tt := range tests {
		if got := Percent(tt.part, tt.total); got != tt.want {
			t.Errorf("Percent(%d, %d) = %d, want %d", tt.part, tt.total, got, tt.want)
		}
	}

	if got := Mean1(10, 3); got != 3.3 {
		t.Errorf("Mean1(10, 3) = %v, want 3.3", got)
	}
	if got := Mean1(5, 0); got != 0 {
		t.Errorf("Mean1(5, 0) = %v, want 0", got)
	}
}

func TestWindow(t *testing.T) {
	end := time.Date(2024, 3, 2, 18, 45, 0, 0, time.UTC)
	w := Window(end, 3)
	require.Len(t, w, 3)
	assert.Equal(t, "2024-02-29", w[0].Format(model.DateLayout))
	assert.Equal(t, "2024-03-01", w[1].Format(model.DateLayout))
	assert.Equal(t, "2024-03-02", w[2].Format(model.DateLayout))
	assert.Equal(t, "Sat", DayOfWeek(w[2]))

	assert.Empty(t, Window(end, 0))
}

func day(s string) model.Date {
	t, err := time.Parse(model.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return model.NewDate(t)
}

func TestFillSmokingDefaultPolicy(t *testing.T) {
	end := time.Date(2024, 1, 4, 12, 0, 0, 0, time.UTC)
	records := []model.SmokingRecord{
		{Owned: model.Owned{ID: "a"}, Date: day("2024-01-02"), SmokeFree: true},
		{Owned: model.Owned{ID: "b"}, Date: day("2024-01-03"), SmokeFree: true},
		{Owned: model.Owned{ID: "c"}, Date: day("2024-01-04"), SmokeFree: false, CigarettesSmoked: 4},
	}

	rows := FillSmoking(Window(end, 4), records, AssumeSmoking)
	require.Len(t, rows, 4)

	assert.Equal(t, "2024-01-01", rows[0].Date)
	assert.False(t, rows[0].SmokeFree)
	assert.Equal(t, 1, rows[0].CigarettesSmoked)
	assert.Nil(t, rows[0].ID)
	require.NotNil(t, rows[3].ID)
	assert.Equal(t, "c", *rows[3].ID)

	st := SmokingStats(rows)
	assert.Equal(t, 4, st.TotalDays)
	assert.Equal(t, 2, st.SmokeFreeCount)
	assert.Equal(t, 2, st.SmokedCount)
	assert.Equal(t, 50, st.SuccessRate)
	assert.Equal(t, 0, st.CurrentStreak)
	assert.Equal(t, 2, st.LongestStreak)
	assert.Equal(t, 5, st.TotalCigarettes)
	assert.Equal(t, 1.3, st.AverageCigarettesPerDay)
	assert.Equal(t, 2.5, st.AverageCigarettesOnSmokingDays)
}

func TestFillSmokingSmokeFreePolicy(t *testing.T) {
	end := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)
	rows := FillSmoking(Window(end, 3), nil, AssumeSmokeFree)

	st := SmokingStats(rows)
	assert.Equal(t, 100, st.SuccessRate)
	assert.Equal(t, 3, st.CurrentStreak)
	assert.Equal(t, 0, st.TotalCigarettes)
}

func TestParseSmokingGapPolicy(t *testing.T) {
	p, err := ParseSmokingGapPolicy("", 0)
	require.NoError(t, err)
	assert.Equal(t, AssumeSmoking, p)

	p, err = ParseSmokingGapPolicy("assume_smoking", 3)
	require.NoError(t, err)
	assert.Equal(t, 3, p.Cigarettes)

	p, err = ParseSmokingGapPolicy("assume_smoke_free", 3)
	require.NoError(t, err)
	assert.True(t, p.SmokeFree)

	_, err = ParseSmokingGapPolicy("optimistic", 0)
	assert.Error(t, err)
}

func TestHabitStats(t *testing.T) {
	habits := []model.Habit{
		{Owned: model.Owned{ID: "read"}, Name: "Read", TargetCount: 1, HabitType: model.HabitTypeBuild},
		{Owned: model.Owned{ID: "soda"}, Name: "Soda", TargetCount: 1, HabitType: model.HabitTypeQuit},
	}
	records := []model.HabitRecord{
		{Owned: model.Owned{ID: "r1"}, HabitID: "read", Date: day("2024-01-01"), Completed: true, Count: 2},
		{Owned: model.Owned{ID: "r2"}, HabitID: "read", Date: day("2024-01-02"), Completed: true, Count: 1},
		{Owned: model.Owned{ID: "r3"}, HabitID: "soda", Date: day("2024-01-02"), Completed: true, Count: 1},
	}
	end := time.Date(2024, 1, 3, 9, 0, 0, 0, time.UTC)
	window := Window(end, 3)

	rows := FillHabits(window, habits, records, NotCompleted)
	require.Len(t, rows, 6)
	assert.Equal(t, "read", rows[0].HabitID)
	assert.Equal(t, "soda", rows[3].HabitID)
	assert.False(t, rows[2].Completed)
	assert.Equal(t, 0, rows[2].Count)

	st := HabitStats(3, habits, rows)
	assert.Equal(t, 2, st.TotalHabits)
	assert.Equal(t, 6, st.TotalDays)
	assert.Equal(t, 3, st.CompletedDays)
	assert.Equal(t, 50, st.CompletionRate)
	assert.Equal(t, 4, st.TotalCount)
	assert.Equal(t, 0.7, st.AverageCount)
	assert.Equal(t, 1, st.QuitHabits)
	assert.Equal(t, 3, st.QuitHabitDays)
	assert.Equal(t, 1, st.QuitHabitCompletedDays)
	assert.Equal(t, 67, st.QuitHabitSuccessRate)
	assert.Equal(t, 0, st.CurrentStreak)
	assert.Equal(t, 1, st.LongestStreak)
}

func TestBMI(t *testing.T) {
	tests := []struct {
		weight, height float64
		bmi            float64
		category       string
	}{
		{70, 175, 22.9, "normal"},
		{50, 180, 15.4, "underweight"},
		{85, 175, 27.8, "overweight"},
		{110, 170, 38.1, "obese"},
		{70, 0, 0, ""},
	}
	for _, tt := range tests {
		got := BMI(tt.weight, tt.height)
		if got != tt.bmi {
			t.Errorf("BMI(%v, %v) = %v, want %v", tt.weight, tt.height, got, tt.bmi)
		}
		if c := BMICategory(got); c != tt.category {
			t.Errorf("BMICategory(%v) = %q, want %q", got, c, tt.category)
		}
	}
}

func TestFinance(t *testing.T) {
	s := Finance(
		[]model.Expense{{Amount: 100, Category: "food"}, {Amount: 50, Category: "food"}, {Amount: 25, Category: "rent"}},
		[]model.Income{{Amount: 1000}},
		[]model.Loan{{Amount: 200}, {Amount: 300, IsReturned: true}},
		[]model.Loan{{Amount: 40}},
		[]model.Investment{{Amount: 150, IsActive: true}, {Amount: 999}},
	)

	assert.Equal(t, 1000.0, s.TotalIncome)
	assert.Equal(t, 175.0, s.TotalExpenses)
	assert.Equal(t, 200.0, s.TotalLent)
	assert.Equal(t, 40.0, s.TotalBorrowed)
	assert.Equal(t, 150.0, s.TotalInvested)
	assert.Equal(t, 515.0, s.NetWorth)
	assert.Equal(t, 150.0, s.ExpensesByCategory["food"])
}

func TestNutritionRemaining(t *testing.T) {
	consumed := Nutrition([]model.DietEntry{
		{Calories: 500, Protein: 30, Carbs: 50, Fat: 10, Fiber: 5},
		{Calories: 250.5, Protein: 10, Carbs: 20, Fat: 5, Fiber: 2},
	})
	assert.Equal(t, 750.5, consumed.Calories)

	left := Remaining(model.Diet{TargetCalories: 2000, TargetProtein: 150, TargetCarbs: 200, TargetFat: 60, TargetFiber: 25}, consumed)
	assert.Equal(t, 1249.5, left.Calories)
	assert.Equal(t, 110.0, left.Protein)
	assert.Equal(t, 18.0, left.Fiber)
}
