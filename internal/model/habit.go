package model

import "time"

const (
	HabitTypeBuild = "build"
	HabitTypeQuit  = "quit"
)

var (
	HabitFrequencies = []string{"daily", "weekly", "monthly"}
	HabitTypes       = []string{HabitTypeBuild, HabitTypeQuit}
)

type Habit struct {
	Owned
	Name        string     `json:"name" db:"name"`
	Description string     `json:"description" db:"description"`
	Category    string     `json:"category" db:"category"`
	Frequency   string     `json:"frequency" db:"frequency"`
	TargetCount int        `json:"targetCount" db:"target_count"`
	Color       string     `json:"color" db:"color"`
	HabitType   string     `json:"habitType" db:"habit_type"`
	QuitDate    *time.Time `json:"quitDate" db:"quit_date"`
	IsActive    bool       `json:"isActive" db:"is_active"`
}

// HabitRecord is one day of tracking for a habit, unique per (user, habit, date).
type HabitRecord struct {
	Owned
	HabitID   string `json:"habitId" db:"habit_id"`
	Date      Date   `json:"date" db:"date"`
	Completed bool   `json:"completed" db:"completed"`
	Count     int    `json:"count" db:"count"`
	Notes     string `json:"notes" db:"notes"`
}

// HabitDay is a gap-filled row of the tracking window.
type HabitDay struct {
	HabitID     string  `json:"habitId"`
	HabitName   string  `json:"habitName"`
	HabitColor  string  `json:"habitColor"`
	Date        string  `json:"date"`
	DayOfWeek   string  `json:"dayOfWeek"`
	Completed   bool    `json:"completed"`
	Count       int     `json:"count"`
	TargetCount int     `json:"targetCount"`
	Notes       string  `json:"notes"`
	ID          *string `json:"id"`
}

type HabitStatistics struct {
	TotalHabits            int     `json:"totalHabits"`
	TotalDays              int     `json:"totalDays"`
	CompletedDays          int     `json:"completedDays"`
	CompletionRate         int     `json:"completionRate"`
	TotalCount             int     `json:"totalCount"`
	AverageCount           float64 `json:"averageCount"`
	QuitHabits             int     `json:"quitHabits"`
	QuitHabitDays          int     `json:"quitHabitDays"`
	QuitHabitCompletedDays int     `json:"quitHabitCompletedDays"`
	QuitHabitSuccessRate   int     `json:"quitHabitSuccessRate"`
	CurrentStreak          int     `json:"currentStreak"`
	LongestStreak          int     `json:"longestStreak"`
}
