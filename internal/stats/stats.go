// Package stats folds date-ordered tracking rows into aggregate counters.
package stats

import (
	"math"
	"time"

	"lifetracker/internal/model"
)

// CurrentStreak counts trailing true values, oldest first.
func CurrentStreak(days []bool) int {
	streak := 0
	for i := len(days) - 1; i >= 0; i-- {
		if !days[i] {
			break
		}
		streak++
	}
	return streak
}

// LongestStreak is the longest run of consecutive true values.
func LongestStreak(days []bool) int {
	longest, run := 0, 0
	for _, ok := range days {
		if !ok {
			run = 0
			continue
		}
		run++
		if run > longest {
			longest = run
		}
	}
	return longest
}

// Percent is part/total as a rounded whole percentage, 0 when total is 0.
func Percent(part, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}

// Mean1 is sum/n rounded to one decimal place, 0 when n is 0.
func Mean1(sum float64, n int) float64 {
	if n <= 0 {
		return 0
	}
	return Round1(sum / float64(n))
}

func Round1(f float64) float64 {
	return math.Round(f*10) / 10
}

// Window lists the UTC calendar days of a window of n days ending at end.
func Window(end time.Time, n int) []time.Time {
	if n <= 0 {
		return nil
	}
	last := model.TruncateDay(end)
	days := make([]time.Time, n)
	for i := 0; i < n; i++ {
		days[i] = last.AddDate(0, 0, i-n+1)
	}
	return days
}

// DayOfWeek is the short English weekday name, e.g. "Mon".
func DayOfWeek(t time.Time) string {
	return t.Weekday().String()[:3]
}
