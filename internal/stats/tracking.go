package stats

import (
	"time"

	"lifetracker/internal/model"
)

// FillSmoking builds one row per window day, filling gaps with policy.
func FillSmoking(window []time.Time, records []model.SmokingRecord, policy SmokingGapPolicy) []model.SmokingDay {
	byDay := make(map[string]model.SmokingRecord, len(records))
	for _, r := range records {
		byDay[r.Date.String()] = r
	}

	out := make([]model.SmokingDay, 0, len(window))
	for _, day := range window {
		key := day.Format(model.DateLayout)
		row := model.SmokingDay{
			Date:             key,
			DayOfWeek:        DayOfWeek(day),
			SmokeFree:        policy.SmokeFree,
			CigarettesSmoked: policy.Cigarettes,
		}
		if r, ok := byDay[key]; ok {
			id := r.ID
			row.SmokeFree = r.SmokeFree
			row.CigarettesSmoked = r.CigarettesSmoked
			row.Notes = r.Notes
			row.ID = &id
		}
		out = append(out, row)
	}
	return out
}

func SmokingStats(days []model.SmokingDay) model.SmokingStatistics {
	free := make([]bool, len(days))
	var st model.SmokingStatistics
	smokingDays, smokingCigs := 0, 0

	for i, d := range days {
		free[i] = d.SmokeFree
		if d.SmokeFree {
			st.SmokeFreeCount++
		}
		st.TotalCigarettes += d.CigarettesSmoked
		if !d.SmokeFree && d.CigarettesSmoked > 0 {
			smokingDays++
			smokingCigs += d.CigarettesSmoked
		}
	}

	st.TotalDays = len(days)
	st.SmokedCount = st.TotalDays - st.SmokeFreeCount
	st.SuccessRate = Percent(st.SmokeFreeCount, st.TotalDays)
	st.CurrentStreak = CurrentStreak(free)
	st.LongestStreak = LongestStreak(free)
	st.AverageCigarettesPerDay = Mean1(float64(st.TotalCigarettes), st.TotalDays)
	st.AverageCigarettesOnSmokingDays = Mean1(float64(smokingCigs), smokingDays)
	return st
}

// FillHabits builds habit-major rows: every window day for the first habit, then the next.
func FillHabits(window []time.Time, habits []model.Habit, records []model.HabitRecord, policy HabitGapPolicy) []model.HabitDay {
	byKey := make(map[string]model.HabitRecord, len(records))
	for _, r := range records {
		byKey[r.HabitID+"/"+r.Date.String()] = r
	}

	out := make([]model.HabitDay, 0, len(window)*len(habits))
	for _, h := range habits {
		for _, day := range window {
			key := day.Format(model.DateLayout)
			row := model.HabitDay{
				HabitID:     h.ID,
				HabitName:   h.Name,
				HabitColor:  h.Color,
				Date:        key,
				DayOfWeek:   DayOfWeek(day),
				Completed:   policy.Completed,
				Count:       policy.Count,
				TargetCount: h.TargetCount,
			}
			if r, ok := byKey[h.ID+"/"+key]; ok {
				id := r.ID
				row.Completed = r.Completed
				row.Count = r.Count
				row.Notes = r.Notes
				row.ID = &id
			}
			out = append(out, row)
		}
	}
	return out
}

// HabitStats aggregates rows produced by FillHabits for a window of n days.
// Streaks count days on which every habit was completed.
func HabitStats(n int, habits []model.Habit, rows []model.HabitDay) model.HabitStatistics {
	quit := make(map[string]bool, len(habits))
	for _, h := range habits {
		if h.HabitType == model.HabitTypeQuit {
			quit[h.ID] = true
		}
	}

	var st model.HabitStatistics
	st.TotalHabits = len(habits)
	st.TotalDays = n * len(habits)
	st.QuitHabits = len(quit)
	st.QuitHabitDays = n * len(quit)

	perDay := make(map[string]int, n)
	var order []string
	for _, r := range rows {
		if _, seen := perDay[r.Date]; !seen {
			order = append(order, r.Date)
			perDay[r.Date] = 0
		}
		st.TotalCount += r.Count
		if !r.Completed {
			continue
		}
		st.CompletedDays++
		perDay[r.Date]++
		if quit[r.HabitID] {
			st.QuitHabitCompletedDays++
		}
	}

	st.CompletionRate = Percent(st.CompletedDays, st.TotalDays)
	st.AverageCount = Mean1(float64(st.TotalCount), st.TotalDays)
	st.QuitHabitSuccessRate = Percent(st.QuitHabitDays-st.QuitHabitCompletedDays, st.QuitHabitDays)

	full := make([]bool, len(order))
	for i, d := range order {
		full[i] = len(habits) > 0 && perDay[d] == len(habits)
	}
	st.CurrentStreak = CurrentStreak(full)
	st.LongestStreak = LongestStreak(full)
	return st
}
