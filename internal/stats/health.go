package stats

import (
	"math"

	"lifetracker/internal/model"
)

// BMI from weight in kilograms and height in centimetres, one decimal.
func BMI(weightKg, heightCm float64) float64 {
	if weightKg <= 0 || heightCm <= 0 {
		return 0
	}
	m := heightCm / 100
	return Round1(weightKg / (m * m))
}

func BMICategory(bmi float64) string {
	switch {
	case bmi <= 0:
		return ""
	case bmi < 18.5:
		return "underweight"
	case bmi < 25:
		return "normal"
	case bmi < 30:
		return "overweight"
	default:
		return "obese"
	}
}

// Nutrition totals diet entries.
func Nutrition(entries []model.DietEntry) model.Macros {
	var m model.Macros
	for _, e := range entries {
		m.Calories += e.Calories
		m.Protein += e.Protein
		m.Carbs += e.Carbs
		m.Fat += e.Fat
		m.Fiber += e.Fiber
	}
	return roundMacros(m)
}

// Remaining is target minus consumed per macro; negative means over target.
func Remaining(d model.Diet, consumed model.Macros) model.Macros {
	return roundMacros(model.Macros{
		Calories: d.TargetCalories - consumed.Calories,
		Protein:  d.TargetProtein - consumed.Protein,
		Carbs:    d.TargetCarbs - consumed.Carbs,
		Fat:      d.TargetFat - consumed.Fat,
		Fiber:    d.TargetFiber - consumed.Fiber,
	})
}

func roundMacros(m model.Macros) model.Macros {
	return model.Macros{
		Calories: Round1(m.Calories),
		Protein:  Round1(m.Protein),
		Carbs:    Round1(m.Carbs),
		Fat:      Round1(m.Fat),
		Fiber:    Round1(m.Fiber),
	}
}

// CaloriesBurned sums exercise calories.
func CaloriesBurned(ex []model.Exercise) float64 {
	var sum float64
	for _, e := range ex {
		sum += e.CaloriesBurned
	}
	return Round1(sum)
}

// Finance reduces money records into totals. Returned loans and inactive
// investments do not count.
func Finance(expenses []model.Expense, incomes []model.Income, lent, borrowed []model.Loan, investments []model.Investment) model.FinanceSummary {
	s := model.FinanceSummary{ExpensesByCategory: make(map[string]float64)}
	for _, e := range expenses {
		s.TotalExpenses += e.Amount
		s.ExpensesByCategory[e.Category] += e.Amount
	}
	for _, i := range incomes {
		s.TotalIncome += i.Amount
	}
	for _, l := range lent {
		if !l.IsReturned {
			s.TotalLent += l.Amount
		}
	}
	for _, b := range borrowed {
		if !b.IsReturned {
			s.TotalBorrowed += b.Amount
		}
	}
	for _, inv := range investments {
		if inv.IsActive {
			s.TotalInvested += inv.Amount
		}
	}
	s.NetWorth = s.TotalIncome - s.TotalExpenses - s.TotalLent + s.TotalBorrowed - s.TotalInvested
	s.NetWorth = math.Round(s.NetWorth*100) / 100
	return s
}
