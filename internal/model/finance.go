package model

import "time"

var (
	ExpenseTypes    = []string{"personal", "family", "friends"}
	IncomeTypes     = []string{"salary", "freelance", "investment", "other"}
	InvestmentTypes = []string{"mutual_fund", "shares", "courses"}
)

type Expense struct {
	Owned
	Amount        float64   `json:"amount" db:"amount"`
	Category      string    `json:"category" db:"category"`
	Description   string    `json:"description" db:"description"`
	Date          time.Time `json:"date" db:"date"`
	Type          string    `json:"type" db:"type"`
	IsRecoverable bool      `json:"isRecoverable" db:"is_recoverable"`
	PersonName    string    `json:"personName" db:"person_name"`
}

type Income struct {
	Owned
	Amount       float64   `json:"amount" db:"amount"`
	Source       string    `json:"source" db:"source"`
	Date         time.Time `json:"date" db:"date"`
	Type         string    `json:"type" db:"type"`
	Recurring    bool      `json:"recurring" db:"recurring"`
	RecurringDay *int      `json:"recurringDay" db:"recurring_day"`
}

// Loan is money lent to or borrowed from someone.
type Loan struct {
	Owned
	Amount             float64    `json:"amount" db:"amount"`
	PersonName         string     `json:"personName" db:"person_name"`
	Description        string     `json:"description" db:"description"`
	Date               time.Time  `json:"date" db:"date"`
	ExpectedReturnDate *time.Time `json:"expectedReturnDate" db:"expected_return_date"`
	IsReturned         bool       `json:"isReturned" db:"is_returned"`
	ReturnedDate       *time.Time `json:"returnedDate" db:"returned_date"`
}

type Investment struct {
	Owned
	Amount         float64   `json:"amount" db:"amount"`
	Type           string    `json:"type" db:"type"`
	Description    string    `json:"description" db:"description"`
	Date           time.Time `json:"date" db:"date"`
	ExpectedReturn *float64  `json:"expectedReturn" db:"expected_return"`
	IsActive       bool      `json:"isActive" db:"is_active"`
}

type FinanceSummary struct {
	TotalIncome        float64            `json:"totalIncome"`
	TotalExpenses      float64            `json:"totalExpenses"`
	TotalLent          float64            `json:"totalLent"`
	TotalBorrowed      float64            `json:"totalBorrowed"`
	TotalInvested      float64            `json:"totalInvested"`
	NetWorth           float64            `json:"netWorth"`
	ExpensesByCategory map[string]float64 `json:"expensesByCategory"`
}
