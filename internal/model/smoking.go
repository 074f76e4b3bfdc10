package model

// SmokingRecord is one day of smoking tracking, unique per (user, date).
type SmokingRecord struct {
	Owned
	Date             Date   `json:"date" db:"date"`
	SmokeFree        bool   `json:"smokeFree" db:"smoke_free"`
	CigarettesSmoked int    `json:"cigarettesSmoked" db:"cigarettes_smoked"`
	Notes            string `json:"notes" db:"notes"`
}

type SmokingDay struct {
	Date             string  `json:"date"`
	DayOfWeek        string  `json:"dayOfWeek"`
	SmokeFree        bool    `json:"smokeFree"`
	CigarettesSmoked int     `json:"cigarettesSmoked"`
	Notes            string  `json:"notes"`
	ID               *string `json:"id"`
}

type SmokingStatistics struct {
	TotalDays                      int     `json:"totalDays"`
	SmokeFreeCount                 int     `json:"smokeFreeCount"`
	SmokedCount                    int     `json:"smokedCount"`
	SuccessRate                    int     `json:"successRate"`
	CurrentStreak                  int     `json:"currentStreak"`
	LongestStreak                  int     `json:"longestStreak"`
	TotalCigarettes                int     `json:"totalCigarettes"`
	AverageCigarettesPerDay        float64 `json:"averageCigarettesPerDay"`
	AverageCigarettesOnSmokingDays float64 `json:"averageCigarettesOnSmokingDays"`
}
