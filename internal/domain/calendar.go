package domain

import "time"

// WeekRecord is one 7-day interval of the life grid. Derived, never
// persisted; recomputed on every read.
type WeekRecord struct {
	WeekNumber int       `json:"week_number"`
	Year       int       `json:"year"`
	WeekOfYear int       `json:"week_of_year"`
	Date       time.Time `json:"date"`
	IsLived    bool      `json:"is_lived"`
	IsCurrent  bool      `json:"is_current"`
	Note       string    `json:"note"`
}

type CalendarView struct {
	TotalWeeks  int          `json:"total_weeks"`
	LivedWeeks  int          `json:"lived_weeks"`
	CurrentWeek int          `json:"current_week"`
	Weeks       []WeekRecord `json:"weeks"`
}
