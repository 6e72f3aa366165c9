package entity

import "time"

// RecurringRule is a weekly-repeating availability rule keyed by weekday
// (0=Sunday .. 6=Saturday). At most one rule per weekday.
type RecurringRule struct {
	ID        int64     `db:"id"`
	DayOfWeek int       `db:"day_of_week"`
	StartTime string    `db:"start_time"`
	EndTime   string    `db:"end_time"`
	Available bool      `db:"available"`
	CreatedAt time.Time `db:"created_at"`
}
