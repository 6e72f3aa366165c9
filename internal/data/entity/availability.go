package entity

import "time"

// AvailabilityOverride is an availability rule for one specific calendar date.
// It takes precedence over any recurring rule for that weekday.
type AvailabilityOverride struct {
	ID             int64     `db:"id"`
	Date           string    `db:"date"` // YYYY-MM-DD, unique
	StartTime      string    `db:"start_time"`
	EndTime        string    `db:"end_time"`
	Available      bool      `db:"available"`
	SlotInterval   int       `db:"slot_interval"` // minutes
	IsSpecialDay   bool      `db:"is_special_day"`
	SpecialDayName *string   `db:"special_day_name"`
	CreatedAt      time.Time `db:"created_at"`
}
