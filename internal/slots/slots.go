package slots

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DefaultInterval is the slot granularity in minutes when a rule does not
// carry its own interval.
const DefaultInterval = 30

// Clock supplies the current time. Injected so same-day filtering and the
// booking horizon can be pinned in tests.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by the wall clock.
func SystemClock() Clock { return systemClock{} }

// DayWindow is the resolved open window for one calendar date, after rule
// precedence (override, recurring, default) has been applied.
type DayWindow struct {
	Open           bool
	Start          string // "HH:MM"
	End            string // "HH:MM"
	Interval       int    // minutes
	SpecialDayName string
}

// Slot is a bookable time offering. Only available slots are emitted.
type Slot struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

// Generate produces the ordered list of bookable slots for date.
//
// Starting at the window's start, a slot is emitted for every step of
// Interval minutes whose full interval still fits before the window's end:
// a start time t is emitted only while t+interval <= end. Slots whose label
// is in the booked set are dropped, and when date is the clock's current
// day, slots whose start is not after now are dropped as well.
func Generate(date time.Time, window DayWindow, booked map[string]bool, clock Clock) ([]Slot, error) {
	if !window.Open {
		return nil, nil
	}

	interval := window.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}

	start, err := parseTimeOnDate(date, window.Start)
	if err != nil {
		return nil, fmt.Errorf("parse window start: %w", err)
	}
	end, err := parseTimeOnDate(date, window.End)
	if err != nil {
		return nil, fmt.Errorf("parse window end: %w", err)
	}
	if !start.Before(end) {
		return nil, fmt.Errorf("window start %s not before end %s", window.Start, window.End)
	}

	now := clock.Now()
	sameDay := date.Year() == now.Year() && date.YearDay() == now.YearDay()

	step := time.Duration(interval) * time.Minute
	var result []Slot
	seen := make(map[string]bool)

	for cursor := start; !cursor.Add(step).After(end); cursor = cursor.Add(step) {
		label := Label(cursor)
		if seen[label] {
			continue
		}
		seen[label] = true

		if booked[label] {
			continue
		}
		if sameDay && !cursor.After(now) {
			continue
		}

		result = append(result, Slot{Time: label, Available: true})
	}

	return result, nil
}

// Label formats a time as the 12-hour slot label used throughout the
// system, e.g. "9:30 AM".
func Label(t time.Time) string {
	return t.Format("3:04 PM")
}

// ParseLabel parses a slot label back into a time-of-day on the given date.
func ParseLabel(date time.Time, label string) (time.Time, error) {
	t, err := time.Parse("3:04 PM", label)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse slot label %q: %w", label, err)
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, date.Location()), nil
}

func parseTimeOnDate(date time.Time, timeStr string) (time.Time, error) {
	parts := strings.Split(timeStr, ":")
	if len(parts) < 2 {
		return time.Time{}, fmt.Errorf("invalid time format: %s", timeStr)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid hour: %w", err)
	}

	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid minute: %w", err)
	}

	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return time.Time{}, fmt.Errorf("time out of range: %s", timeStr)
	}

	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, date.Location()), nil
}
