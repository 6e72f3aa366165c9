package response

import (
	"barber-booking/internal/data/entity"
	"barber-booking/internal/slots"
)

// DayAvailabilityResponse is the slot list for one date. Closed days carry
// an empty slot list plus the special day name when one is set.
type DayAvailabilityResponse struct {
	Date           string       `json:"date"`
	Closed         bool         `json:"closed"`
	SpecialDayName string       `json:"special_day_name,omitempty"`
	Slots          []slots.Slot `json:"slots"`
}

type AvailabilityOverrideResponse struct {
	ID             int64   `json:"id"`
	Date           string  `json:"date"`
	StartTime      string  `json:"start_time"`
	EndTime        string  `json:"end_time"`
	Available      bool    `json:"available"`
	SlotInterval   int     `json:"slot_interval"`
	IsSpecialDay   bool    `json:"is_special_day"`
	SpecialDayName *string `json:"special_day_name,omitempty"`
}

type RecurringRuleResponse struct {
	ID        int64  `json:"id"`
	DayOfWeek int    `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Available bool   `json:"available"`
}

func OverrideToResponse(o *entity.AvailabilityOverride) AvailabilityOverrideResponse {
	return AvailabilityOverrideResponse{
		ID:             o.ID,
		Date:           o.Date,
		StartTime:      o.StartTime,
		EndTime:        o.EndTime,
		Available:      o.Available,
		SlotInterval:   o.SlotInterval,
		IsSpecialDay:   o.IsSpecialDay,
		SpecialDayName: o.SpecialDayName,
	}
}

func RecurringRuleToResponse(r *entity.RecurringRule) RecurringRuleResponse {
	return RecurringRuleResponse{
		ID:        r.ID,
		DayOfWeek: r.DayOfWeek,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		Available: r.Available,
	}
}
