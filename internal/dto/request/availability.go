package request

type AvailabilityOverrideRequest struct {
	Date           string  `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime      string  `json:"start_time" validate:"required,datetime=15:04"`
	EndTime        string  `json:"end_time" validate:"required,datetime=15:04"`
	Available      *bool   `json:"available" validate:"required"`
	SlotInterval   int     `json:"slot_interval" validate:"omitempty,min=5,max=240"`
	IsSpecialDay   bool    `json:"is_special_day"`
	SpecialDayName *string `json:"special_day_name,omitempty"`
}

type RecurringRuleRequest struct {
	DayOfWeek *int   `json:"day_of_week" validate:"required,min=0,max=6"`
	StartTime string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime   string `json:"end_time" validate:"required,datetime=15:04"`
	Available *bool  `json:"available" validate:"required"`
}
