package dto

// ── schedule DTOs ──

// ScheduleEntryResponse generated rotation entry
type ScheduleEntryResponse struct {
	Date      string `json:"date"`
	Weekday   string `json:"weekday"`
	Cycle     string `json:"cycle"`
	SlotGroup string `json:"slot_group"`
	Group     string `json:"group,omitempty"` // empty on holidays
	IsHoliday bool   `json:"is_holiday"`
}

// YearScheduleResponse generated calendar of a year
type YearScheduleResponse struct {
	Year     int                     `json:"year"`
	Anchor   string                  `json:"anchor"`
	Holidays []string                `json:"holidays"`
	Entries  []ScheduleEntryResponse `json:"entries"`
}

// ScheduleDayResponse merged view of one day
type ScheduleDayResponse struct {
	Date      string  `json:"date"`
	Weekday   string  `json:"weekday"`
	GroupID   *string `json:"group_id,omitempty"`
	GroupName string  `json:"group_name,omitempty"`
	IsHoliday bool    `json:"is_holiday"`
	Note      *string `json:"note,omitempty"`
	SlotGroup string  `json:"slot_group,omitempty"`
	Cycle     string  `json:"cycle,omitempty"`
	Source    string  `json:"source"` // generated | persisted
}

// CalendarResponse merged view of a month
type CalendarResponse struct {
	Year  int                   `json:"year"`
	Month int                   `json:"month"`
	Days  []ScheduleDayResponse `json:"days"`
}

// CalendarQuery month selector
type CalendarQuery struct {
	Year  int `form:"year"  binding:"required,min=2000,max=2100"`
	Month int `form:"month" binding:"required,min=1,max=12"`
}

// UpdateServiceDayRequest assign or free a day
type UpdateServiceDayRequest struct {
	GroupID *string `json:"group_id" binding:"omitempty,uuid"` // null = no service
	Note    *string `json:"note"      binding:"omitempty,max=500"`
}

// MarkHolidayRequest toggle the holiday flag of a day
type MarkHolidayRequest struct {
	IsHoliday *bool   `json:"is_holiday" binding:"required"`
	Note      *string `json:"note"       binding:"omitempty,max=500"`
}

// SeedScheduleRequest materialize a year
type SeedScheduleRequest struct {
	Year      int  `json:"year"      binding:"required,min=2000,max=2100"`
	Overwrite bool `json:"overwrite"`
}

// SeedScheduleResponse seed outcome
type SeedScheduleResponse struct {
	Year      int   `json:"year"`
	Generated int   `json:"generated"`
	Written   int64 `json:"written"`
	Holidays  int   `json:"holidays"`
}
