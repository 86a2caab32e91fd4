package dto

// ── holiday DTOs ──

// CreateHolidayRequest manual holiday
type CreateHolidayRequest struct {
	Date string `json:"date" binding:"required"` // "2006-01-02"
	Name string `json:"name" binding:"required,max=200"`
}

// HolidayQuery year selector
type HolidayQuery struct {
	Year int `form:"year" binding:"required,min=2000,max=2100"`
}

// HolidayResponse holiday row
type HolidayResponse struct {
	ID     string `json:"id"`
	Date   string `json:"date"`
	Name   string `json:"name"`
	Source string `json:"source"`
}

// ImportHolidaysResponse ICS import outcome
type ImportHolidaysResponse struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Dates    []string `json:"dates"`
}
