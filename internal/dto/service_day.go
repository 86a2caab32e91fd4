package dto

// ── service day DTOs ──

// CloseDayRequest close a group's service day
type CloseDayRequest struct {
	GroupID string `json:"group_id" binding:"required,uuid"`
	Date    string `json:"date"` // "2006-01-02", empty = today
}

// CloseDayResponse reconciliation outcome
type CloseDayResponse struct {
	GroupID string `json:"group_id"`
	Date    string `json:"date"`
	Total   int    `json:"total"`
	Present int    `json:"present"`
	Absent  int    `json:"absent"`
}

// DayReportQuery report selector
type DayReportQuery struct {
	GroupID string `form:"group_id" binding:"required,uuid"`
	Date    string `form:"date"`
}

// DayReportStats totals of a service day
type DayReportStats struct {
	TotalBeneficiaries int `json:"total_beneficiaries"`
	Present            int `json:"present"`
	Absent             int `json:"absent"`
	FoodPacks          int `json:"food_packs"`
	ClothesPieces      int `json:"clothes_pieces"`
	MedicalAttention   int `json:"medical_attention"`
}

// DayReportResponse records and totals of a service day
type DayReportResponse struct {
	GroupID   string               `json:"group_id"`
	GroupName string               `json:"group_name"`
	Date      string               `json:"date"`
	Records   []AttendanceResponse `json:"records"`
	Stats     DayReportStats       `json:"stats"`
}
