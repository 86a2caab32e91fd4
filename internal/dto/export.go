package dto

// ── export DTOs ──

// SignatureSheetQuery signature sheet selector. Covers month and the two following months.
type SignatureSheetQuery struct {
	GroupID string `form:"group_id" binding:"required,uuid"`
	Year    int    `form:"year"     binding:"required,min=2000,max=2100"`
	Month   int    `form:"month"    binding:"required,min=1,max=12"`
	Format  string `form:"format"   binding:"omitempty,oneof=xlsx pdf"`
}

// CalendarExportQuery ICS export selector
type CalendarExportQuery struct {
	Year int `form:"year" binding:"required,min=2000,max=2100"`
}

// UploadPhotoResponse stored photo location
type UploadPhotoResponse struct {
	URL         string `json:"url"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}
