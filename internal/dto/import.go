package dto

// ── workbook import DTOs ──

// ImportRowError a row that could not be imported
type ImportRowError struct {
	Sheet   string `json:"sheet"`
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ImportResponse workbook import outcome
type ImportResponse struct {
	Beneficiaries int              `json:"beneficiaries"`
	GroupsCreated int              `json:"groups_created"`
	Attendances   int              `json:"attendances"`
	Duplicates    int              `json:"duplicates"`
	Errors        []ImportRowError `json:"errors"`
}
