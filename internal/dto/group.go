package dto

// ── group DTOs ──

// GroupResponse group with its beneficiary count
type GroupResponse struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Description      string `json:"description,omitempty"`
	BeneficiaryCount int64  `json:"beneficiary_count"`
}

// GroupDetailResponse group plus its active roster
type GroupDetailResponse struct {
	ID            string             `json:"id"`
	Name          string             `json:"name"`
	Description   string             `json:"description,omitempty"`
	Beneficiaries []BeneficiaryBrief `json:"beneficiaries"`
}
