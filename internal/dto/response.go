package dto

// ── pagination ──

// IDParam :id path segment
type IDParam struct {
	ID string `uri:"id" binding:"required,uuid"`
}

// PaginationRequest common paging parameters
type PaginationRequest struct {
	Page     int `form:"page"      binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// GetPage page number with default
func (p *PaginationRequest) GetPage() int {
	if p.Page <= 0 {
		return 1
	}
	return p.Page
}

// GetPageSize page size with default
func (p *PaginationRequest) GetPageSize() int {
	if p.PageSize <= 0 {
		return 20
	}
	return p.PageSize
}

// GetOffset row offset
func (p *PaginationRequest) GetOffset() int {
	return (p.GetPage() - 1) * p.GetPageSize()
}

// ── shared briefs ──

// GroupBrief group summary embedded in other responses
type GroupBrief struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// BeneficiaryBrief beneficiary summary embedded in other responses
type BeneficiaryBrief struct {
	ID          string `json:"id"`
	FullName    string `json:"full_name"`
	NationalID  string `json:"national_id"`
	PhoneNumber string `json:"phone_number,omitempty"`
}
