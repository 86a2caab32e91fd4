package dto

// ── beneficiary DTOs ──

// ChildRequest dependent payload
type ChildRequest struct {
	FullName     string  `json:"full_name"    binding:"required,max=200"`
	Gender       string  `json:"gender"       binding:"omitempty,oneof=M F U"`
	NationalID   *string `json:"national_id"  binding:"omitempty,max=30"`
	BirthDate    string  `json:"birth_date"` // "2006-01-02"
	IsStudying   bool    `json:"is_studying"`
	Observations string  `json:"observations"`
}

// CreateBeneficiaryRequest create payload
type CreateBeneficiaryRequest struct {
	FullName       string         `json:"full_name"       binding:"required,min=2,max=200"`
	NationalID     string         `json:"national_id"     binding:"required,max=30"`
	BirthDate      string         `json:"birth_date"` // "2006-01-02"
	PlaceOfBirth   string         `json:"place_of_birth"  binding:"max=200"`
	Gender         string         `json:"gender"          binding:"omitempty,oneof=M F U"`
	Address        string         `json:"address"         binding:"max=500"`
	Zone           string         `json:"zone"            binding:"max=100"`
	PhoneNumber    string         `json:"phone_number"    binding:"max=50"`
	ChronicIllness string         `json:"chronic_illness" binding:"max=500"`
	PhotoURL       string         `json:"photo_url"       binding:"max=500"`
	Observations   string         `json:"observations"`
	GroupID        *string        `json:"group_id"        binding:"omitempty,uuid"`
	Children       []ChildRequest `json:"children"        binding:"omitempty,dive"`
}

// UpdateBeneficiaryRequest partial update. Children, when present, replace the existing list.
type UpdateBeneficiaryRequest struct {
	Version        int             `json:"version"         binding:"required,min=1"`
	FullName       *string         `json:"full_name"       binding:"omitempty,min=2,max=200"`
	NationalID     *string         `json:"national_id"     binding:"omitempty,max=30"`
	BirthDate      *string         `json:"birth_date"`
	PlaceOfBirth   *string         `json:"place_of_birth"  binding:"omitempty,max=200"`
	Gender         *string         `json:"gender"          binding:"omitempty,oneof=M F U"`
	Address        *string         `json:"address"         binding:"omitempty,max=500"`
	Zone           *string         `json:"zone"            binding:"omitempty,max=100"`
	PhoneNumber    *string         `json:"phone_number"    binding:"omitempty,max=50"`
	ChronicIllness *string         `json:"chronic_illness" binding:"omitempty,max=500"`
	PhotoURL       *string         `json:"photo_url"       binding:"omitempty,max=500"`
	Observations   *string         `json:"observations"`
	Children       *[]ChildRequest `json:"children"`
}

// MoveBeneficiaryRequest reassign group, null leaves the beneficiary unassigned
type MoveBeneficiaryRequest struct {
	GroupID *string `json:"group_id" binding:"omitempty,uuid"`
}

// SetStatusRequest activate or deactivate
type SetStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=Activo Inactivo"`
}

// ListBeneficiariesRequest list filters
type ListBeneficiariesRequest struct {
	PaginationRequest
	GroupID    string `form:"group_id"  binding:"omitempty,uuid"`
	Unassigned bool   `form:"unassigned"`
	Status     string `form:"status"  binding:"omitempty,oneof=Activo Inactivo"`
	Search     string `form:"search"  binding:"omitempty,max=100"`
}

// ChildResponse dependent
type ChildResponse struct {
	ID           string  `json:"id"`
	FullName     string  `json:"full_name"`
	Gender       string  `json:"gender"`
	NationalID   *string `json:"national_id,omitempty"`
	BirthDate    string  `json:"birth_date,omitempty"`
	IsStudying   bool    `json:"is_studying"`
	Observations string  `json:"observations,omitempty"`
}

// BeneficiaryResponse beneficiary row
type BeneficiaryResponse struct {
	ID             string      `json:"id"`
	FullName       string      `json:"full_name"`
	NationalID     string      `json:"national_id"`
	BirthDate      string      `json:"birth_date,omitempty"`
	PlaceOfBirth   string      `json:"place_of_birth,omitempty"`
	Gender         string      `json:"gender"`
	Address        string      `json:"address,omitempty"`
	Zone           string      `json:"zone,omitempty"`
	PhoneNumber    string      `json:"phone_number,omitempty"`
	ChronicIllness string      `json:"chronic_illness,omitempty"`
	PhotoURL       string      `json:"photo_url,omitempty"`
	HasChildren    bool        `json:"has_children"`
	Observations   string      `json:"observations,omitempty"`
	Status         string      `json:"status"`
	Group          *GroupBrief `json:"group,omitempty"`
	Version        int         `json:"version"`
	CreatedAt      string      `json:"created_at"`
	UpdatedAt      string      `json:"updated_at"`
}

// BeneficiaryDetailResponse beneficiary with children and latest attendances
type BeneficiaryDetailResponse struct {
	BeneficiaryResponse
	Children          []ChildResponse      `json:"children"`
	RecentAttendances []AttendanceResponse `json:"recent_attendances"`
}
