package model

import "time"

// Beneficiary registered beneficiary, table beneficiaries
type Beneficiary struct {
	BeneficiaryID  string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"beneficiary_id"`
	FullName       string     `gorm:"type:varchar(200);not null"                     json:"full_name"`
	NationalID     string     `gorm:"type:varchar(30);not null;uniqueIndex"          json:"national_id"`
	BirthDate      *time.Time `gorm:"type:date"                                      json:"birth_date,omitempty"`
	PlaceOfBirth   string     `gorm:"type:varchar(200)"                              json:"place_of_birth,omitempty"`
	Gender         string     `gorm:"type:varchar(1);not null;default:'U'"           json:"gender"` // M | F | U
	Address        string     `gorm:"type:varchar(500)"                              json:"address,omitempty"`
	Zone           string     `gorm:"type:varchar(100)"                              json:"zone,omitempty"`
	PhoneNumber    string     `gorm:"type:varchar(50)"                               json:"phone_number,omitempty"`
	ChronicIllness string     `gorm:"type:varchar(500)"                              json:"chronic_illness,omitempty"`
	PhotoURL       string     `gorm:"type:varchar(500)"                              json:"photo_url,omitempty"`
	HasChildren    bool       `gorm:"not null;default:false"                         json:"has_children"`
	Observations   string     `gorm:"type:text"                                      json:"observations,omitempty"`
	Status         string     `gorm:"type:varchar(20);not null;default:'Activo'"     json:"status"`
	GroupID        *string    `gorm:"type:uuid;index"                                json:"group_id,omitempty"` // NULL = unassigned
	VersionedModel

	Group       *Group       `gorm:"foreignKey:GroupID;references:GroupID"             json:"group,omitempty"`
	Children    []Child      `gorm:"foreignKey:BeneficiaryID;references:BeneficiaryID" json:"children,omitempty"`
	Attendances []Attendance `gorm:"foreignKey:BeneficiaryID;references:BeneficiaryID" json:"attendances,omitempty"`
}

// TableName table name
func (Beneficiary) TableName() string { return "beneficiaries" }

// IsActive reports whether the beneficiary belongs to the expected roster.
func (b *Beneficiary) IsActive() bool { return b.Status == StatusActive }

// Child dependent of a beneficiary, table children
type Child struct {
	ChildID       string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"child_id"`
	BeneficiaryID string     `gorm:"type:uuid;not null;index"                       json:"beneficiary_id"`
	FullName      string     `gorm:"type:varchar(200);not null"                     json:"full_name"`
	Gender        string     `gorm:"type:varchar(1);not null;default:'U'"           json:"gender"`
	NationalID    *string    `gorm:"type:varchar(30)"                               json:"national_id,omitempty"`
	BirthDate     *time.Time `gorm:"type:date"                                      json:"birth_date,omitempty"`
	IsStudying    bool       `gorm:"not null;default:false"                         json:"is_studying"`
	Observations  string     `gorm:"type:text"                                      json:"observations,omitempty"`
	BaseModel
}

// TableName table name
func (Child) TableName() string { return "children" }

// ZoneCount beneficiaries per zone
type ZoneCount struct {
	Zone  string `gorm:"column:zone"`
	Count int64  `gorm:"column:count"`
}

// ZoneUnknown bucket for beneficiaries without a zone
const ZoneUnknown = "Sin Zona"
