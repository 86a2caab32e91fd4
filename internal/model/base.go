package model

import "time"

// Beneficiary status values
const (
	StatusActive   = "Activo"
	StatusInactive = "Inactivo"
)

// Attendance status values. Absence is stored as an attendance row.
const (
	AttendancePresent = "Presente"
	AttendanceAbsent  = "Ausente"
)

// BaseModel audit timestamps embedded by every business model
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// VersionedModel adds an optimistic-lock version
type VersionedModel struct {
	BaseModel
	Version int `gorm:"not null;default:1" json:"version"`
}
