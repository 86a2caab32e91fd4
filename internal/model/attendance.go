package model

import "time"

// Attendance delivery/attendance record, table attendances.
// One row per beneficiary per day, enforced by uq_attendance_beneficiary_date.
type Attendance struct {
	AttendanceID      string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"               json:"attendance_id"`
	BeneficiaryID     string    `gorm:"type:uuid;not null;uniqueIndex:uq_attendance_beneficiary_date" json:"beneficiary_id"`
	Date              time.Time `gorm:"column:attendance_date;type:date;not null;uniqueIndex:uq_attendance_beneficiary_date" json:"date"`
	Status            string    `gorm:"type:varchar(20);not null;default:'Presente'"                 json:"status"` // Presente | Ausente
	ReceivedFood      bool      `gorm:"not null;default:false"                                       json:"received_food"`
	FoodQuantity      int       `gorm:"not null;default:0"                                           json:"food_quantity"`
	ReceivedClothes   bool      `gorm:"not null;default:false"                                       json:"received_clothes"`
	ClothesQuantity   int       `gorm:"not null;default:0"                                           json:"clothes_quantity"`
	ReceivedMedical   bool      `gorm:"not null;default:false"                                       json:"received_medical"`
	MedicinesReceived string    `gorm:"type:varchar(500);not null;default:''"                        json:"medicines_received"`
	Signature         string    `gorm:"type:varchar(200)"                                            json:"signature,omitempty"`
	CreatedAt         time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"                           json:"created_at"`

	Beneficiary *Beneficiary `gorm:"foreignKey:BeneficiaryID;references:BeneficiaryID" json:"beneficiary,omitempty"`
}

// TableName table name
func (Attendance) TableName() string { return "attendances" }

// IsAbsent reports whether the row records an absence.
func (a *Attendance) IsAbsent() bool { return a.Status == AttendanceAbsent }

// AttendanceTotals aggregate delivery totals
type AttendanceTotals struct {
	FoodCount    int64 `gorm:"column:food_count"`
	MedicalCount int64 `gorm:"column:medical_count"`
	ClothesItems int64 `gorm:"column:clothes_items"`
}

// GroupAttendanceTotals delivery totals per group
type GroupAttendanceTotals struct {
	GroupID      string `gorm:"column:group_id"`
	Name         string `gorm:"column:name"`
	FoodCount    int64  `gorm:"column:food_count"`
	MedicalCount int64  `gorm:"column:medical_count"`
	ClothesItems int64  `gorm:"column:clothes_items"`
}
