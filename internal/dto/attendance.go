package dto

// ── attendance DTOs ──

// RegisterAttendanceRequest manual delivery registration
type RegisterAttendanceRequest struct {
	BeneficiaryID     string `json:"beneficiary_id"     binding:"required,uuid"`
	Date              string `json:"date"` // "2006-01-02", empty = today
	ReceivedFood      bool   `json:"received_food"`
	FoodQuantity      int    `json:"food_quantity"      binding:"min=0"`
	ReceivedClothes   bool   `json:"received_clothes"`
	ClothesQuantity   int    `json:"clothes_quantity"   binding:"min=0"`
	ReceivedMedical   bool   `json:"received_medical"`
	MedicinesReceived string `json:"medicines_received" binding:"max=500"`
	Signature         string `json:"signature"          binding:"max=200"`
}

// ListAttendanceRequest attendance of a group on a date
type ListAttendanceRequest struct {
	GroupID string `form:"group_id" binding:"required,uuid"`
	Date    string `form:"date"` // empty = today
}

// AttendanceResponse attendance row
type AttendanceResponse struct {
	ID                string            `json:"id"`
	BeneficiaryID     string            `json:"beneficiary_id"`
	Beneficiary       *BeneficiaryBrief `json:"beneficiary,omitempty"`
	Group             *GroupBrief       `json:"group,omitempty"`
	Date              string            `json:"date"`
	Status            string            `json:"status"`
	ReceivedFood      bool              `json:"received_food"`
	FoodQuantity      int               `json:"food_quantity"`
	ReceivedClothes   bool              `json:"received_clothes"`
	ClothesQuantity   int               `json:"clothes_quantity"`
	ReceivedMedical   bool              `json:"received_medical"`
	MedicinesReceived string            `json:"medicines_received,omitempty"`
	Signature         string            `json:"signature,omitempty"`
	CreatedAt         string            `json:"created_at"`
}
