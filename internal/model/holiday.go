package model

import "time"

// Holiday national holiday, table holidays
type Holiday struct {
	HolidayID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"holiday_id"`
	Date      time.Time `gorm:"column:holiday_date;type:date;not null;uniqueIndex" json:"date"`
	Name      string    `gorm:"type:varchar(200);not null"                     json:"name"`
	Source    string    `gorm:"type:varchar(20);not null;default:'manual'"     json:"source"` // manual | ics | seed
	BaseModel
}

// TableName table name
func (Holiday) TableName() string { return "holidays" }
