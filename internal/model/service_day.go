package model

import "time"

// ServiceDay persisted calendar slot, table service_days.
// A row is authoritative over the generated rotation for its date.
type ServiceDay struct {
	ServiceDayID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"service_day_id"`
	Date         time.Time `gorm:"column:service_date;type:date;not null;uniqueIndex" json:"date"`
	GroupID      *string   `gorm:"type:uuid"                                      json:"group_id,omitempty"` // NULL = no service
	IsHoliday    bool      `gorm:"not null;default:false"                         json:"is_holiday"`
	Note         *string   `gorm:"type:varchar(500)"                              json:"note,omitempty"`
	BaseModel

	Group *Group `gorm:"foreignKey:GroupID;references:GroupID" json:"group,omitempty"`
}

// TableName table name
func (ServiceDay) TableName() string { return "service_days" }
