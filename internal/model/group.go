package model

// Group aid group, table groups. Name doubles as the rotation slot key.
type Group struct {
	GroupID     string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"group_id"`
	Name        string `gorm:"type:varchar(100);not null;uniqueIndex"         json:"name"`
	Description string `gorm:"type:varchar(500)"                              json:"description,omitempty"`
	BaseModel
}

// TableName table name
func (Group) TableName() string { return "groups" }

// GroupWithCount group plus its beneficiary count
type GroupWithCount struct {
	Group
	BeneficiaryCount int64 `gorm:"column:beneficiary_count" json:"beneficiary_count"`
}
