package models

// Institution is reference data for an educational institution, identified
// by its educational (OM) id.
type Institution struct {
	BaseModel
	EducationalID string `gorm:"type:varchar(20);unique;not null" json:"educational_id"`
	Name          string `gorm:"type:varchar(200);not null" json:"name"`
	Address       string `gorm:"type:varchar(300)" json:"address"`
	ContactEmail  string `gorm:"type:varchar(100)" json:"contact_email"`
}
