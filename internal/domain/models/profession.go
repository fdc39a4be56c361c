package models

// Profession is reference data identified by its KEOR classification code.
type Profession struct {
	BaseModel
	KeorID      string `gorm:"type:varchar(20);unique;not null;column:keor_id" json:"keor_id"`
	Name        string `gorm:"type:varchar(200);not null" json:"name"`
	Description string `gorm:"type:varchar(500)" json:"description"`
}
