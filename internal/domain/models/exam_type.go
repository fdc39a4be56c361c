package models

// ExamType is reference data describing a kind of examination. No soft
// delete; deletion is restricted while exams reference it.
type ExamType struct {
	BaseModel
	TypeName    string `gorm:"type:varchar(100);unique;not null" json:"type_name"`
	Description string `gorm:"type:varchar(500)" json:"description"`
}
