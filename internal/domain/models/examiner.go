package models

import "time"

// Examiner represents an exam board member
type Examiner struct {
	BaseModel
	SoftDelete
	Name               string    `gorm:"type:varchar(100);not null" json:"name"`
	BirthDate          time.Time `json:"birth_date"`
	Email              string    `gorm:"type:varchar(100);unique;not null" json:"email"`
	Phone              string    `gorm:"type:varchar(20);unique;not null" json:"phone"`
	IdentityCardNumber string    `gorm:"type:varchar(20);unique;not null" json:"identity_card_number"`

	// Relations
	Boards []ExamBoard `gorm:"foreignKey:ExaminerID" json:"boards,omitempty"`
}
