package models

import (
	"time"
)

// ExamStatus represents the lifecycle status of an exam
type ExamStatus string

const (
	ExamStatusPlanned   ExamStatus = "planned"
	ExamStatusActive    ExamStatus = "active"
	ExamStatusPostponed ExamStatus = "postponed"
	ExamStatusCompleted ExamStatus = "completed"
)

// ValidExamStatus reports whether s is one of the known lifecycle states.
func ValidExamStatus(s ExamStatus) bool {
	switch s {
	case ExamStatusPlanned, ExamStatusActive, ExamStatusPostponed, ExamStatusCompleted:
		return true
	}
	return false
}

// Exam represents a scheduled examination
type Exam struct {
	BaseModel
	SoftDelete
	Name          string     `gorm:"type:varchar(200);not null" json:"name"`
	Code          string     `gorm:"type:varchar(50);unique;not null" json:"code"` // unique business code
	Date          time.Time  `json:"date"`
	Status        ExamStatus `gorm:"type:varchar(20);default:'planned'" json:"status"`
	ProfessionID  uint       `json:"profession_id"`
	InstitutionID uint       `json:"institution_id"`
	ExamTypeID    uint       `json:"exam_type_id"`
	OperatorID    uint       `json:"operator_id"` // owning operator

	// Relations
	Profession  *Profession  `gorm:"foreignKey:ProfessionID" json:"profession,omitempty"`
	Institution *Institution `gorm:"foreignKey:InstitutionID" json:"institution,omitempty"`
	ExamType    *ExamType    `gorm:"foreignKey:ExamTypeID" json:"exam_type,omitempty"`
	Operator    *Operator    `gorm:"foreignKey:OperatorID" json:"operator,omitempty"`
	Boards      []ExamBoard  `gorm:"foreignKey:ExamID" json:"boards,omitempty"`
}
