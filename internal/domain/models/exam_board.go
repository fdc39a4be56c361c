package models

import "time"

// ExamBoard is the role assignment joining an examiner to an exam. The
// primary key is the (exam, examiner) pair, so at most one assignment row
// exists per pair at a time. Rows are cascade-removed by the database when
// their exam or examiner is hard-deleted.
type ExamBoard struct {
	ExamID     uint      `gorm:"primaryKey" json:"exam_id"`
	ExaminerID uint      `gorm:"primaryKey" json:"examiner_id"`
	Role       string    `gorm:"type:varchar(50);not null" json:"role"` // e.g. chief, member, notary
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	SoftDelete

	// Relations
	Exam     *Exam     `gorm:"foreignKey:ExamID;constraint:OnDelete:CASCADE" json:"exam,omitempty"`
	Examiner *Examiner `gorm:"foreignKey:ExaminerID;constraint:OnDelete:CASCADE" json:"examiner,omitempty"`
}
