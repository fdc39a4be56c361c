package models

import "time"

type BaseModel struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SoftDelete is the shared recoverable-deletion capability. Entities that
// embed it are excluded from default repository queries once IsDeleted is
// set; restoring clears all three fields.
type SoftDelete struct {
	IsDeleted   bool       `gorm:"default:false;index" json:"is_deleted"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
	DeletedByID *uint      `json:"deleted_by_id,omitempty"`
}

// SoftDeletable marks entity types carrying the SoftDelete capability so the
// repository can apply the exclusion filter uniformly.
type SoftDeletable interface {
	SoftDeleted() bool
}

// SoftDeleted reports whether the entity is logically removed.
func (s *SoftDelete) SoftDeleted() bool {
	return s.IsDeleted
}

// MarkDeleted stamps the soft-delete fields with the acting operator.
func (s *SoftDelete) MarkDeleted(operatorID uint, at time.Time) {
	s.IsDeleted = true
	s.DeletedAt = &at
	s.DeletedByID = &operatorID
}

// ClearDeleted resets the soft-delete fields on restore.
func (s *SoftDelete) ClearDeleted() {
	s.IsDeleted = false
	s.DeletedAt = nil
	s.DeletedByID = nil
}
