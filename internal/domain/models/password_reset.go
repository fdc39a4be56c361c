package models

import "time"

// PasswordReset is a one-time token allowing an operator to set a new
// password. A token is spendable while unused, unrevoked and unexpired.
type PasswordReset struct {
	BaseModel
	Token       string     `gorm:"type:varchar(64);unique;not null" json:"token"`
	RequestedAt time.Time  `json:"requested_at"`
	ExpiresAt   time.Time  `json:"expires_at"`
	UsedAt      *time.Time `json:"used_at,omitempty"`
	IsRevoked   bool       `gorm:"default:false" json:"is_revoked"`
	OperatorID  uint       `json:"operator_id"`

	// Relations
	Operator *Operator `gorm:"foreignKey:OperatorID" json:"operator,omitempty"`
}

// Spendable reports whether the token can still be redeemed at t.
func (p *PasswordReset) Spendable(t time.Time) bool {
	return p.UsedAt == nil && !p.IsRevoked && t.Before(p.ExpiresAt)
}
