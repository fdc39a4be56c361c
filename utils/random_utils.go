package utils

import (
	"github.com/google/uuid"
)

// NewResetToken generates a unique one-time token for password resets.
func NewResetToken() string {
	return uuid.NewString()
}
