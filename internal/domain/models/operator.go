package models

// OperatorRole represents the role of a system user
type OperatorRole string

const (
	RoleOperator OperatorRole = "operator"
	RoleAdmin    OperatorRole = "admin"
	RoleStaff    OperatorRole = "staff"
)

// ValidOperatorRole reports whether r is a known role.
func ValidOperatorRole(r OperatorRole) bool {
	switch r {
	case RoleOperator, RoleAdmin, RoleStaff:
		return true
	}
	return false
}

// Operator represents a system user. DeletedByID on the embedded SoftDelete
// points back at operators; the reference is resolved lazily by explicit
// lookup, never eagerly loaded.
type Operator struct {
	BaseModel
	SoftDelete
	UserName string       `gorm:"type:varchar(50);unique;not null" json:"user_name"`
	Password string       `gorm:"type:varchar(100);not null" json:"-"` // bcrypt hash, never exposed in JSON
	Name     string       `gorm:"type:varchar(100);not null" json:"name"`
	Role     OperatorRole `gorm:"type:varchar(20);default:'operator'" json:"role"`
	Email    *string      `gorm:"type:varchar(100);unique" json:"email,omitempty"`
}
