package user

import (
	"fmt"
	"time"

	"prestamos-backend/internal/domain/apperr"
)

var (
	ErrNotFound         = fmt.Errorf("user %w", apperr.ErrNotFound)
	ErrInvalidRole      = fmt.Errorf("unknown role: %w", apperr.ErrInvalidArgument)
	ErrPermissionDenied = fmt.Errorf("admin role required: %w", apperr.ErrPermissionDenied)
)

type Role string

const (
	RoleNotVerified Role = "NOT_VERIFIED"
	RoleAdmin       Role = "ADMIN"
	RoleEditor      Role = "EDITOR"
	RoleOperator    Role = "OPERATOR"
	RoleReader      Role = "READER"
	RoleViewer      Role = "VIEWER"
)

func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleNotVerified, RoleAdmin, RoleEditor, RoleOperator, RoleReader, RoleViewer:
		return r, nil
	}
	return "", ErrInvalidRole
}

// Principal is the authenticated caller as asserted by the identity provider.
type Principal struct {
	UserID string
	Role   Role
}

func (p Principal) IsAdmin() bool { return p.Role == RoleAdmin }

// Table: users (one row per principal, written the first time it is seen)
type User struct {
	ID        string    `gorm:"column:id;size:64;primaryKey" json:"id"`
	Name      string    `gorm:"column:name;size:255" json:"name"`
	Email     string    `gorm:"column:email;size:255" json:"email"`
	Role      Role      `gorm:"column:role;size:16;not null" json:"role"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string { return "users" }
