package user

import (
	"errors"
	"strings"
	"time"
)

type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleMember     Role = "MEMBER"
	RoleTechnician Role = "TECHNICIAN"
)

var (
	ErrNotFound            = errors.New("user not found")
	ErrEmailTaken          = errors.New("email already registered")
	ErrInvalidRole         = errors.New("role can only be 'ADMIN', 'MEMBER' or 'TECHNICIAN'")
	ErrConstraintViolation = errors.New("user constraint violation")
	ErrValidation          = errors.New("invalid user fields")
)

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleMember, RoleTechnician:
		return true
	}
	return false
}

// ParseRole matches exactly; "admin" is not a role.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.IsValid() {
		return "", ErrInvalidRole
	}
	return r, nil
}

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // never expose hash in JSON
	Role         Role      `json:"role"`
	Designation  string    `json:"designation"`
	Company      string    `json:"company"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Validate checks the fields every stored user must carry.
func (u User) Validate() error {
	switch {
	case u.Email == "":
		return errors.Join(ErrValidation, errors.New("email is required"))
	case u.PasswordHash == "":
		return errors.Join(ErrValidation, errors.New("password hash is required"))
	case strings.TrimSpace(u.FirstName) == "":
		return errors.Join(ErrValidation, errors.New("first_name is required"))
	case strings.TrimSpace(u.LastName) == "":
		return errors.Join(ErrValidation, errors.New("last_name is required"))
	case !u.Role.IsValid():
		return ErrInvalidRole
	}
	return nil
}
