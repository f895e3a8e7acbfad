package user

import (
	"errors"
	"strings"
)

// Patch is a partial update. A nil field is absent and leaves the stored
// value untouched; a non-nil field is copied verbatim.
type Patch struct {
	Email        *string
	PasswordHash *string
	Role         *Role
	Designation  *string
	Company      *string
	FirstName    *string
	LastName     *string
}

func (p Patch) IsEmpty() bool {
	return p.Email == nil &&
		p.PasswordHash == nil &&
		p.Role == nil &&
		p.Designation == nil &&
		p.Company == nil &&
		p.FirstName == nil &&
		p.LastName == nil
}

// Validate rejects present fields that would break a stored user's invariants.
func (p Patch) Validate() error {
	blank := func(s *string) bool { return s != nil && strings.TrimSpace(*s) == "" }

	switch {
	case blank(p.Email):
		return errors.Join(ErrValidation, errors.New("email must not be empty"))
	case blank(p.PasswordHash):
		return errors.Join(ErrValidation, errors.New("password must not be empty"))
	case blank(p.FirstName):
		return errors.Join(ErrValidation, errors.New("first_name must not be empty"))
	case blank(p.LastName):
		return errors.Join(ErrValidation, errors.New("last_name must not be empty"))
	case p.Role != nil && !p.Role.IsValid():
		return ErrInvalidRole
	}
	return nil
}

func (p Patch) Apply(u *User) {
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.PasswordHash != nil {
		u.PasswordHash = *p.PasswordHash
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.Designation != nil {
		u.Designation = *p.Designation
	}
	if p.Company != nil {
		u.Company = *p.Company
	}
	if p.FirstName != nil {
		u.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		u.LastName = *p.LastName
	}
}
