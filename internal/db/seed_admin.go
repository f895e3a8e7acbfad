package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/geocoder89/userhub/internal/config"
	"github.com/geocoder89/userhub/internal/domain/user"
	"github.com/geocoder89/userhub/internal/security"
)

type AdminStore interface {
	GetByEmail(ctx context.Context, email string) (user.User, error)
	Create(ctx context.Context, u user.User) (user.User, error)
}

// EnsureAdminUser creates the configured admin account when it is missing.
// An existing account with that email is left as it is, whatever its role.
// It reports whether an account was created.
func EnsureAdminUser(ctx context.Context, store AdminStore, hasher *security.Hasher, cfg config.Config) (bool, error) {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return false, nil
	}

	_, err := store.GetByEmail(ctx, cfg.AdminEmail)

	if err == nil {
		return false, nil
	}

	if !errors.Is(err, user.ErrNotFound) {
		return false, fmt.Errorf("seed admin: lookup: %w", err)
	}

	hash, err := hasher.Hash(cfg.AdminPassword)

	if err != nil {
		return false, fmt.Errorf("seed admin: hash: %w", err)
	}

	_, err = store.Create(ctx, user.User{
		Email:        cfg.AdminEmail,
		PasswordHash: hash,
		Role:         user.RoleAdmin,
		FirstName:    cfg.AdminFirstName,
		LastName:     cfg.AdminLastName,
	})

	// another replica may have seeded it first
	if errors.Is(err, user.ErrEmailTaken) {
		return false, nil
	}

	if err != nil {
		return false, fmt.Errorf("seed admin: create: %w", err)
	}

	return true, nil
}
