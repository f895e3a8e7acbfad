package db_test

import (
	"context"
	"testing"

	"github.com/geocoder89/userhub/internal/config"
	"github.com/geocoder89/userhub/internal/db"
	"github.com/geocoder89/userhub/internal/domain/user"
	"github.com/geocoder89/userhub/internal/repo/memory"
	"github.com/geocoder89/userhub/internal/security"
	"golang.org/x/crypto/bcrypt"
)

func TestEnsureAdminUser(t *testing.T) {
	store := memory.NewUsersRepo()
	hasher := security.NewHasher(bcrypt.MinCost)
	cfg := config.Config{AdminEmail: "root@x.com", AdminPassword: "pw", AdminFirstName: "Root", AdminLastName: "Admin"}

	created, err := db.EnsureAdminUser(context.Background(), store, hasher, cfg)
	if err != nil || !created {
		t.Fatalf("first seed = %v, %v; want created", created, err)
	}

	u, err := store.GetByEmail(context.Background(), "root@x.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if u.Role != user.RoleAdmin || !hasher.Verify("pw", u.PasswordHash) {
		t.Fatalf("seeded admin wrong: %+v", u)
	}

	created, err = db.EnsureAdminUser(context.Background(), store, hasher, cfg)
	if err != nil || created {
		t.Fatalf("second seed = %v, %v; want no-op", created, err)
	}
}

func TestEnsureAdminUserSkipsWithoutCredentials(t *testing.T) {
	store := memory.NewUsersRepo()

	created, err := db.EnsureAdminUser(context.Background(), store, security.NewHasher(bcrypt.MinCost), config.Config{AdminEmail: "root@x.com"})
	if err != nil || created {
		t.Fatalf("seed = %v, %v; want skipped", created, err)
	}
}
