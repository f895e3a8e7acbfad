package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/geocoder89/userhub/internal/domain/user"
	"github.com/geocoder89/userhub/internal/http/handlers"
	"github.com/geocoder89/userhub/internal/repo/memory"
	"github.com/gin-gonic/gin"
)

func adminRouter(store handlers.UserStore) *gin.Engine {
	h := handlers.NewAdminUsersHandler(store)

	r := gin.New()
	r.GET("/users/admin/view", h.View)
	r.PUT("/users/admin/update", h.UpdateRole)
	r.DELETE("/users/admin/delete", h.Delete)
	return r
}

func TestAdminView(t *testing.T) {
	store := memory.NewUsersRepo()
	seed(t, store, "root@x.com", user.RoleAdmin)
	seed(t, store, "a@x.com", user.RoleMember)

	w := doJSON(t, adminRouter(store), http.MethodGet, "/users/admin/view", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body=%s", w.Code, w.Body.String())
	}

	got := decode[map[string]string](t, w)
	want := map[string]string{"root@x.com": "ADMIN", "a@x.com": "MEMBER"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for email, role := range want {
		if got[email] != role {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestAdminView_StoreFailure(t *testing.T) {
	store := &failingStore{UsersRepo: memory.NewUsersRepo(), err: context.DeadlineExceeded}

	w := doJSON(t, adminRouter(store), http.MethodGet, "/users/admin/view", "")
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, body=%s", w.Code, w.Body.String())
	}
}

func TestAdminUpdateRole(t *testing.T) {
	store := memory.NewUsersRepo()
	seed(t, store, "a@x.com", user.RoleMember)
	r := adminRouter(store)

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{name: "ok", body: `{"email":"a@x.com","role":"TECHNICIAN"}`, wantStatus: http.StatusOK},
		{name: "unknown target", body: `{"email":"ghost@x.com","role":"ADMIN"}`, wantStatus: http.StatusBadRequest},
		{name: "invalid role", body: `{"email":"a@x.com","role":"SUPERUSER"}`, wantStatus: http.StatusUnprocessableEntity},
		{name: "missing email", body: `{"role":"ADMIN"}`, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPut, "/users/admin/update", tt.body)
			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d, body=%s", w.Code, tt.wantStatus, w.Body.String())
			}
		})
	}

	got, _ := store.GetByEmail(context.Background(), "a@x.com")
	if got.Role != user.RoleTechnician {
		t.Fatalf("role = %s, want TECHNICIAN", got.Role)
	}
}

func TestAdminDelete(t *testing.T) {
	store := memory.NewUsersRepo()
	seed(t, store, "a@x.com", user.RoleMember)
	r := adminRouter(store)

	w := doJSON(t, r, http.MethodDelete, "/users/admin/delete", `{"email":"a@x.com"}`)
	if w.Code != http.StatusOK || decode[handlers.DetailResponse](t, w).Detail != "User deleted" {
		t.Fatalf("status = %d, body=%s", w.Code, w.Body.String())
	}

	if _, err := store.GetByEmail(context.Background(), "a@x.com"); !errors.Is(err, user.ErrNotFound) {
		t.Fatalf("user still present: %v", err)
	}

	w = doJSON(t, r, http.MethodDelete, "/users/admin/delete", `{"email":"a@x.com"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("second delete status = %d, body=%s", w.Code, w.Body.String())
	}
}
