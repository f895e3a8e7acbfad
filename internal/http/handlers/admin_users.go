package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/geocoder89/userhub/internal/config"
	"github.com/geocoder89/userhub/internal/domain/user"
	"github.com/gin-gonic/gin"
)

// AdminUsersHandler serves the /users/admin routes. The router guards them
// with the ADMIN role; targets are looked up by email directly.
type AdminUsersHandler struct {
	users UserStore
}

func NewAdminUsersHandler(users UserStore) *AdminUsersHandler {
	return &AdminUsersHandler{users: users}
}

// View returns every account as an email -> role map.
func (h *AdminUsersHandler) View(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(ctx.Request.Context(), 5*time.Second)
	defer cancel()

	all, err := h.users.List(cctx)

	if err != nil {
		respondStoreError(ctx, "admin_view", err)
		return
	}

	out := make(map[string]user.Role, len(all))
	for _, u := range all {
		out[u.Email] = u.Role
	}

	ctx.JSON(http.StatusOK, out)
}

func (h *AdminUsersHandler) UpdateRole(ctx *gin.Context) {
	var req user.AdminUpdateRoleRequest

	if !BindJSON(ctx, &req) {
		return
	}

	role, err := user.ParseRole(req.Role)

	if err != nil {
		RespondUnprocessable(ctx, err.Error())
		return
	}

	cctx, cancel := config.WithTimeout(ctx.Request.Context(), 3*time.Second)
	defer cancel()

	u, err := h.users.UpdateRole(cctx, req.Email, role)

	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			RespondBadRequest(ctx, "User does not exist", nil)
			return
		}

		respondStoreError(ctx, "admin_update_role", err)
		return
	}

	slog.Default().InfoContext(cctx, "user.role_changed", "user_id", u.ID, "role", u.Role)

	ctx.JSON(http.StatusOK, u)
}

func (h *AdminUsersHandler) Delete(ctx *gin.Context) {
	var req user.AdminDeleteRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(ctx.Request.Context(), 3*time.Second)
	defer cancel()

	err := h.users.DeleteByEmail(cctx, req.Email)

	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			RespondBadRequest(ctx, "User does not exist", nil)
			return
		}

		respondStoreError(ctx, "admin_delete", err)
		return
	}

	slog.Default().InfoContext(cctx, "user.deleted", "by", "admin")

	ctx.JSON(http.StatusOK, DetailResponse{Detail: "User deleted"})
}
