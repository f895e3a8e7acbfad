package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/geocoder89/userhub/internal/config"
	"github.com/geocoder89/userhub/internal/domain/user"
	"github.com/geocoder89/userhub/internal/security"
	"github.com/gin-gonic/gin"
)

type UsersHandler struct {
	users  UserStore
	hasher *security.Hasher
}

func NewUsersHandler(users UserStore, hasher *security.Hasher) *UsersHandler {
	return &UsersHandler{users: users, hasher: hasher}
}

type DetailResponse struct {
	Detail string `json:"detail"`
}

func (h *UsersHandler) Me(ctx *gin.Context) {
	u, ok := CurrentUser(ctx)
	if !ok {
		RespondUnAuthorized(ctx, "Not authenticated")
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, u)
}

// UpdateMe applies a partial update to the caller's own record. Omitted
// fields keep their stored values; only an ADMIN may change a role.
func (h *UsersHandler) UpdateMe(ctx *gin.Context) {
	cur, ok := CurrentUser(ctx)
	if !ok {
		RespondUnAuthorized(ctx, "Not authenticated")
		return
	}

	var req user.UpdateRequest

	if !BindJSON(ctx, &req) {
		return
	}

	patch := user.Patch{
		Email:       req.Email,
		Designation: req.Designation,
		Company:     req.Company,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
	}

	if req.Role != nil {
		role, err := user.ParseRole(*req.Role)
		if err != nil {
			RespondUnprocessable(ctx, err.Error())
			return
		}

		if role != cur.Role && !cur.IsAdmin() {
			RespondForbidden(ctx, "Only an ADMIN can change roles")
			return
		}

		patch.Role = &role
	}

	if req.Password != nil {
		if *req.Password == "" {
			RespondBadRequest(ctx, "Invalid request body", gin.H{"reason": "password must not be empty"})
			return
		}

		hash, err := h.hasher.Hash(*req.Password)
		if err != nil {
			RespondBadRequest(ctx, "Invalid password", nil)
			return
		}

		patch.PasswordHash = &hash
	}

	cctx, cancel := config.WithTimeout(ctx.Request.Context(), 3*time.Second)
	defer cancel()

	updated, err := h.users.Update(cctx, cur.ID, patch)

	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			// deleted between authentication and update
			RespondUnAuthorized(ctx, "Could not validate credentials")
			return
		}

		respondStoreError(ctx, "update_me", err)
		return
	}

	if updated.Email != cur.Email {
		slog.Default().InfoContext(cctx, "user.email_changed", "user_id", updated.ID)
	}

	ctx.JSON(http.StatusOK, updated)
}

func (h *UsersHandler) DeleteMe(ctx *gin.Context) {
	cur, ok := CurrentUser(ctx)
	if !ok {
		RespondUnAuthorized(ctx, "Not authenticated")
		return
	}

	cctx, cancel := config.WithTimeout(ctx.Request.Context(), 3*time.Second)
	defer cancel()

	err := h.users.DeleteByEmail(cctx, cur.Email)

	if err != nil && !errors.Is(err, user.ErrNotFound) {
		respondStoreError(ctx, "delete_me", err)
		return
	}

	slog.Default().InfoContext(cctx, "user.deleted", "user_id", cur.ID, "by", "self")

	ctx.JSON(http.StatusOK, DetailResponse{Detail: "User deleted"})
}
