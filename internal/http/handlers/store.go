package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/geocoder89/userhub/internal/domain/user"
	"github.com/gin-gonic/gin"
)

// UserStore is the account directory as the handlers use it.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (user.User, error)
	List(ctx context.Context) ([]user.User, error)
	Create(ctx context.Context, u user.User) (user.User, error)
	Update(ctx context.Context, id string, p user.Patch) (user.User, error)
	UpdateRole(ctx context.Context, email string, role user.Role) (user.User, error)
	DeleteByEmail(ctx context.Context, email string) error
}

// CtxUserKey holds the authenticated user.User, set by the auth middleware.
const CtxUserKey = "auth.user"

func CurrentUser(ctx *gin.Context) (user.User, bool) {
	v, ok := ctx.Get(CtxUserKey)
	if !ok {
		return user.User{}, false
	}
	u, ok := v.(user.User)
	return u, ok
}

// respondStoreError maps directory errors onto the HTTP taxonomy.
func respondStoreError(ctx *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, user.ErrEmailTaken):
		RespondConflict(ctx, "email_taken", "Email already registered")
	case errors.Is(err, user.ErrInvalidRole):
		RespondUnprocessable(ctx, user.ErrInvalidRole.Error())
	case errors.Is(err, user.ErrConstraintViolation):
		RespondUnprocessable(ctx, "User record violates a store constraint")
	case errors.Is(err, user.ErrValidation):
		RespondBadRequest(ctx, "Invalid request body", gin.H{"reason": err.Error()})
	case errors.Is(err, user.ErrNotFound):
		RespondNotFound(ctx, "User not found")
	case errors.Is(err, context.DeadlineExceeded):
		slog.Default().WarnContext(ctx.Request.Context(), "store_timeout", "op", op, "err", err)
		RespondError(ctx, http.StatusServiceUnavailable, "unavailable", "Store unavailable", nil)
	default:
		slog.Default().ErrorContext(ctx.Request.Context(), "store_error", "op", op, "err", err)
		RespondInternal(ctx, "Internal server error")
	}
}
