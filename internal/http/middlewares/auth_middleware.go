package middlewares

import (
	"context"
	"errors"
	"strings"

	"github.com/geocoder89/userhub/internal/actorctx"
	"github.com/geocoder89/userhub/internal/auth"
	"github.com/geocoder89/userhub/internal/domain/user"
	"github.com/geocoder89/userhub/internal/http/handlers"
	"github.com/gin-gonic/gin"
)

// Keep this small interface so tests can fake it easily.
type Authenticator interface {
	Authenticate(ctx context.Context, rawToken string) (user.User, error)
	RequireRole(u user.User, role user.Role) error
}

type AuthMiddleware struct {
	gate Authenticator
}

func NewAuthMiddleware(gate Authenticator) *AuthMiddleware {
	return &AuthMiddleware{gate: gate}
}

// RequireAuth resolves the bearer token to the live user record and stashes
// it on the context. Every failure answers 401 with the same body.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c.GetHeader("Authorization"))

		u, err := m.gate.Authenticate(c.Request.Context(), raw)
		if err != nil {
			if errors.Is(err, auth.ErrUnauthorized) {
				handlers.RespondUnAuthorized(c, "Could not validate credentials")
				return
			}

			_ = c.Error(err)
			handlers.RespondInternal(c, "Internal server error")
			return
		}

		c.Set(handlers.CtxUserKey, u)
		c.Request = c.Request.WithContext(actorctx.WithActor(c.Request.Context(), u.ID, u.Email))

		c.Next()
	}
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
