package middlewares

import (
	"github.com/geocoder89/userhub/internal/domain/user"
	"github.com/geocoder89/userhub/internal/http/handlers"
	"github.com/gin-gonic/gin"
)

// RequireRole must run after RequireAuth.
func (m *AuthMiddleware) RequireRole(required user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := handlers.CurrentUser(c)

		if !ok {
			handlers.RespondUnAuthorized(c, "Missing identity context")
			return
		}

		if err := m.gate.RequireRole(u, required); err != nil {
			handlers.RespondForbidden(c, "Not enough permissions")
			return
		}
		c.Next()
	}
}
