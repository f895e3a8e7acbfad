package middlewares

import (
	"mime"
	"net/http"

	"github.com/geocoder89/userhub/internal/http/handlers"
	"github.com/gin-gonic/gin"
)

// RequireJSON rejects bodies that are not application/json on write methods.
// DELETE is included since the admin delete route carries a JSON body.
func RequireJSON() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
			// a DELETE without a declared length (chunked) may still be bodiless
			if c.Request.Method == http.MethodDelete && c.Request.ContentLength <= 0 {
				break
			}

			// allow "application/json; charset=utf-8"
			mt, _, err := mime.ParseMediaType(c.GetHeader("Content-Type"))
			if err != nil || mt != "application/json" {
				handlers.RespondError(c, http.StatusUnsupportedMediaType, "unsupported_media_type", "Content-Type must be application/json", nil)
				return
			}
		}
		c.Next()
	}
}
