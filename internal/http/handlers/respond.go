package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type APIError struct {
	Detail    string      `json:"detail"`
	Code      string      `json:"code"`
	RequestID string      `json:"requestId,omitempty"`
	Details   interface{} `json:"details,omitempty"`
}

func requestIDFrom(ctx *gin.Context) string {
	v, ok := ctx.Get("request_id")

	if ok {
		s, ok := v.(string)
		if ok && s != "" {
			return s
		}
	}

	// fallback header
	return ctx.GetHeader("X-Request-Id")
}

func RespondError(ctx *gin.Context, status int, code, detail string, details interface{}) {
	ctx.AbortWithStatusJSON(status, APIError{
		Detail:    detail,
		Code:      code,
		RequestID: requestIDFrom(ctx),
		Details:   details,
	})
}

func RespondBadRequest(ctx *gin.Context, detail string, details interface{}) {
	RespondError(ctx, http.StatusBadRequest, "invalid_request", detail, details)
}

// RespondUnAuthorized always carries the bearer challenge.
func RespondUnAuthorized(ctx *gin.Context, detail string) {
	ctx.Header("WWW-Authenticate", "Bearer")
	RespondError(ctx, http.StatusUnauthorized, "unauthorized", detail, nil)
}

func RespondForbidden(ctx *gin.Context, detail string) {
	RespondError(ctx, http.StatusForbidden, "forbidden", detail, nil)
}

func RespondNotFound(ctx *gin.Context, detail string) {
	RespondError(ctx, http.StatusNotFound, "not_found", detail, nil)
}

func RespondConflict(ctx *gin.Context, code, detail string) {
	RespondError(ctx, http.StatusConflict, code, detail, nil)
}

func RespondUnprocessable(ctx *gin.Context, detail string) {
	RespondError(ctx, http.StatusUnprocessableEntity, "constraint_violation", detail, nil)
}

func RespondInternal(ctx *gin.Context, detail string) {
	RespondError(ctx, http.StatusInternalServerError, "internal_error", detail, nil)
}
