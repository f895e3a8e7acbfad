package auth

import "errors"

// Token decode failures. These stay inside the service for logging and
// metrics; the gate collapses all of them to ErrUnauthorized.
var (
	ErrTokenExpired   = errors.New("auth: token expired")
	ErrTokenSignature = errors.New("auth: token signature invalid")
	ErrTokenMalformed = errors.New("auth: token malformed")
	ErrTokenInvalid   = errors.New("auth: token invalid")
)

// Caller-facing outcomes.
var (
	ErrUnauthorized       = errors.New("auth: invalid credentials")
	ErrForbidden          = errors.New("auth: not authorized for this action")
	ErrInvalidCredentials = errors.New("auth: incorrect email or password")
)

// reason maps a decode error to a short label for logs and metrics.
func reason(err error) string {
	switch {
	case errors.Is(err, ErrTokenExpired):
		return "expired"
	case errors.Is(err, ErrTokenSignature):
		return "signature"
	case errors.Is(err, ErrTokenMalformed):
		return "malformed"
	default:
		return "invalid"
	}
}
