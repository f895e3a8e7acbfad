package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/geocoder89/userhub/internal/auth"
	"github.com/geocoder89/userhub/internal/config"
	"github.com/geocoder89/userhub/internal/domain/user"
	"github.com/geocoder89/userhub/internal/security"
	"github.com/gin-gonic/gin"
)

type CredentialChecker interface {
	AuthenticateByCredentials(ctx context.Context, email, password string) (user.User, error)
}

type TokenIssuer interface {
	Issue(subject string) (string, time.Time, error)
}

type AuthHandler struct {
	users                  UserStore
	creds                  CredentialChecker
	tokens                 TokenIssuer
	hasher                 *security.Hasher
	allowAdminRegistration bool
}

func NewAuthHandler(users UserStore, creds CredentialChecker, tokens TokenIssuer, hasher *security.Hasher, cfg config.Config) *AuthHandler {
	return &AuthHandler{
		users:                  users,
		creds:                  creds,
		tokens:                 tokens,
		hasher:                 hasher,
		allowAdminRegistration: cfg.AllowAdminRegistration,
	}
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func (h *AuthHandler) Register(ctx *gin.Context) {
	var req user.RegisterRequest

	if !BindJSON(ctx, &req) {
		return
	}

	role, err := user.ParseRole(req.Role)

	if err != nil {
		RespondUnprocessable(ctx, err.Error())
		return
	}

	if role == user.RoleAdmin && !h.allowAdminRegistration {
		RespondForbidden(ctx, "ADMIN accounts cannot self-register")
		return
	}

	hash, err := h.hasher.Hash(req.Password)

	if err != nil {
		RespondBadRequest(ctx, "Invalid password", nil)
		return
	}

	cctx, cancel := config.WithTimeout(ctx.Request.Context(), 3*time.Second)
	defer cancel()

	u, err := h.users.Create(cctx, user.User{
		Email:        req.Email,
		PasswordHash: hash,
		Role:         role,
		Designation:  req.Designation,
		Company:      req.Company,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
	})

	if err != nil {
		respondStoreError(ctx, "register", err)
		return
	}

	slog.Default().InfoContext(cctx, "user.registered", "user_id", u.ID, "role", u.Role)

	ctx.JSON(http.StatusCreated, u)
}

// Login takes an OAuth2 password-style form: username carries the email.
func (h *AuthHandler) Login(ctx *gin.Context) {
	var req user.LoginRequest

	if !BindForm(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(ctx.Request.Context(), 3*time.Second)
	defer cancel()

	u, err := h.creds.AuthenticateByCredentials(cctx, req.Username, req.Password)

	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			RespondBadRequest(ctx, "Incorrect email or password", nil)
			return
		}

		respondStoreError(ctx, "login", err)
		return
	}

	token, _, err := h.tokens.Issue(u.Email)

	if err != nil {
		slog.Default().ErrorContext(cctx, "token_issue_failed", "err", err)
		RespondInternal(ctx, "Could not generate access token")
		return
	}

	ctx.Header("Cache-Control", "no-store")
	ctx.JSON(http.StatusOK, TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}
