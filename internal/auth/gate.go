package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/geocoder89/userhub/internal/domain/user"
	"github.com/geocoder89/userhub/internal/security"
)

// TokenDecoder is the slice of the token service the gate needs.
type TokenDecoder interface {
	Decode(token string) (*Claims, error)
}

type UserFinder interface {
	GetByEmail(ctx context.Context, email string) (user.User, error)
}

// Observer receives one call per authentication decision.
type Observer interface {
	ObserveAuth(op, outcome string)
}

type Gate struct {
	tokens   TokenDecoder
	users    UserFinder
	hasher   *security.Hasher
	log      *slog.Logger
	observer Observer

	dummyOnce sync.Once
	dummyHash string
}

type GateOption func(*Gate)

func WithObserver(o Observer) GateOption {
	return func(g *Gate) {
		g.observer = o
	}
}

func NewGate(tokens TokenDecoder, users UserFinder, hasher *security.Hasher, log *slog.Logger, opts ...GateOption) *Gate {
	if log == nil {
		log = slog.Default()
	}

	g := &Gate{
		tokens: tokens,
		users:  users,
		hasher: hasher,
		log:    log,
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Authenticate resolves a bearer token to the user it names, as that user
// exists in the store right now. Every token or lookup failure is reported
// as ErrUnauthorized; only store outages come back as other errors.
func (g *Gate) Authenticate(ctx context.Context, rawToken string) (user.User, error) {
	if rawToken == "" {
		g.reject(ctx, "token", "missing", nil)
		return user.User{}, ErrUnauthorized
	}

	claims, err := g.tokens.Decode(rawToken)

	if err != nil {
		g.reject(ctx, "token", reason(err), err)
		return user.User{}, ErrUnauthorized
	}

	email := claims.Subject

	if email == "" {
		g.reject(ctx, "token", "missing_subject", nil)
		return user.User{}, ErrUnauthorized
	}

	u, err := g.users.GetByEmail(ctx, email)

	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			// token outlived the account, or the email changed
			g.reject(ctx, "token", "unknown_subject", nil)
			return user.User{}, ErrUnauthorized
		}

		return user.User{}, fmt.Errorf("auth: resolve token subject: %w", err)
	}

	g.observe("token", "ok")

	return u, nil
}

func (g *Gate) RequireRole(u user.User, role user.Role) error {
	if u.Role != role {
		g.observe("role", "forbidden")
		return ErrForbidden
	}

	return nil
}

// AuthenticateByCredentials never says which of email or password was wrong.
func (g *Gate) AuthenticateByCredentials(ctx context.Context, email, password string) (user.User, error) {
	u, err := g.users.GetByEmail(ctx, email)

	if err != nil {
		if !errors.Is(err, user.ErrNotFound) {
			return user.User{}, fmt.Errorf("auth: lookup credentials: %w", err)
		}

		// burn the same bcrypt time as a real comparison
		g.hasher.Verify(password, g.dummy())
		g.observe("login", "bad_credentials")
		return user.User{}, ErrInvalidCredentials
	}

	if !g.hasher.Verify(password, u.PasswordHash) {
		g.observe("login", "bad_credentials")
		return user.User{}, ErrInvalidCredentials
	}

	g.observe("login", "ok")

	return u, nil
}

func (g *Gate) dummy() string {
	g.dummyOnce.Do(func() {
		h, err := g.hasher.Hash("userhub-timing-equaliser")
		if err == nil {
			g.dummyHash = h
		}
	})

	return g.dummyHash
}

func (g *Gate) reject(ctx context.Context, op, outcome string, err error) {
	attrs := []any{"op", op, "reason", outcome}
	if err != nil {
		attrs = append(attrs, "err", err)
	}

	g.log.DebugContext(ctx, "auth_rejected", attrs...)
	g.observe(op, outcome)
}

func (g *Gate) observe(op, outcome string) {
	if g.observer != nil {
		g.observer.ObserveAuth(op, outcome)
	}
}
