package http

import (
	"context"
	"log/slog"

	"github.com/geocoder89/userhub/internal/auth"
	"github.com/geocoder89/userhub/internal/config"
	"github.com/geocoder89/userhub/internal/domain/user"
	"github.com/geocoder89/userhub/internal/http/handlers"
	"github.com/geocoder89/userhub/internal/http/middlewares"
	"github.com/geocoder89/userhub/internal/observability"
	"github.com/geocoder89/userhub/internal/security"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// Store is the account directory plus the readiness probe.
type Store interface {
	handlers.UserStore
	Ping(ctx context.Context) error
}

type Deps struct {
	Config config.Config
	Users  Store
	Hasher *security.Hasher
	Tokens *auth.Manager
	// Prom is optional; without it there are no metrics and no /metrics route.
	Prom *observability.Prom
}

func NewRouter(log *slog.Logger, deps Deps) *gin.Engine {
	cfg := deps.Config

	if cfg.Env != "dev" && cfg.Env != "test" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// middleware

	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware(cfg.ServiceName))
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger(log))
	if deps.Prom != nil {
		r.Use(deps.Prom.GinHandleMiddleware())
	}
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(cfg.CORSAllowedOrigins))
	r.Use(middlewares.MaxBodyBytes(cfg.MaxBodyBytes))

	var gateOpts []auth.GateOption
	if deps.Prom != nil {
		gateOpts = append(gateOpts, auth.WithObserver(deps.Prom))
	}
	gate := auth.NewGate(deps.Tokens, deps.Users, deps.Hasher, log, gateOpts...)
	authMW := middlewares.NewAuthMiddleware(gate)

	// health
	h := handlers.NewHealthHandler(deps.Users.Ping)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)

	if deps.Prom != nil {
		r.GET("/metrics", gin.WrapH(deps.Prom.Handler()))
	}

	authHandler := handlers.NewAuthHandler(deps.Users, gate, deps.Tokens, deps.Hasher, cfg)
	usersHandler := handlers.NewUsersHandler(deps.Users, deps.Hasher)
	adminHandler := handlers.NewAdminUsersHandler(deps.Users)

	r.POST("/register", middlewares.RequireJSON(), authHandler.Register)
	r.POST("/login", authHandler.Login)

	users := r.Group("/users", authMW.RequireAuth(), middlewares.RequireJSON())
	{
		users.GET("/me", usersHandler.Me)
		users.PUT("/me", usersHandler.UpdateMe)
		users.DELETE("/me", usersHandler.DeleteMe)

		admin := users.Group("/admin", authMW.RequireRole(user.RoleAdmin))
		admin.GET("/view", adminHandler.View)
		admin.PUT("/update", adminHandler.UpdateRole)
		admin.DELETE("/delete", adminHandler.Delete)
	}

	return r
}
