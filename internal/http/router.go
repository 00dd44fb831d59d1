package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/soma-connects/onelga-local-services/internal/config"
	adminfeature "github.com/soma-connects/onelga-local-services/internal/http/features/admin"
	applicationsfeature "github.com/soma-connects/onelga-local-services/internal/http/features/applications"
	authfeature "github.com/soma-connects/onelga-local-services/internal/http/features/auth"
	mefeature "github.com/soma-connects/onelga-local-services/internal/http/features/me"
	"github.com/soma-connects/onelga-local-services/internal/http/middleware"
	"github.com/soma-connects/onelga-local-services/internal/httputil"
	"github.com/soma-connects/onelga-local-services/internal/notification"
	"github.com/soma-connects/onelga-local-services/pkg/auth"
	"github.com/soma-connects/onelga-local-services/pkg/repository"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Logger           *slog.Logger
	AuthService      *auth.Service
	TokenIssuer      *auth.TokenIssuer
	EmailService     *notification.EmailService
	AccountsRepo     *repository.AccountsRepository
	ApplicationsRepo *repository.ApplicationsRepository
	AuditRepo        *repository.AuditRepository
	RateLimitConfig  config.RateLimitConfig
	SecurityHeaders  config.SecurityHeadersConfig
	MaxRequestBody   int64
}

// NewRouter creates a new HTTP router with all routes registered.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Recover(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger))
	r.Use(middleware.SecurityHeaders(cfg.SecurityHeaders))
	r.Use(middleware.RequestSizeLimit(cfg.MaxRequestBody))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Create rate limiters for different endpoint types
	rateLimiters := middleware.CreateRateLimiters(cfg.RateLimitConfig, cfg.Logger)

	// Authentication routes
	authHandler := authfeature.NewHandler(cfg.Logger, cfg.AuthService, cfg.TokenIssuer, cfg.EmailService)
	r.Group(func(r chi.Router) {
		r.Use(rateLimiters["auth"])
		r.Post("/api/auth/register", authHandler.Register)
		r.Post("/api/auth/login", authHandler.Login)
	})
	r.Post("/api/auth/logout", authHandler.Logout)
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(cfg.TokenIssuer))
		r.Use(rateLimiters["auth"])
		r.Post("/api/auth/change-password", authHandler.ChangePassword)
	})

	// Profile routes
	meHandler := mefeature.NewHandler(cfg.Logger, cfg.AccountsRepo)
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(cfg.TokenIssuer))
		r.Use(rateLimiters["api"])
		r.Get("/api/me", meHandler.GetMe)
		r.Patch("/api/me", meHandler.UpdateMe)
	})

	// Service application routes
	applicationsHandler := applicationsfeature.NewHandler(cfg.Logger, cfg.ApplicationsRepo)
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(cfg.TokenIssuer))
		r.Use(rateLimiters["api"])
		r.Post("/api/applications", applicationsHandler.Create)
		r.Get("/api/applications", applicationsHandler.List)
	})

	// Admin routes
	adminHandler := adminfeature.NewHandler(cfg.Logger, cfg.AccountsRepo, cfg.AuditRepo, cfg.EmailService)
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(cfg.TokenIssuer))
		r.Use(middleware.RequireAdmin())
		r.Use(rateLimiters["api"])
		r.Post("/api/admin/accounts/{id}/suspend", adminHandler.Suspend)
		r.Post("/api/admin/accounts/{id}/reactivate", adminHandler.Reactivate)
		r.Post("/api/admin/accounts/{id}/unlock", adminHandler.Unlock)
	})

	return r
}
