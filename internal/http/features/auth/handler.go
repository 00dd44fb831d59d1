// Package auth exposes the authentication endpoints: registration, login,
// and password change.
package auth

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/soma-connects/onelga-local-services/internal/http/middleware"
	"github.com/soma-connects/onelga-local-services/internal/httputil"
	"github.com/soma-connects/onelga-local-services/internal/notification"
	"github.com/soma-connects/onelga-local-services/pkg/auth"
	"github.com/soma-connects/onelga-local-services/pkg/domain"
)

// Handler handles authentication endpoints.
type Handler struct {
	logger       *slog.Logger
	authService  *auth.Service
	tokenIssuer  *auth.TokenIssuer
	emailService *notification.EmailService
	cookieConfig httputil.CookieConfig
}

// NewHandler creates a new auth handler.
func NewHandler(
	logger *slog.Logger,
	authService *auth.Service,
	tokenIssuer *auth.TokenIssuer,
	emailService *notification.EmailService,
) *Handler {
	return &Handler{
		logger:       logger,
		authService:  authService,
		tokenIssuer:  tokenIssuer,
		emailService: emailService,
		cookieConfig: httputil.DefaultCookieConfig(),
	}
}

// RegisterRequest represents a registration request.
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SessionResponse carries the sanitized profile and session token.
type SessionResponse struct {
	User  domain.Profile `json:"user"`
	Token string         `json:"token"`
}

// Register handles account registration.
// POST /api/auth/register
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" {
		httputil.Error(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	account, err := h.authService.Register(r.Context(), req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAccountAlreadyExists):
			httputil.Error(w, http.StatusConflict, "An account with this email already exists")
		case errors.Is(err, domain.ErrInvalidEmail):
			httputil.Error(w, http.StatusBadRequest, "Invalid email address")
		case errors.Is(err, domain.ErrWeakPassword):
			httputil.Error(w, http.StatusBadRequest, err.Error())
		default:
			h.logger.Error("registration failed", "error", err)
			httputil.Error(w, http.StatusInternalServerError, "Registration failed")
		}
		return
	}

	token, err := h.tokenIssuer.Issue(account)
	if err != nil {
		h.logger.Error("token issuance failed", "error", err, "account_id", account.ID)
		httputil.Error(w, http.StatusInternalServerError, "Failed to issue session token")
		return
	}

	// Welcome email is fire-and-forget
	if h.emailService != nil {
		if err := h.emailService.SendWelcomeEmail(account.Email, account.FirstName); err != nil {
			h.logger.Error("failed to send welcome email", "error", err, "account_id", account.ID)
		}
	}

	h.writeSession(w, account, token, http.StatusCreated)
}

// Login handles account login with brute-force lockout.
// POST /api/auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" {
		httputil.Error(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	account, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			// Same message for unknown email and wrong password
			httputil.Error(w, http.StatusUnauthorized, "Invalid email or password")
		case errors.Is(err, domain.ErrAccountLocked):
			httputil.Error(w, http.StatusTooManyRequests, "Account is locked due to too many failed login attempts. Please try again in 15 minutes.")
		case errors.Is(err, domain.ErrAccountDeactivated):
			httputil.Error(w, http.StatusUnauthorized, "Account is deactivated. Please contact support.")
		case errors.Is(err, domain.ErrAccountSuspended):
			httputil.Error(w, http.StatusUnauthorized, "Account is suspended. Please contact support.")
		default:
			h.logger.Error("login failed", "error", err)
			httputil.Error(w, http.StatusInternalServerError, "Authentication failed")
		}
		return
	}

	token, err := h.tokenIssuer.Issue(account)
	if err != nil {
		h.logger.Error("token issuance failed", "error", err, "account_id", account.ID)
		httputil.Error(w, http.StatusInternalServerError, "Failed to issue session token")
		return
	}

	h.writeSession(w, account, token, http.StatusOK)
}

// Logout clears the web session cookie. Tokens are self-contained and not
// revocable server-side; bearer clients simply discard theirs.
// POST /api/auth/logout
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	httputil.ClearSessionCookie(w, h.cookieConfig)
	httputil.Success(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

// ChangePasswordRequest represents a password change request.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// ChangePassword handles password changes for the authenticated account.
// POST /api/auth/change-password
func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.GetAccountID(r.Context())
	if !ok {
		httputil.Error(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.CurrentPassword == "" || req.NewPassword == "" {
		httputil.Error(w, http.StatusBadRequest, "Current and new password are required")
		return
	}

	if err := h.authService.ChangePassword(r.Context(), accountID, req.CurrentPassword, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			httputil.Error(w, http.StatusUnauthorized, "Current password is incorrect")
		case errors.Is(err, domain.ErrWeakPassword):
			httputil.Error(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, domain.ErrAccountNotFound):
			httputil.Error(w, http.StatusUnauthorized, "Account not found")
		default:
			h.logger.Error("password change failed", "error", err, "account_id", accountID)
			httputil.Error(w, http.StatusInternalServerError, "Failed to change password")
		}
		return
	}

	h.logger.Info("password changed", "account_id", accountID)
	httputil.Success(w, http.StatusOK, map[string]string{"message": "Password changed successfully"})
}

// writeSession writes the session response and sets the web session cookie.
func (h *Handler) writeSession(w http.ResponseWriter, account *domain.Account, token string, status int) {
	if ttl, err := h.tokenIssuer.TTL(); err == nil {
		httputil.SetSessionCookie(w, token, ttl, h.cookieConfig)
	}

	httputil.Success(w, status, SessionResponse{
		User:  account.Profile(),
		Token: token,
	})
}
