// Package me exposes the authenticated account's profile endpoints.
package me

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/soma-connects/onelga-local-services/internal/http/middleware"
	"github.com/soma-connects/onelga-local-services/internal/httputil"
	"github.com/soma-connects/onelga-local-services/pkg/auth"
	"github.com/soma-connects/onelga-local-services/pkg/domain"
	"github.com/soma-connects/onelga-local-services/pkg/repository"
)

// Handler handles profile endpoints for the authenticated account.
type Handler struct {
	logger   *slog.Logger
	accounts *repository.AccountsRepository
}

// NewHandler creates a new profile handler.
func NewHandler(logger *slog.Logger, accounts *repository.AccountsRepository) *Handler {
	return &Handler{
		logger:   logger,
		accounts: accounts,
	}
}

// GetMe returns the caller's sanitized profile.
// GET /api/me
func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.GetAccountID(r.Context())
	if !ok {
		httputil.Error(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	account, err := h.accounts.GetByID(r.Context(), accountID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			httputil.Error(w, http.StatusNotFound, "Account not found")
			return
		}
		h.logger.Error("profile lookup failed", "error", err, "account_id", accountID)
		httputil.Error(w, http.StatusInternalServerError, "Failed to load profile")
		return
	}

	httputil.Success(w, http.StatusOK, account.Profile())
}

// UpdateMeRequest represents a profile update.
type UpdateMeRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// UpdateMe updates the caller's name fields.
// PATCH /api/me
func (h *Handler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.GetAccountID(r.Context())
	if !ok {
		httputil.Error(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req UpdateMeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	firstName := auth.SanitizeName(req.FirstName)
	lastName := auth.SanitizeName(req.LastName)
	if firstName == "" && lastName == "" {
		httputil.Error(w, http.StatusBadRequest, "Nothing to update")
		return
	}

	if err := h.accounts.UpdateProfile(r.Context(), accountID, firstName, lastName); err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			httputil.Error(w, http.StatusNotFound, "Account not found")
			return
		}
		h.logger.Error("profile update failed", "error", err, "account_id", accountID)
		httputil.Error(w, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	account, err := h.accounts.GetByID(r.Context(), accountID)
	if err != nil {
		h.logger.Error("profile reload failed", "error", err, "account_id", accountID)
		httputil.Error(w, http.StatusInternalServerError, "Failed to load profile")
		return
	}

	httputil.Success(w, http.StatusOK, account.Profile())
}
