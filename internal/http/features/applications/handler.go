// Package applications exposes the service-application endpoints.
package applications

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/soma-connects/onelga-local-services/internal/http/middleware"
	"github.com/soma-connects/onelga-local-services/internal/httputil"
	"github.com/soma-connects/onelga-local-services/pkg/domain"
	"github.com/soma-connects/onelga-local-services/pkg/refnum"
	"github.com/soma-connects/onelga-local-services/pkg/repository"
)

// Handler handles application endpoints.
type Handler struct {
	logger       *slog.Logger
	applications *repository.ApplicationsRepository
}

// NewHandler creates a new applications handler.
func NewHandler(logger *slog.Logger, applications *repository.ApplicationsRepository) *Handler {
	return &Handler{
		logger:       logger,
		applications: applications,
	}
}

// CreateRequest represents a new service application.
type CreateRequest struct {
	Type  domain.ApplicationType `json:"type"`
	Notes string                 `json:"notes"`
}

// Create submits a new application with a freshly allocated reference number.
// POST /api/applications
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.GetAccountID(r.Context())
	if !ok {
		httputil.Error(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if !req.Type.Valid() {
		httputil.Error(w, http.StatusBadRequest, "Unknown application type")
		return
	}

	ref, err := refnum.GenerateUnique(r.Context(), req.Type.ReferencePrefix(), h.applications.ExistsByReference)
	if err != nil {
		h.logger.Error("reference number allocation failed", "error", err, "type", req.Type)
		httputil.Error(w, http.StatusInternalServerError, "Failed to generate application reference")
		return
	}

	now := time.Now()
	app := &domain.Application{
		ID:              uuid.New(),
		AccountID:       accountID,
		Type:            req.Type,
		ReferenceNumber: ref,
		Status:          domain.ApplicationStatusPending,
		Notes:           req.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := h.applications.Create(r.Context(), app); err != nil {
		h.logger.Error("application creation failed", "error", err, "account_id", accountID)
		httputil.Error(w, http.StatusInternalServerError, "Failed to submit application")
		return
	}

	h.logger.Info("application submitted",
		"account_id", accountID,
		"type", app.Type,
		"reference", app.ReferenceNumber,
	)
	httputil.Success(w, http.StatusCreated, app)
}

// List returns the caller's applications, newest first.
// GET /api/applications
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.GetAccountID(r.Context())
	if !ok {
		httputil.Error(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	apps, err := h.applications.ListByAccount(r.Context(), accountID)
	if err != nil {
		h.logger.Error("application list failed", "error", err, "account_id", accountID)
		httputil.Error(w, http.StatusInternalServerError, "Failed to list applications")
		return
	}
	if apps == nil {
		apps = []*domain.Application{}
	}

	httputil.Success(w, http.StatusOK, apps)
}
