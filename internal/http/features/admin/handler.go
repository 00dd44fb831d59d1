// Package admin exposes the administrative account-management endpoints.
package admin

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/soma-connects/onelga-local-services/internal/http/middleware"
	"github.com/soma-connects/onelga-local-services/internal/httputil"
	"github.com/soma-connects/onelga-local-services/internal/notification"
	"github.com/soma-connects/onelga-local-services/pkg/domain"
	"github.com/soma-connects/onelga-local-services/pkg/repository"
)

// Handler handles admin endpoints. All routes require the admin role.
type Handler struct {
	logger       *slog.Logger
	accounts     *repository.AccountsRepository
	audit        *repository.AuditRepository
	emailService *notification.EmailService
}

// NewHandler creates a new admin handler.
func NewHandler(
	logger *slog.Logger,
	accounts *repository.AccountsRepository,
	audit *repository.AuditRepository,
	emailService *notification.EmailService,
) *Handler {
	return &Handler{
		logger:       logger,
		accounts:     accounts,
		audit:        audit,
		emailService: emailService,
	}
}

// Suspend suspends an account. The account keeps its lockout and counter
// state; suspension is evaluated after the lockout gate on login.
// POST /api/admin/accounts/{id}/suspend
func (h *Handler) Suspend(w http.ResponseWriter, r *http.Request) {
	accountID, ok := h.targetAccountID(w, r)
	if !ok {
		return
	}

	if err := h.accounts.UpdateStatus(r.Context(), accountID, domain.AccountStatusSuspended, true); err != nil {
		h.writeUpdateError(w, err, accountID, "suspend")
		return
	}

	h.recordAudit(r, accountID, domain.AuditAccountSuspended, "account suspended by administrator")
	h.notify(r.Context(), accountID, func(email string) error {
		return h.emailService.SendAccountSuspendedEmail(email)
	})

	httputil.Success(w, http.StatusOK, map[string]string{"message": "Account suspended"})
}

// Reactivate returns a suspended account to active status.
// POST /api/admin/accounts/{id}/reactivate
func (h *Handler) Reactivate(w http.ResponseWriter, r *http.Request) {
	accountID, ok := h.targetAccountID(w, r)
	if !ok {
		return
	}

	if err := h.accounts.UpdateStatus(r.Context(), accountID, domain.AccountStatusActive, true); err != nil {
		h.writeUpdateError(w, err, accountID, "reactivate")
		return
	}

	h.recordAudit(r, accountID, domain.AuditAccountReactivated, "account reactivated by administrator")
	h.notify(r.Context(), accountID, func(email string) error {
		return h.emailService.SendAccountReactivatedEmail(email)
	})

	httputil.Success(w, http.StatusOK, map[string]string{"message": "Account reactivated"})
}

// Unlock clears an account's lockout and failure counter ahead of the expiry.
// POST /api/admin/accounts/{id}/unlock
func (h *Handler) Unlock(w http.ResponseWriter, r *http.Request) {
	accountID, ok := h.targetAccountID(w, r)
	if !ok {
		return
	}

	if err := h.accounts.ClearLockout(r.Context(), accountID); err != nil {
		h.writeUpdateError(w, err, accountID, "unlock")
		return
	}

	h.recordAudit(r, accountID, domain.AuditAccountUnlocked, "lockout cleared by administrator")
	h.notify(r.Context(), accountID, func(email string) error {
		return h.emailService.SendAccountUnlockedEmail(email)
	})

	httputil.Success(w, http.StatusOK, map[string]string{"message": "Account unlocked"})
}

func (h *Handler) targetAccountID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	accountID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, "Invalid account ID")
		return uuid.Nil, false
	}
	return accountID, true
}

func (h *Handler) writeUpdateError(w http.ResponseWriter, err error, accountID uuid.UUID, action string) {
	if errors.Is(err, domain.ErrAccountNotFound) {
		httputil.Error(w, http.StatusNotFound, "Account not found")
		return
	}
	h.logger.Error("admin account update failed", "error", err, "account_id", accountID, "action", action)
	httputil.Error(w, http.StatusInternalServerError, "Failed to update account")
}

// recordAudit appends an audit entry. Audit failures are logged, never
// propagated to the caller.
func (h *Handler) recordAudit(r *http.Request, accountID uuid.UUID, action, detail string) {
	actorID, _ := middleware.GetAccountID(r.Context())
	entry := &domain.AuditEntry{
		ID:        uuid.New(),
		ActorID:   actorID,
		AccountID: accountID,
		Action:    action,
		Detail:    detail,
		CreatedAt: time.Now(),
	}
	if err := h.audit.Insert(r.Context(), entry); err != nil {
		h.logger.Error("audit write failed", "error", err, "action", action, "account_id", accountID)
	}
}

// notify looks up the account email and sends a notification. Email failures
// are logged, never propagated.
func (h *Handler) notify(ctx context.Context, accountID uuid.UUID, send func(email string) error) {
	if h.emailService == nil {
		return
	}
	account, err := h.accounts.GetByID(ctx, accountID)
	if err != nil {
		h.logger.Error("notification lookup failed", "error", err, "account_id", accountID)
		return
	}
	if err := send(account.Email); err != nil {
		h.logger.Error("notification send failed", "error", err, "account_id", accountID)
	}
}
