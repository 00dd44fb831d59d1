package admin

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/soma-connects/onelga-local-services/internal/http/middleware"
	"github.com/soma-connects/onelga-local-services/pkg/repository"
)

func newTestHandler(t *testing.T) (*Handler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewHandler(logger, repository.NewAccountsRepository(db), repository.NewAuditRepository(db), nil), mock
}

func adminRequest(method, target string, actorID uuid.UUID, accountID uuid.UUID) *http.Request {
	req := httptest.NewRequest(method, target, nil)

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", accountID.String())
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	ctx = context.WithValue(ctx, middleware.AccountIDKey, actorID)

	return req.WithContext(ctx)
}

func TestSuspend(t *testing.T) {
	h, mock := newTestHandler(t)
	actorID := uuid.New()
	accountID := uuid.New()

	mock.ExpectExec(`UPDATE accounts`).
		WithArgs(accountID, "suspended", true).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO audit_log`).
		WithArgs(sqlmock.AnyArg(), actorID, accountID, "account.suspended", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	req := adminRequest("POST", "/api/admin/accounts/"+accountID.String()+"/suspend", actorID, accountID)
	w := httptest.NewRecorder()
	h.Suspend(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body %s", w.Code, http.StatusOK, w.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestUnlock(t *testing.T) {
	h, mock := newTestHandler(t)
	actorID := uuid.New()
	accountID := uuid.New()

	mock.ExpectExec(`UPDATE accounts`).
		WithArgs(accountID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO audit_log`).
		WithArgs(sqlmock.AnyArg(), actorID, accountID, "account.unlocked", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	req := adminRequest("POST", "/api/admin/accounts/"+accountID.String()+"/unlock", actorID, accountID)
	w := httptest.NewRecorder()
	h.Unlock(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body %s", w.Code, http.StatusOK, w.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestUnlock_AuditFailureIsNotPropagated(t *testing.T) {
	h, mock := newTestHandler(t)
	actorID := uuid.New()
	accountID := uuid.New()

	mock.ExpectExec(`UPDATE accounts`).
		WithArgs(accountID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO audit_log`).
		WillReturnError(context.DeadlineExceeded)

	req := adminRequest("POST", "/api/admin/accounts/"+accountID.String()+"/unlock", actorID, accountID)
	w := httptest.NewRecorder()
	h.Unlock(w, req)

	// The admin action itself succeeded; a failed audit write is logged only.
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body %s", w.Code, http.StatusOK, w.Body.String())
	}
}

func TestSuspend_UnknownAccount(t *testing.T) {
	h, mock := newTestHandler(t)
	actorID := uuid.New()
	accountID := uuid.New()

	mock.ExpectExec(`UPDATE accounts`).
		WithArgs(accountID, "suspended", true).
		WillReturnResult(sqlmock.NewResult(0, 0))

	req := adminRequest("POST", "/api/admin/accounts/"+accountID.String()+"/suspend", actorID, accountID)
	w := httptest.NewRecorder()
	h.Suspend(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d, body %s", w.Code, http.StatusNotFound, w.Body.String())
	}
}

func TestSuspend_InvalidID(t *testing.T) {
	h, _ := newTestHandler(t)

	req := httptest.NewRequest("POST", "/api/admin/accounts/not-a-uuid/suspend", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", "not-a-uuid")
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	ctx = context.WithValue(ctx, middleware.AccountIDKey, uuid.New())

	w := httptest.NewRecorder()
	h.Suspend(w, req.WithContext(ctx))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}
