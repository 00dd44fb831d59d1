package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/soma-connects/onelga-local-services/pkg/auth"
	"github.com/soma-connects/onelga-local-services/pkg/domain"
)

func testIssuer(t *testing.T) *auth.TokenIssuer {
	t.Helper()
	issuer, err := auth.NewTokenIssuer(auth.TokenConfig{
		Secret: []byte("test-secret"),
		Issuer: "onelga-services",
		Expiry: "1h",
	})
	if err != nil {
		t.Fatalf("NewTokenIssuer failed: %v", err)
	}
	return issuer
}

func issueToken(t *testing.T, issuer *auth.TokenIssuer, role string) (uuid.UUID, string) {
	t.Helper()
	account := &domain.Account{
		ID:    uuid.New(),
		Email: "test@onelga.gov.ng",
		Role:  role,
	}
	token, err := issuer.Issue(account)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	return account.ID, token
}

func TestAuth_BearerHeader(t *testing.T) {
	issuer := testIssuer(t)
	accountID, token := issueToken(t, issuer, domain.RoleCitizen)

	var gotID uuid.UUID
	handler := Auth(issuer)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetAccountID(r.Context())
		if !ok {
			t.Error("account ID missing from context")
		}
		gotID = id
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if gotID != accountID {
		t.Errorf("account ID = %v, want %v", gotID, accountID)
	}
}

func TestAuth_CookieFallback(t *testing.T) {
	issuer := testIssuer(t)
	_, token := issueToken(t, issuer, domain.RoleCitizen)

	handler := Auth(issuer)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/test", nil)
	req.AddCookie(&http.Cookie{Name: "session_token", Value: token})
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestAuth_Rejections(t *testing.T) {
	issuer := testIssuer(t)

	handler := Auth(issuer)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name  string
		setup func(r *http.Request)
	}{
		{
			name:  "missing token",
			setup: func(r *http.Request) {},
		},
		{
			name: "garbage token",
			setup: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer not-a-token")
			},
		},
		{
			name: "wrong scheme",
			setup: func(r *http.Request) {
				r.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/test", nil)
			tt.setup(req)
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			if w.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	issuer := testIssuer(t)

	protected := Auth(issuer)(RequireAdmin()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	t.Run("admin allowed", func(t *testing.T) {
		_, token := issueToken(t, issuer, domain.RoleAdmin)
		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		protected.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
		}
	})

	t.Run("citizen rejected", func(t *testing.T) {
		_, token := issueToken(t, issuer, domain.RoleCitizen)
		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		protected.ServeHTTP(w, req)

		if w.Code != http.StatusForbidden {
			t.Errorf("status = %d, want %d", w.Code, http.StatusForbidden)
		}
	})
}
