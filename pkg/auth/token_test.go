package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/soma-connects/onelga-local-services/pkg/domain"
)

func testAccount() *domain.Account {
	return &domain.Account{
		ID:     uuid.New(),
		Email:  "citizen@onelga.gov.ng",
		Role:   "CITIZEN",
		Status: domain.AccountStatusActive,
	}
}

func TestNewTokenIssuer_RequiresSecret(t *testing.T) {
	_, err := NewTokenIssuer(TokenConfig{Secret: nil})
	if err == nil {
		t.Error("NewTokenIssuer should fail without a signing secret")
	}

	issuer, err := NewTokenIssuer(TokenConfig{Secret: []byte("test-secret")})
	if err != nil {
		t.Fatalf("NewTokenIssuer failed: %v", err)
	}
	if issuer == nil {
		t.Fatal("issuer should not be nil")
	}
}

func TestTokenIssuer_IssueAndValidate(t *testing.T) {
	issuer, err := NewTokenIssuer(TokenConfig{
		Secret: []byte("test-secret"),
		Issuer: "onelga-services",
		Expiry: "7d",
	})
	if err != nil {
		t.Fatalf("NewTokenIssuer failed: %v", err)
	}

	account := testAccount()
	token, err := issuer.Issue(account)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	claims, err := issuer.Validate(token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}

	if claims.Subject != account.ID.String() {
		t.Errorf("Subject = %q, want %q", claims.Subject, account.ID)
	}
	if claims.Role != "citizen" {
		t.Errorf("Role = %q, want lower-cased %q", claims.Role, "citizen")
	}
	if claims.Issuer != "onelga-services" {
		t.Errorf("Issuer = %q, want %q", claims.Issuer, "onelga-services")
	}

	id, err := issuer.AccountIDFromToken(token)
	if err != nil {
		t.Fatalf("AccountIDFromToken failed: %v", err)
	}
	if id != account.ID {
		t.Errorf("AccountIDFromToken = %v, want %v", id, account.ID)
	}
}

func TestTokenIssuer_UnrecognizedExpiryIsError(t *testing.T) {
	issuer, err := NewTokenIssuer(TokenConfig{
		Secret: []byte("test-secret"),
		Expiry: "fortnight",
	})
	if err != nil {
		t.Fatalf("NewTokenIssuer failed: %v", err)
	}

	if _, err := issuer.Issue(testAccount()); err == nil {
		t.Error("Issue should fail for an unrecognized expiry, not silently default")
	}
}

func TestTokenIssuer_RejectsWrongSecret(t *testing.T) {
	a, _ := NewTokenIssuer(TokenConfig{Secret: []byte("secret-a"), Expiry: "1h"})
	b, _ := NewTokenIssuer(TokenConfig{Secret: []byte("secret-b"), Expiry: "1h"})

	token, err := a.Issue(testAccount())
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if _, err := b.Validate(token); err == nil {
		t.Error("Validate should reject a token signed with a different secret")
	}
}

func TestParseExpiry(t *testing.T) {
	tests := []struct {
		expiry  string
		want    time.Duration
		wantErr bool
	}{
		{expiry: "30s", want: 30 * time.Second},
		{expiry: "15m", want: 15 * time.Minute},
		{expiry: "24h", want: 24 * time.Hour},
		{expiry: "7d", want: 7 * 24 * time.Hour},
		{expiry: "1d", want: 24 * time.Hour},
		{expiry: "", wantErr: true},
		{expiry: "d", wantErr: true},
		{expiry: "7w", wantErr: true},
		{expiry: "0d", wantErr: true},
		{expiry: "-1h", wantErr: true},
		{expiry: "seven", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.expiry, func(t *testing.T) {
			got, err := ParseExpiry(tt.expiry)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseExpiry(%q) error = %v, wantErr %v", tt.expiry, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseExpiry(%q) = %v, want %v", tt.expiry, got, tt.want)
			}
		})
	}
}
