// Package domain holds the core types shared across the service layers.
package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// AccountStatus is the administrative state of an account, distinct from the
// is_active flag: suspension is imposed by staff, deactivation by the account
// holder or the system.
type AccountStatus string

const (
	AccountStatusActive    AccountStatus = "active"
	AccountStatusSuspended AccountStatus = "suspended"
)

// Account roles.
const (
	RoleCitizen = "citizen"
	RoleStaff   = "staff"
	RoleAdmin   = "admin"
)

// Account is a citizen-services account as stored in the accounts table.
type Account struct {
	ID                  uuid.UUID
	Email               string
	PasswordHash        string
	FirstName           string
	LastName            string
	Role                string
	Status              AccountStatus
	IsActive            bool
	FailedLoginAttempts int
	LockoutUntil        *time.Time
	LastLogin           *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// LockedAt reports whether the account is locked out at the given instant.
// A lockout expiry at or before now counts as expired; no state is mutated.
func (a *Account) LockedAt(now time.Time) bool {
	return a.LockoutUntil != nil && a.LockoutUntil.After(now)
}

// LoginState is the slice of account state a login attempt may change. It is
// persisted as a single row update so the counter, the lockout expiry, and the
// last-login stamp move together.
type LoginState struct {
	FailedLoginAttempts int
	LockoutUntil        *time.Time
	LastLogin           *time.Time
}

// Profile is the sanitized account view returned to clients. It never carries
// the password hash or the lockout bookkeeping.
type Profile struct {
	ID        uuid.UUID  `json:"id"`
	Email     string     `json:"email"`
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	Role      string     `json:"role"`
	Status    string     `json:"status"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

// Profile returns the client-facing view of the account. The role is folded
// to lower case and an empty status is reported as active.
func (a *Account) Profile() Profile {
	status := string(a.Status)
	if status == "" {
		status = string(AccountStatusActive)
	}
	return Profile{
		ID:        a.ID,
		Email:     a.Email,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Role:      strings.ToLower(a.Role),
		Status:    status,
		LastLogin: a.LastLogin,
		CreatedAt: a.CreatedAt,
	}
}

// NormalizeEmail lower-cases and trims an email address so lookups and
// uniqueness checks are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
