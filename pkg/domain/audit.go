package domain

import (
	"time"

	"github.com/google/uuid"
)

// Audit actions recorded by the admin surface.
const (
	AuditAccountSuspended   = "account.suspended"
	AuditAccountReactivated = "account.reactivated"
	AuditAccountUnlocked    = "account.unlocked"
)

// AuditEntry records an administrative action against an account.
// Audit writes are fire-and-forget: failures are logged, never propagated.
type AuditEntry struct {
	ID        uuid.UUID
	ActorID   uuid.UUID
	AccountID uuid.UUID
	Action    string
	Detail    string
	CreatedAt time.Time
}
