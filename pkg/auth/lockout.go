package auth

import (
	"time"

	"github.com/soma-connects/onelga-local-services/pkg/domain"
)

// Lockout policy constants.
const (
	MaxFailedAttempts = 5
	LockoutDuration   = 15 * time.Minute
)

// Gate is the decision whether a login attempt may proceed to password
// verification. Precedence is lock > deactivated > suspended: a locked
// account reports locked even when it is also suspended.
type Gate int

const (
	GateAllowed Gate = iota
	GateLocked
	GateDeactivated
	GateSuspended
)

// EvaluateGate decides whether a login attempt against the account may
// proceed at the given instant. It never mutates state; the lock clears
// lazily the moment LockoutUntil elapses.
func EvaluateGate(a *domain.Account, now time.Time) Gate {
	if a.LockedAt(now) {
		return GateLocked
	}
	if !a.IsActive {
		return GateDeactivated
	}
	if a.Status == domain.AccountStatusSuspended {
		return GateSuspended
	}
	return GateAllowed
}

// FailureTransition computes the login state after a wrong-password attempt:
// the counter increments, and the attempt that reaches MaxFailedAttempts sets
// LockoutUntil in the same update. An existing lockout timestamp is never
// extended here; locked accounts are rejected by the gate before this runs.
func FailureTransition(a *domain.Account, now time.Time) domain.LoginState {
	attempts := a.FailedLoginAttempts + 1
	state := domain.LoginState{
		FailedLoginAttempts: attempts,
		LockoutUntil:        a.LockoutUntil,
	}
	if attempts >= MaxFailedAttempts {
		until := now.Add(LockoutDuration)
		state.LockoutUntil = &until
	}
	return state
}

// SuccessTransition computes the login state after a correct-password attempt:
// counter reset to zero, lockout cleared, and lastLogin stamped, all in one
// update.
func SuccessTransition(now time.Time) domain.LoginState {
	return domain.LoginState{
		FailedLoginAttempts: 0,
		LockoutUntil:        nil,
		LastLogin:           &now,
	}
}
