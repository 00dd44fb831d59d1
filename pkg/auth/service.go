package auth

import (
	"context"
	"errors"
	"net/mail"
	"time"

	"github.com/google/uuid"

	"github.com/soma-connects/onelga-local-services/pkg/domain"
)

// AccountStore is the persistence boundary the auth service depends on.
// Implemented by repository.AccountsRepository.
type AccountStore interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	UpdateLoginState(ctx context.Context, id uuid.UUID, state domain.LoginState) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
}

// Service handles account authentication.
type Service struct {
	accounts   AccountStore
	bcryptCost int
}

// NewService creates a new auth service.
func NewService(accounts AccountStore, bcryptCost int) *Service {
	if bcryptCost == 0 {
		bcryptCost = DefaultBcryptCost
	}
	return &Service{
		accounts:   accounts,
		bcryptCost: bcryptCost,
	}
}

// Register creates a new account with citizen role, zeroed counters, and no
// lockout.
func (s *Service) Register(ctx context.Context, email, password, firstName, lastName string) (*domain.Account, error) {
	email = domain.NormalizeEmail(email)
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, domain.ErrInvalidEmail
	}
	if err := ValidatePassword(password); err != nil {
		return nil, err
	}

	exists, err := s.accounts.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrAccountAlreadyExists
	}

	hash, err := HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	account := &domain.Account{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		FirstName:    SanitizeName(firstName),
		LastName:     SanitizeName(lastName),
		Role:         domain.RoleCitizen,
		Status:       domain.AccountStatusActive,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

// Login verifies credentials and applies the lockout policy.
//
// Unknown email and wrong password return the same ErrInvalidCredentials so
// the response cannot be used to enumerate accounts. Locked, deactivated, and
// suspended accounts are rejected before password verification and never
// mutate the failure counter. The attempt that reaches the failure threshold
// sets the lock but is itself still reported as invalid credentials; the lock
// takes effect on the next attempt.
func (s *Service) Login(ctx context.Context, email, password string) (*domain.Account, error) {
	account, err := s.accounts.GetByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	now := time.Now()
	switch EvaluateGate(account, now) {
	case GateLocked:
		return nil, domain.ErrAccountLocked
	case GateDeactivated:
		return nil, domain.ErrAccountDeactivated
	case GateSuspended:
		return nil, domain.ErrAccountSuspended
	}

	if !VerifyPassword(password, account.PasswordHash) {
		// Last-write-wins on concurrent attempts; the lock still
		// triggers once the counter reaches the threshold. A failed
		// counter write is an infrastructure error and must surface,
		// otherwise the lockout would silently never arm.
		if err := s.accounts.UpdateLoginState(ctx, account.ID, FailureTransition(account, now)); err != nil {
			return nil, err
		}
		return nil, domain.ErrInvalidCredentials
	}

	state := SuccessTransition(now)
	if err := s.accounts.UpdateLoginState(ctx, account.ID, state); err != nil {
		return nil, err
	}

	account.FailedLoginAttempts = state.FailedLoginAttempts
	account.LockoutUntil = state.LockoutUntil
	account.LastLogin = state.LastLogin

	return account, nil
}

// ChangePassword verifies the current password and stores a new hash.
func (s *Service) ChangePassword(ctx context.Context, accountID uuid.UUID, currentPassword, newPassword string) error {
	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return err
	}

	if !VerifyPassword(currentPassword, account.PasswordHash) {
		return domain.ErrInvalidCredentials
	}

	if err := ValidatePassword(newPassword); err != nil {
		return err
	}

	hash, err := HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}

	return s.accounts.UpdatePassword(ctx, accountID, hash)
}

// GetAccountByID retrieves an account by ID.
func (s *Service) GetAccountByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	return s.accounts.GetByID(ctx, id)
}
