package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/soma-connects/onelga-local-services/pkg/domain"
)

const accountColumns = `id, email, password_hash, first_name, last_name, role, status,
	       is_active, failed_login_attempts, lockout_until, last_login, created_at, updated_at`

// AccountsRepository handles account persistence.
type AccountsRepository struct {
	db *sql.DB
}

// NewAccountsRepository creates a new accounts repository.
func NewAccountsRepository(db *sql.DB) *AccountsRepository {
	return &AccountsRepository{db: db}
}

func scanAccount(row *sql.Row) (*domain.Account, error) {
	account := &domain.Account{}
	err := row.Scan(
		&account.ID, &account.Email, &account.PasswordHash, &account.FirstName, &account.LastName,
		&account.Role, &account.Status, &account.IsActive, &account.FailedLoginAttempts,
		&account.LockoutUntil, &account.LastLogin, &account.CreatedAt, &account.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}
	return account, nil
}

// Create creates a new account.
func (r *AccountsRepository) Create(ctx context.Context, account *domain.Account) error {
	query := `
		INSERT INTO accounts (id, email, password_hash, first_name, last_name, role, status,
		                      is_active, failed_login_attempts, lockout_until, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.db.ExecContext(ctx, query,
		account.ID, account.Email, account.PasswordHash, account.FirstName, account.LastName,
		account.Role, account.Status, account.IsActive, account.FailedLoginAttempts,
		account.LockoutUntil, account.CreatedAt, account.UpdatedAt,
	)
	return err
}

// GetByID retrieves an account by ID.
func (r *AccountsRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE id = $1
	`
	return scanAccount(r.db.QueryRowContext(ctx, query, id))
}

// GetByEmail retrieves an account by email, case-insensitively.
func (r *AccountsRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE LOWER(email) = LOWER($1)
	`
	return scanAccount(r.db.QueryRowContext(ctx, query, email))
}

// ExistsByEmail checks if an account exists by email, case-insensitively.
func (r *AccountsRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM accounts WHERE LOWER(email) = LOWER($1))`
	var exists bool
	err := r.db.QueryRowContext(ctx, query, email).Scan(&exists)
	return exists, err
}

// UpdateLoginState persists the outcome of a login attempt: counter, lockout
// expiry, and (when set) the last-login timestamp, in a single row update.
func (r *AccountsRepository) UpdateLoginState(ctx context.Context, id uuid.UUID, state domain.LoginState) error {
	query := `
		UPDATE accounts
		SET failed_login_attempts = $2,
		    lockout_until = $3,
		    last_login = COALESCE($4, last_login),
		    updated_at = NOW()
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, id, state.FailedLoginAttempts, state.LockoutUntil, state.LastLogin)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

// UpdatePassword replaces the stored password hash wholesale.
func (r *AccountsRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	query := `
		UPDATE accounts
		SET password_hash = $2, updated_at = NOW()
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, id, passwordHash)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

// UpdateProfile updates the account's name fields.
func (r *AccountsRepository) UpdateProfile(ctx context.Context, id uuid.UUID, firstName, lastName string) error {
	query := `
		UPDATE accounts
		SET first_name = $2, last_name = $3, updated_at = NOW()
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, id, firstName, lastName)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

// UpdateStatus changes the administrative state of an account.
func (r *AccountsRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.AccountStatus, isActive bool) error {
	query := `
		UPDATE accounts
		SET status = $2, is_active = $3, updated_at = NOW()
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, id, status, isActive)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

// ClearLockout resets the failure counter and clears the lockout expiry.
func (r *AccountsRepository) ClearLockout(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE accounts
		SET failed_login_attempts = 0,
		    lockout_until = NULL,
		    updated_at = NOW()
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}
