package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/soma-connects/onelga-local-services/pkg/domain"
)

// ApplicationsRepository handles service-application persistence.
type ApplicationsRepository struct {
	db *sql.DB
}

// NewApplicationsRepository creates a new applications repository.
func NewApplicationsRepository(db *sql.DB) *ApplicationsRepository {
	return &ApplicationsRepository{db: db}
}

// Create creates a new application.
func (r *ApplicationsRepository) Create(ctx context.Context, app *domain.Application) error {
	query := `
		INSERT INTO applications (id, account_id, type, reference_number, status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query,
		app.ID, app.AccountID, app.Type, app.ReferenceNumber, app.Status, app.Notes,
		app.CreatedAt, app.UpdatedAt,
	)
	return err
}

// GetByID retrieves an application by ID.
func (r *ApplicationsRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Application, error) {
	query := `
		SELECT id, account_id, type, reference_number, status, notes, created_at, updated_at
		FROM applications
		WHERE id = $1
	`
	app := &domain.Application{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&app.ID, &app.AccountID, &app.Type, &app.ReferenceNumber, &app.Status, &app.Notes,
		&app.CreatedAt, &app.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrApplicationNotFound
	}
	if err != nil {
		return nil, err
	}
	return app, nil
}

// ListByAccount retrieves all applications submitted by an account, newest
// first.
func (r *ApplicationsRepository) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*domain.Application, error) {
	query := `
		SELECT id, account_id, type, reference_number, status, notes, created_at, updated_at
		FROM applications
		WHERE account_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []*domain.Application
	for rows.Next() {
		app := &domain.Application{}
		if err := rows.Scan(
			&app.ID, &app.AccountID, &app.Type, &app.ReferenceNumber, &app.Status, &app.Notes,
			&app.CreatedAt, &app.UpdatedAt,
		); err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}
	return apps, rows.Err()
}

// ExistsByReference checks whether a reference number is already taken.
func (r *ApplicationsRepository) ExistsByReference(ctx context.Context, ref string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM applications WHERE reference_number = $1)`
	var exists bool
	err := r.db.QueryRowContext(ctx, query, ref).Scan(&exists)
	return exists, err
}
