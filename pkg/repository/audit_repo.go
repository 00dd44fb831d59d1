package repository

import (
	"context"
	"database/sql"

	"github.com/soma-connects/onelga-local-services/pkg/domain"
)

// AuditRepository appends administrative actions to the audit log.
type AuditRepository struct {
	db *sql.DB
}

// NewAuditRepository creates a new audit repository.
func NewAuditRepository(db *sql.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// Insert appends an audit entry.
func (r *AuditRepository) Insert(ctx context.Context, entry *domain.AuditEntry) error {
	query := `
		INSERT INTO audit_log (id, actor_id, account_id, action, detail, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query,
		entry.ID, entry.ActorID, entry.AccountID, entry.Action, entry.Detail, entry.CreatedAt,
	)
	return err
}
