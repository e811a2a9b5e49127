package repository

import (
	"context"
	"database/sql"

	"github.com/blog-personal-api/internal/database"
	"github.com/blog-personal-api/internal/models"
)

// auditRepo is the concrete implementation of AuditRepository
type auditRepo struct {
	db *database.DB
}

// NewAuditRepo creates a new audit log repository
func NewAuditRepo(db *database.DB) AuditRepository {
	return &auditRepo{db: db}
}

// Record appends an entry to the audit log
func (r *auditRepo) Record(ctx context.Context, entry *models.AuditEntry) error {
	query := `
		INSERT INTO audit_logs (entity, entity_id, action, user_id, detail, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query,
		entry.Entity, entry.EntityID, string(entry.Action), entry.UserID,
		nullString(entry.Detail), entry.Timestamp,
	).Scan(&entry.ID)
	return mapError(err)
}

// ListByEntity returns the most recent entries for one entity, newest first
func (r *auditRepo) ListByEntity(ctx context.Context, entity string, entityID int64, limit int) ([]*models.AuditEntry, error) {
	query := `
		SELECT id, entity, entity_id, action, user_id, detail, created_at
		FROM audit_logs WHERE entity = $1 AND entity_id = $2
		ORDER BY created_at DESC, id DESC
	`

	var rows *sql.Rows
	var err error
	if limit > 0 {
		rows, err = r.db.QueryContext(ctx, query+" LIMIT $3", entity, entityID, limit)
	} else {
		rows, err = r.db.QueryContext(ctx, query, entity, entityID)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []*models.AuditEntry{}
	for rows.Next() {
		var e models.AuditEntry
		var userID sql.NullInt64
		var detail sql.NullString
		if err := rows.Scan(&e.ID, &e.Entity, &e.EntityID, &e.Action, &userID, &detail, &e.Timestamp); err != nil {
			return nil, err
		}
		if userID.Valid {
			e.UserID = &userID.Int64
		}
		e.Detail = detail.String
		entries = append(entries, &e)
	}

	return entries, rows.Err()
}

// helper to convert empty string to NULL
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
