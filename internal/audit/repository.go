package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository provides PostgreSQL backed persistence for audit records.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Insert appends a new audit record.
func (r *Repository) Insert(ctx context.Context, userID uuid.UUID, action, details string) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO audit_logs (id, user_id, action, details, created_at) VALUES ($1, $2, $3, $4, NOW())`,
		uuid.New(), userID, action, details)
	return err
}

// List returns audit records newest first, joined with the actor's current
// name and email when the account still exists.
func (r *Repository) List(ctx context.Context, limit, offset int) ([]LogEntry, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT l.id, l.user_id, l.action, l.details, l.created_at,
		        COALESCE(u.name, ''), COALESCE(u.email, '')
		 FROM audit_logs l
		 LEFT JOIN users u ON u.id = l.user_id
		 ORDER BY l.created_at DESC
		 LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var entries []LogEntry
	for rows.Next() {
		var entry LogEntry
		if err := rows.Scan(&entry.ID, &entry.UserID, &entry.Action, &entry.Details, &entry.CreatedAt, &entry.ActorName, &entry.ActorEmail); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// Count returns the total number of audit records.
func (r *Repository) Count(ctx context.Context) (int, error) {
	var total int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM audit_logs`).Scan(&total)
	return total, err
}

// DeleteOlderThan removes records created before the cutoff and reports how
// many were pruned.
func (r *Repository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM audit_logs WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
