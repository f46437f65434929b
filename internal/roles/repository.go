package roles

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/noah-isme/sentinel/internal/platform/db"
	"github.com/noah-isme/sentinel/internal/shared"
)

const uniqueViolation = "23505"

// Repository provides PostgreSQL backed persistence. Role name uniqueness is
// enforced by a unique index; the resulting duplicate-key failure is the
// final arbiter and surfaces as shared.ErrDuplicate.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// List returns all roles ordered by name.
func (r *Repository) List(ctx context.Context) ([]Role, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, description, permissions, created_at, updated_at FROM roles ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []Role
	for rows.Next() {
		role, err := scanRole(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, role)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Get fetches a role by ID.
func (r *Repository) Get(ctx context.Context, id uuid.UUID) (Role, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, name, description, permissions, created_at, updated_at FROM roles WHERE id = $1`, id)
	role, err := scanRole(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Role{}, fmt.Errorf("roles: %w", shared.ErrNotFound)
		}
		return Role{}, err
	}
	return role, nil
}

// Create inserts a new role.
func (r *Repository) Create(ctx context.Context, role Role) (Role, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO roles (id, name, description, permissions, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, NOW(), NOW())
		 RETURNING id, name, description, permissions, created_at, updated_at`,
		role.ID, role.Name, role.Description, role.Permissions)
	created, err := scanRole(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return Role{}, fmt.Errorf("roles: name already in use: %w", shared.ErrDuplicate)
		}
		return Role{}, err
	}
	return created, nil
}

// Apply runs fn against the stored role and writes the result back, all
// inside one RepeatableRead transaction with the row locked. Concurrent
// merges serialize on the lock, so neither writer computes its merge from a
// snapshot the other has already replaced.
func (r *Repository) Apply(ctx context.Context, id uuid.UUID, fn func(Role) (Role, error)) (Role, error) {
	var updated Role
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx,
			`SELECT id, name, description, permissions, created_at, updated_at FROM roles WHERE id = $1 FOR UPDATE`, id)
		current, err := scanRole(row)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("roles: %w", shared.ErrNotFound)
			}
			return err
		}
		next, err := fn(current)
		if err != nil {
			return err
		}
		row = tx.QueryRow(ctx,
			`UPDATE roles SET name = $2, description = $3, permissions = $4, updated_at = NOW()
			 WHERE id = $1
			 RETURNING id, name, description, permissions, created_at, updated_at`,
			id, next.Name, next.Description, next.Permissions)
		updated, err = scanRole(row)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
				return fmt.Errorf("roles: name already in use: %w", shared.ErrDuplicate)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return Role{}, err
	}
	return updated, nil
}

// Delete removes a role by ID. Users referencing the role are untouched.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM roles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("roles: %w", shared.ErrNotFound)
	}
	return nil
}

func scanRole(row pgx.Row) (Role, error) {
	var role Role
	if err := row.Scan(&role.ID, &role.Name, &role.Description, &role.Permissions, &role.CreatedAt, &role.UpdatedAt); err != nil {
		return Role{}, err
	}
	return role, nil
}
