package roles

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/noah-isme/sentinel/internal/audit"
	"github.com/noah-isme/sentinel/internal/rbac"
	"github.com/noah-isme/sentinel/internal/shared"
)

// RepositoryPort defines data access methods for roles. Apply must run its
// read-modify-write atomically; the service relies on that for permission
// merges.
type RepositoryPort interface {
	List(ctx context.Context) ([]Role, error)
	Get(ctx context.Context, id uuid.UUID) (Role, error)
	Create(ctx context.Context, role Role) (Role, error)
	Apply(ctx context.Context, id uuid.UUID, fn func(Role) (Role, error)) (Role, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Service handles role business rules: permission-map completeness,
// partial-merge updates and audit emission.
type Service struct {
	repo     RepositoryPort
	recorder *audit.Recorder
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort, recorder *audit.Recorder) *Service {
	return &Service{repo: repo, recorder: recorder}
}

// CreateInput carries the fields accepted when creating a role. Permissions
// may list any subset of the catalog; unknown keys are ignored.
type CreateInput struct {
	Name        string
	Description string
	Permissions map[string]bool
}

// UpdateInput carries a partial role update. Nil fields are left unchanged;
// permission keys present in the map are merged into the existing grants.
type UpdateInput struct {
	Name        *string
	Description *string
	Permissions map[string]bool
}

// List returns all roles.
func (s *Service) List(ctx context.Context) ([]Role, error) {
	return s.repo.List(ctx)
}

// Get fetches a role by ID.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (Role, error) {
	return s.repo.Get(ctx, id)
}

// Create inserts a new role with a complete permission mapping.
func (s *Service) Create(ctx context.Context, actor shared.Identity, input CreateInput) (Role, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return Role{}, fmt.Errorf("roles: name required: %w", shared.ErrValidation)
	}
	role := Role{
		ID:          uuid.New(),
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		Permissions: rbac.CompletePermissions(input.Permissions),
	}
	created, err := s.repo.Create(ctx, role)
	if err != nil {
		return Role{}, err
	}
	s.recorder.Record(ctx, actor.ID, audit.ActionCreatedRole,
		fmt.Sprintf("Role %s (%s) created", created.ID, created.Name))
	return created, nil
}

// Update merges the provided fields into the stored role. Permission keys
// not mentioned keep their current grant; the mapping stays complete. The
// merge runs inside the repository's transactional Apply so it always reads
// the grants it is about to rewrite.
func (s *Service) Update(ctx context.Context, actor shared.Identity, id uuid.UUID, input UpdateInput) (Role, error) {
	updated, err := s.repo.Apply(ctx, id, func(current Role) (Role, error) {
		if input.Name != nil {
			name := strings.TrimSpace(*input.Name)
			if name == "" {
				return Role{}, fmt.Errorf("roles: name required: %w", shared.ErrValidation)
			}
			current.Name = name
		}
		if input.Description != nil {
			current.Description = strings.TrimSpace(*input.Description)
		}
		current.Permissions = rbac.MergePermissions(current.Permissions, input.Permissions)
		return current, nil
	})
	if err != nil {
		return Role{}, err
	}
	s.recorder.Record(ctx, actor.ID, audit.ActionUpdatedRole,
		fmt.Sprintf("Role %s (%s) updated", updated.ID, updated.Name))
	return updated, nil
}

// Delete removes a role. Users referencing the role keep their (now
// orphaned) role name; the reference is tolerated, not repaired.
func (s *Service) Delete(ctx context.Context, actor shared.Identity, id uuid.UUID) error {
	role, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.recorder.Record(ctx, actor.ID, audit.ActionDeletedRole,
		fmt.Sprintf("Role %s (%s) deleted", role.ID, role.Name))
	return nil
}
