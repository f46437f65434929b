package users

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/sentinel/internal/audit"
	"github.com/noah-isme/sentinel/internal/auth"
	"github.com/noah-isme/sentinel/internal/shared"
)

// RepositoryPort defines data access methods for users.
type RepositoryPort interface {
	List(ctx context.Context, limit, offset int) ([]User, error)
	Count(ctx context.Context) (int, error)
	Get(ctx context.Context, id uuid.UUID) (User, error)
	Create(ctx context.Context, user User) (User, error)
	Update(ctx context.Context, user User) (User, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CountByStatus(ctx context.Context, status string) (int, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int, error)
}

// Service handles user business rules. Credential hashing happens here,
// exactly once, when the credential is set at creation; the general update
// path never touches the stored hash.
type Service struct {
	repo       RepositoryPort
	recorder   *audit.Recorder
	bcryptCost int
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort, recorder *audit.Recorder, bcryptCost int) *Service {
	return &Service{repo: repo, recorder: recorder, bcryptCost: bcryptCost}
}

// CreateInput carries the fields accepted when creating a user.
type CreateInput struct {
	Name     string
	Email    string
	Password string
	Role     string
	Status   string
	Photo    string
}

// UpdateInput carries a partial user update. There is deliberately no
// password field: credential rotation is not part of the general update
// path.
type UpdateInput struct {
	Name   *string
	Email  *string
	Role   *string
	Status *string
	Photo  *string
}

// List returns one page of users plus paging metadata.
func (s *Service) List(ctx context.Context, req shared.PageRequest) ([]User, shared.PageMeta, error) {
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, shared.PageMeta{}, err
	}
	items, err := s.repo.List(ctx, req.Limit, req.Offset())
	if err != nil {
		return nil, shared.PageMeta{}, err
	}
	return items, shared.NewPageMeta(req, total), nil
}

// Get fetches a user by ID.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (User, error) {
	return s.repo.Get(ctx, id)
}

// Create inserts a new user, transforming the plaintext credential through
// the one-way hash before anything is persisted.
func (s *Service) Create(ctx context.Context, actor shared.Identity, input CreateInput) (User, error) {
	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return User{}, fmt.Errorf("users: hash password: %w", err)
	}
	user := User{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(input.Name),
		Email:        strings.TrimSpace(input.Email),
		PasswordHash: hash,
		Role:         input.Role,
		Status:       input.Status,
		Photo:        input.Photo,
	}
	if user.Role == "" {
		user.Role = "viewer"
	}
	if user.Status == "" {
		user.Status = StatusActive
	}
	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return User{}, err
	}
	s.recorder.Record(ctx, actor.ID, audit.ActionCreatedUser,
		fmt.Sprintf("User %s (%s) created", created.ID, created.Email))
	return created, nil
}

// Update merges the provided fields into the stored user. The stored
// credential hash is carried over untouched.
func (s *Service) Update(ctx context.Context, actor shared.Identity, id uuid.UUID, input UpdateInput) (User, error) {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return User{}, err
	}
	if input.Name != nil {
		current.Name = strings.TrimSpace(*input.Name)
	}
	if input.Email != nil {
		current.Email = strings.TrimSpace(*input.Email)
	}
	if input.Role != nil {
		current.Role = *input.Role
	}
	if input.Status != nil {
		current.Status = *input.Status
	}
	if input.Photo != nil {
		current.Photo = *input.Photo
	}
	updated, err := s.repo.Update(ctx, current)
	if err != nil {
		return User{}, err
	}
	s.recorder.Record(ctx, actor.ID, audit.ActionUpdatedUser,
		fmt.Sprintf("User %s (%s) updated", updated.ID, updated.Email))
	return updated, nil
}

// Delete removes a user by ID. The email is read first so the audit detail
// still names the account after the row is gone.
func (s *Service) Delete(ctx context.Context, actor shared.Identity, id uuid.UUID) error {
	user, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.recorder.Record(ctx, actor.ID, audit.ActionDeletedUser,
		fmt.Sprintf("User %s (%s) deleted", user.ID, user.Email))
	return nil
}

// LoadIdentity resolves a user ID to its identity for the authentication
// gate. Status is not consulted here: a deactivated user's live tokens keep
// working until they expire.
func (s *Service) LoadIdentity(ctx context.Context, id uuid.UUID) (shared.Identity, error) {
	user, err := s.repo.Get(ctx, id)
	if err != nil {
		return shared.Identity{}, err
	}
	return shared.Identity{ID: user.ID, Name: user.Name, Email: user.Email, Role: user.Role}, nil
}

// DashboardStats aggregates user counters, fanning the count queries out
// concurrently.
func (s *Service) DashboardStats(ctx context.Context) (Stats, error) {
	var stats Stats
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		total, err := s.repo.Count(ctx)
		stats.TotalUsers = total
		return err
	})
	g.Go(func() error {
		active, err := s.repo.CountByStatus(ctx, StatusActive)
		stats.ActiveUsers = active
		return err
	})
	g.Go(func() error {
		recent, err := s.repo.CountCreatedSince(ctx, time.Now().AddDate(0, 0, -7))
		stats.NewSignups = recent
		return err
	})
	if err := g.Wait(); err != nil {
		return Stats{}, err
	}
	return stats, nil
}
