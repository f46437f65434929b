package auth

import (
	"context"
	"fmt"

	"github.com/noah-isme/sentinel/internal/shared"
)

// Service wraps authentication business rules.
type Service struct {
	repo   Repository
	tokens *TokenManager
}

// NewService constructs a new Service.
func NewService(repo Repository, tokens *TokenManager) *Service {
	return &Service{repo: repo, tokens: tokens}
}

// Authenticate validates email/password credentials and returns the account.
// Unknown email, wrong password and deactivated account all collapse to the
// same ErrInvalidCredentials, so callers cannot probe which one failed.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*Account, error) {
	account, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("auth: %w", shared.ErrInvalidCredentials)
	}
	if account.Status != "Active" {
		return nil, fmt.Errorf("auth: %w", shared.ErrInvalidCredentials)
	}
	if !CheckPassword(password, account.PasswordHash) {
		return nil, fmt.Errorf("auth: %w", shared.ErrInvalidCredentials)
	}
	return account, nil
}

// IssueToken signs a session token for the account, snapshotting its
// current role name into the claims.
func (s *Service) IssueToken(account *Account) (string, error) {
	return s.tokens.Issue(account.ID, account.Role)
}
