package audit

import (
	"context"

	"github.com/noah-isme/sentinel/internal/shared"
)

// ListStore is the persistence surface the service needs for listings.
type ListStore interface {
	List(ctx context.Context, limit, offset int) ([]LogEntry, error)
	Count(ctx context.Context) (int, error)
}

// Service coordinates audit log retrieval.
type Service struct {
	store ListStore
}

// NewService builds a Service instance.
func NewService(store ListStore) *Service {
	return &Service{store: store}
}

// List returns one page of audit records plus paging metadata.
func (s *Service) List(ctx context.Context, req shared.PageRequest) ([]LogEntry, shared.PageMeta, error) {
	total, err := s.store.Count(ctx)
	if err != nil {
		return nil, shared.PageMeta{}, err
	}
	entries, err := s.store.List(ctx, req.Limit, req.Offset())
	if err != nil {
		return nil, shared.PageMeta{}, err
	}
	return entries, shared.NewPageMeta(req, total), nil
}
