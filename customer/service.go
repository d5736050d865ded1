package customer

import "context"

// Reader abstracts repository operations for the service.
type Reader interface {
	GetByID(ctx context.Context, id string) (Customer, error)
	SelectAll(ctx context.Context) ([]Customer, error)
}

// Service exposes read-only customer operations.
type Service struct {
	repo Reader
}

// NewService builds a Service using the provided repository.
func NewService(repo Reader) *Service {
	return &Service{repo: repo}
}

// GetByID returns the customer for the given identifier.
func (s *Service) GetByID(ctx context.Context, id string) (Customer, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns every customer.
func (s *Service) List(ctx context.Context) ([]Customer, error) {
	return s.repo.SelectAll(ctx)
}
