package revenue

import "context"

// Reader abstracts repository operations for the service.
type Reader interface {
	SelectAll(ctx context.Context) ([]Entry, error)
}

type Service struct {
	repo Reader
}

func NewService(repo Reader) *Service {
	return &Service{repo: repo}
}

// List returns the full revenue series.
func (s *Service) List(ctx context.Context) ([]Entry, error) {
	return s.repo.SelectAll(ctx)
}
