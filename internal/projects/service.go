package projects

import (
	"context"
	"errors"
)

// ErrMissingField is returned when a save request lacks name or config.
var ErrMissingField = errors.New("missing name or config")

// Service encapsulates project configuration business logic
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

// LoadAll returns every stored project configuration.
func (s *Service) LoadAll(ctx context.Context) ([]Project, error) {
	return s.repo.LoadAll(ctx)
}

// Save validates and upserts a named configuration.
func (s *Service) Save(ctx context.Context, name string, config interface{}) error {
	if name == "" || config == nil {
		return ErrMissingField
	}
	return s.repo.Save(ctx, name, config)
}
