package school

import (
	"context"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, sc *School) error {
	return s.repo.Create(ctx, sc)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*School, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, sc *School) error {
	return s.repo.Update(ctx, sc)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) Search(ctx context.Context, name string, limit, offset int) ([]*School, int, error) {
	return s.repo.Search(ctx, name, limit, offset)
}
