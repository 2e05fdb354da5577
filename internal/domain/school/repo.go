package school

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("school: not found")

type Repository interface {
	Create(ctx context.Context, s *School) error
	GetByID(ctx context.Context, id uuid.UUID) (*School, error)
	Update(ctx context.Context, s *School) error
	Delete(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, name string, limit, offset int) ([]*School, int, error)
}
