package staff

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrProfessionalNotFound = errors.New("staff: professional not found")
	ErrReceptionistNotFound = errors.New("staff: receptionist not found")
	ErrDNITaken             = errors.New("staff: dni already registered")
)

type ProfessionalRepository interface {
	Create(ctx context.Context, p *Professional) error
	GetByID(ctx context.Context, id uuid.UUID) (*Professional, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*Professional, error)
	Update(ctx context.Context, p *Professional) error
	Delete(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, name string, limit, offset int) ([]*Professional, int, error)
}

type ReceptionistRepository interface {
	Create(ctx context.Context, r *Receptionist) error
	GetByID(ctx context.Context, id uuid.UUID) (*Receptionist, error)
	Update(ctx context.Context, r *Receptionist) error
	Delete(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, name string, limit, offset int) ([]*Receptionist, int, error)
}
