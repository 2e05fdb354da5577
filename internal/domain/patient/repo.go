package patient

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound           = errors.New("patient: not found")
	ErrDNITaken           = errors.New("patient: dni already registered")
	ErrBackgroundNotFound = errors.New("patient: medical background not found")
)

// SearchFilter narrows patient listings. Name matches either name column.
type SearchFilter struct {
	Name string
	DNI  string
}

type Repository interface {
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)
	GetByDNI(ctx context.Context, dni string) (*Patient, error)
	Update(ctx context.Context, p *Patient) error
	Delete(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, filter SearchFilter, limit, offset int) ([]*Patient, int, error)
}

type BackgroundRepository interface {
	GetByPatient(ctx context.Context, patientID uuid.UUID) (*MedicalBackground, error)
	Upsert(ctx context.Context, b *MedicalBackground) error
}
