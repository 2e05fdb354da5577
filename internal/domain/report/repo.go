package report

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("report: not found")

type Repository interface {
	Create(ctx context.Context, r *ClinicalReport) error
	GetByID(ctx context.Context, id uuid.UUID) (*ClinicalReport, error)
	Update(ctx context.Context, r *ClinicalReport) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*ClinicalReport, int, error)
}
