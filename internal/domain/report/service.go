package report

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create stores a report. IssuedAt defaults to now when unset.
func (s *Service) Create(ctx context.Context, r *ClinicalReport) error {
	if r.IssuedAt.IsZero() {
		r.IssuedAt = time.Now()
	}
	return s.repo.Create(ctx, r)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*ClinicalReport, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, r *ClinicalReport) error {
	return s.repo.Update(ctx, r)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*ClinicalReport, int, error) {
	return s.repo.ListByPatient(ctx, patientID, limit, offset)
}
