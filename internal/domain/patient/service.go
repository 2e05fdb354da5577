package patient

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type Service struct {
	repo        Repository
	backgrounds BackgroundRepository
}

func NewService(repo Repository, backgrounds BackgroundRepository) *Service {
	return &Service{repo: repo, backgrounds: backgrounds}
}

var validGenders = map[string]bool{
	"male": true, "female": true, "other": true, "unknown": true,
}

func (s *Service) Create(ctx context.Context, p *Patient) error {
	if p.Gender != nil && !validGenders[*p.Gender] {
		return fmt.Errorf("patient: invalid gender %q", *p.Gender)
	}
	return s.repo.Create(ctx, p)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByDNI(ctx context.Context, dni string) (*Patient, error) {
	return s.repo.GetByDNI(ctx, dni)
}

func (s *Service) Update(ctx context.Context, p *Patient) error {
	if p.Gender != nil && !validGenders[*p.Gender] {
		return fmt.Errorf("patient: invalid gender %q", *p.Gender)
	}
	return s.repo.Update(ctx, p)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) Search(ctx context.Context, filter SearchFilter, limit, offset int) ([]*Patient, int, error) {
	return s.repo.Search(ctx, filter, limit, offset)
}

// GetBackground fetches the patient's medical background, verifying the
// patient exists first so a missing patient is not reported as a missing
// background.
func (s *Service) GetBackground(ctx context.Context, patientID uuid.UUID) (*MedicalBackground, error) {
	if _, err := s.repo.GetByID(ctx, patientID); err != nil {
		return nil, err
	}
	return s.backgrounds.GetByPatient(ctx, patientID)
}

// SaveBackground creates or replaces the patient's medical background.
func (s *Service) SaveBackground(ctx context.Context, b *MedicalBackground) error {
	if _, err := s.repo.GetByID(ctx, b.PatientID); err != nil {
		return err
	}
	return s.backgrounds.Upsert(ctx, b)
}
