package records

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	records   RecordRepository
	diagnoses DiagnosisRepository
	followUps FollowUpRepository
}

func NewService(records RecordRepository, diagnoses DiagnosisRepository, followUps FollowUpRepository) *Service {
	return &Service{records: records, diagnoses: diagnoses, followUps: followUps}
}

// OpenRecord creates the medical record for a patient. Each patient has at
// most one.
func (s *Service) OpenRecord(ctx context.Context, patientID uuid.UUID) (*MedicalRecord, error) {
	r := &MedicalRecord{PatientID: patientID}
	if err := s.records.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *Service) GetRecord(ctx context.Context, id uuid.UUID) (*MedicalRecord, error) {
	return s.records.GetByID(ctx, id)
}

func (s *Service) GetRecordByPatient(ctx context.Context, patientID uuid.UUID) (*MedicalRecord, error) {
	return s.records.GetByPatient(ctx, patientID)
}

func (s *Service) DeleteRecord(ctx context.Context, id uuid.UUID) error {
	return s.records.Delete(ctx, id)
}

// AddDiagnosis appends a diagnosis to the record. DiagnosedAt defaults to
// now when unset.
func (s *Service) AddDiagnosis(ctx context.Context, d *Diagnosis) error {
	if _, err := s.records.GetByID(ctx, d.RecordID); err != nil {
		return err
	}
	if d.DiagnosedAt.IsZero() {
		d.DiagnosedAt = time.Now()
	}
	return s.diagnoses.Create(ctx, d)
}

func (s *Service) UpdateDiagnosis(ctx context.Context, d *Diagnosis) error {
	return s.diagnoses.Update(ctx, d)
}

func (s *Service) DeleteDiagnosis(ctx context.Context, id uuid.UUID) error {
	return s.diagnoses.Delete(ctx, id)
}

func (s *Service) ListDiagnoses(ctx context.Context, recordID uuid.UUID, limit, offset int) ([]*Diagnosis, int, error) {
	if _, err := s.records.GetByID(ctx, recordID); err != nil {
		return nil, 0, err
	}
	return s.diagnoses.ListByRecord(ctx, recordID, limit, offset)
}

// AddFollowUp appends a follow-up entry to the record. EntryDate defaults to
// now when unset.
func (s *Service) AddFollowUp(ctx context.Context, f *FollowUpEntry) error {
	if _, err := s.records.GetByID(ctx, f.RecordID); err != nil {
		return err
	}
	if f.Note == "" {
		return errors.New("records: follow-up note must not be empty")
	}
	if f.EntryDate.IsZero() {
		f.EntryDate = time.Now()
	}
	return s.followUps.Create(ctx, f)
}

func (s *Service) UpdateFollowUp(ctx context.Context, f *FollowUpEntry) error {
	if f.Note == "" {
		return errors.New("records: follow-up note must not be empty")
	}
	return s.followUps.Update(ctx, f)
}

func (s *Service) DeleteFollowUp(ctx context.Context, id uuid.UUID) error {
	return s.followUps.Delete(ctx, id)
}

// History lists the record's follow-up entries, optionally narrowed by date
// range and professional.
func (s *Service) History(ctx context.Context, recordID uuid.UUID, filter HistoryFilter, limit, offset int) ([]*FollowUpEntry, int, error) {
	if _, err := s.records.GetByID(ctx, recordID); err != nil {
		return nil, 0, err
	}
	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return nil, 0, errors.New("records: history range start is after end")
	}
	return s.followUps.ListByRecord(ctx, recordID, filter, limit, offset)
}
