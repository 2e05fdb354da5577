package records

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrRecordNotFound    = errors.New("records: medical record not found")
	ErrRecordExists      = errors.New("records: patient already has a medical record")
	ErrDiagnosisNotFound = errors.New("records: diagnosis not found")
	ErrFollowUpNotFound  = errors.New("records: follow-up entry not found")
)

type RecordRepository interface {
	Create(ctx context.Context, r *MedicalRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*MedicalRecord, error)
	GetByPatient(ctx context.Context, patientID uuid.UUID) (*MedicalRecord, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type DiagnosisRepository interface {
	Create(ctx context.Context, d *Diagnosis) error
	GetByID(ctx context.Context, id uuid.UUID) (*Diagnosis, error)
	Update(ctx context.Context, d *Diagnosis) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByRecord(ctx context.Context, recordID uuid.UUID, limit, offset int) ([]*Diagnosis, int, error)
}

type FollowUpRepository interface {
	Create(ctx context.Context, f *FollowUpEntry) error
	GetByID(ctx context.Context, id uuid.UUID) (*FollowUpEntry, error)
	Update(ctx context.Context, f *FollowUpEntry) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByRecord(ctx context.Context, recordID uuid.UUID, filter HistoryFilter, limit, offset int) ([]*FollowUpEntry, int, error)
}
