// Package records manages medical records and their clinical history:
// diagnoses and follow-up entries.
package records

import (
	"time"

	"github.com/google/uuid"
)

// MedicalRecord is the per-patient clinical record header. One row per
// patient; diagnoses and follow-ups hang off it.
type MedicalRecord struct {
	ID        uuid.UUID `json:"id"`
	PatientID uuid.UUID `json:"patientId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Diagnosis struct {
	ID             uuid.UUID `json:"id"`
	RecordID       uuid.UUID `json:"recordId"`
	Code           *string   `json:"code,omitempty"`
	Name           string    `json:"name"`
	Description    *string   `json:"description,omitempty"`
	DiagnosedAt    time.Time `json:"diagnosedAt"`
	ProfessionalID uuid.UUID `json:"professionalId"`
	CreatedAt      time.Time `json:"createdAt"`
}

type FollowUpEntry struct {
	ID             uuid.UUID `json:"id"`
	RecordID       uuid.UUID `json:"recordId"`
	Note           string    `json:"note"`
	EntryDate      time.Time `json:"entryDate"`
	ProfessionalID uuid.UUID `json:"professionalId"`
	CreatedAt      time.Time `json:"createdAt"`
}

// HistoryFilter narrows follow-up listings by date range and author.
type HistoryFilter struct {
	From           *time.Time
	To             *time.Time
	ProfessionalID *uuid.UUID
}
