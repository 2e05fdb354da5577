// Package report manages clinical reports written by professionals.
package report

import (
	"time"

	"github.com/google/uuid"
)

type ClinicalReport struct {
	ID             uuid.UUID `json:"id"`
	PatientID      uuid.UUID `json:"patientId"`
	ProfessionalID uuid.UUID `json:"professionalId"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	IssuedAt       time.Time `json:"issuedAt"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
