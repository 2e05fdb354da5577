// Package patient manages patient demographics and their medical background.
package patient

import (
	"time"

	"github.com/google/uuid"
)

type Patient struct {
	ID                uuid.UUID  `json:"id"`
	FirstName         string     `json:"firstName"`
	LastName          string     `json:"lastName"`
	DNI               string     `json:"dni"`
	BirthDate         *time.Time `json:"birthDate,omitempty"`
	Gender            *string    `json:"gender,omitempty"`
	Phone             *string    `json:"phone,omitempty"`
	Email             *string    `json:"email,omitempty"`
	Address           *string    `json:"address,omitempty"`
	SchoolID          *uuid.UUID `json:"schoolId,omitempty"`
	InsuranceProvider *string    `json:"insuranceProvider,omitempty"`
	InsuranceNumber   *string    `json:"insuranceNumber,omitempty"`
	UserID            *uuid.UUID `json:"userId,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

// MedicalBackground is the per-patient anamnesis. One row per patient,
// written with an upsert.
type MedicalBackground struct {
	ID                uuid.UUID `json:"id"`
	PatientID         uuid.UUID `json:"patientId"`
	Allergies         *string   `json:"allergies,omitempty"`
	ChronicConditions *string   `json:"chronicConditions,omitempty"`
	Medications       *string   `json:"medications,omitempty"`
	FamilyHistory     *string   `json:"familyHistory,omitempty"`
	Notes             *string   `json:"notes,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}
