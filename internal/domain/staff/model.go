// Package staff manages the clinic's professionals and receptionists and
// their linked user accounts.
package staff

import (
	"time"

	"github.com/google/uuid"
)

type Professional struct {
	ID            uuid.UUID `json:"id"`
	FirstName     string    `json:"firstName"`
	LastName      string    `json:"lastName"`
	DNI           string    `json:"dni"`
	Specialty     string    `json:"specialty"`
	LicenseNumber string    `json:"licenseNumber"`
	Phone         *string   `json:"phone,omitempty"`
	Email         string    `json:"email"`
	UserID        uuid.UUID `json:"userId"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type Receptionist struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	DNI       string    `json:"dni"`
	Phone     *string   `json:"phone,omitempty"`
	Email     string    `json:"email"`
	UserID    uuid.UUID `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
