// Package identity manages user accounts, credentials, roles and permissions,
// and account suspension.
package identity

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

// User is a credentialed account. Enabled is false while the account is
// suspended; SuspensionEnd marks when an automatic reactivation is due and is
// nil for indefinite suspensions.
type User struct {
	ID            uuid.UUID  `json:"id"`
	Email         string     `json:"email"`
	PasswordHash  string     `json:"-"`
	Enabled       bool       `json:"enabled"`
	SuspensionEnd *time.Time `json:"suspensionEnd,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// Role is a named grant such as ADMIN or PROFESSIONAL.
type Role struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// Permission is a fine-grained capability attached to roles.
type Permission struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// SuspensionUnit is the time unit of a suspension duration.
type SuspensionUnit string

const (
	UnitHours  SuspensionUnit = "HOURS"
	UnitDays   SuspensionUnit = "DAYS"
	UnitWeeks  SuspensionUnit = "WEEKS"
	UnitMonths SuspensionUnit = "MONTHS"
)

// ParseSuspensionUnit validates a unit string.
func ParseSuspensionUnit(s string) (SuspensionUnit, error) {
	switch SuspensionUnit(s) {
	case UnitHours, UnitDays, UnitWeeks, UnitMonths:
		return SuspensionUnit(s), nil
	default:
		return "", fmt.Errorf("invalid suspension unit %q", s)
	}
}

// Add advances t by amount of this unit. Months use calendar arithmetic so
// a one-month suspension ending on Jan 31 lands on the matching calendar day.
func (u SuspensionUnit) Add(t time.Time, amount int) time.Time {
	switch u {
	case UnitHours:
		return t.Add(time.Duration(amount) * time.Hour)
	case UnitDays:
		return t.AddDate(0, 0, amount)
	case UnitWeeks:
		return t.AddDate(0, 0, 7*amount)
	case UnitMonths:
		return t.AddDate(0, amount, 0)
	default:
		return t
	}
}

// Authorities flattens roles and permissions into the authority strings
// embedded in tokens. Roles are prefixed with ROLE_, permissions are used
// as-is, and the result is deduplicated and sorted.
func Authorities(roles []Role, permissions []Permission) []string {
	set := make(map[string]struct{}, len(roles)+len(permissions))
	for _, r := range roles {
		set["ROLE_"+r.Name] = struct{}{}
	}
	for _, p := range permissions {
		set[p.Name] = struct{}{}
	}

	out := make([]string, 0, len(set))
	for a := range set {
		out = append(out, a)
	}
	sort.Strings(out)
	return out
}
