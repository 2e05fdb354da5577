package identity

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestAuthoritiesDedupeAndSort(t *testing.T) {
	roles := []Role{
		{ID: uuid.New(), Name: "ADMIN"},
		{ID: uuid.New(), Name: "PROFESSIONAL"},
	}
	perms := []Permission{
		{ID: uuid.New(), Name: "PATIENT_READ"},
		{ID: uuid.New(), Name: "PATIENT_READ"},
		{ID: uuid.New(), Name: "RECORD_WRITE"},
	}

	got := Authorities(roles, perms)
	want := []string{"PATIENT_READ", "RECORD_WRITE", "ROLE_ADMIN", "ROLE_PROFESSIONAL"}
	if len(got) != len(want) {
		t.Fatalf("Authorities = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Authorities[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestAuthoritiesEmpty(t *testing.T) {
	if got := Authorities(nil, nil); len(got) != 0 {
		t.Errorf("expected empty authorities, got %v", got)
	}
}

func TestSuspensionUnitAdd(t *testing.T) {
	base := time.Date(2026, 1, 31, 9, 0, 0, 0, time.UTC)
	tests := []struct {
		unit   SuspensionUnit
		amount int
		want   time.Time
	}{
		{UnitHours, 3, base.Add(3 * time.Hour)},
		{UnitDays, 2, time.Date(2026, 2, 2, 9, 0, 0, 0, time.UTC)},
		{UnitWeeks, 1, time.Date(2026, 2, 7, 9, 0, 0, 0, time.UTC)},
		{UnitMonths, 1, time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		if got := tt.unit.Add(base, tt.amount); !got.Equal(tt.want) {
			t.Errorf("%s.Add(%d) = %v, want %v", tt.unit, tt.amount, got, tt.want)
		}
	}
}

func TestParseSuspensionUnit(t *testing.T) {
	for _, valid := range []string{"HOURS", "DAYS", "WEEKS", "MONTHS"} {
		if _, err := ParseSuspensionUnit(valid); err != nil {
			t.Errorf("ParseSuspensionUnit(%q): %v", valid, err)
		}
	}
	for _, invalid := range []string{"", "hours", "YEARS", "FORTNIGHTS"} {
		if _, err := ParseSuspensionUnit(invalid); err == nil {
			t.Errorf("ParseSuspensionUnit(%q) should fail", invalid)
		}
	}
}
