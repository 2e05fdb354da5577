package auth

import (
	"errors"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestIssuer(t *testing.T, ttl time.Duration) *TokenIssuer {
	t.Helper()
	issuer, err := NewTokenIssuer(testSecret, ttl)
	if err != nil {
		t.Fatalf("NewTokenIssuer: %v", err)
	}
	return issuer
}

func TestIssueParseRoundTrip(t *testing.T) {
	issuer := newTestIssuer(t, time.Hour)
	userID := uuid.New()
	authorities := []string{"ROLE_ADMIN", "PATIENT_READ", "PATIENT_WRITE"}

	token, err := issuer.Issue(userID, "admin@clinic.org", authorities)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	p, err := issuer.Parse(token)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if p.UserID != userID {
		t.Errorf("UserID = %v, want %v", p.UserID, userID)
	}
	if p.Email != "admin@clinic.org" {
		t.Errorf("Email = %q", p.Email)
	}

	got := append([]string(nil), p.Authorities...)
	want := append([]string(nil), authorities...)
	sort.Strings(got)
	sort.Strings(want)
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("Authorities = %v, want %v", got, want)
	}
}

func TestParseRejectsExpired(t *testing.T) {
	issuer := newTestIssuer(t, time.Millisecond)
	token, err := issuer.Issue(uuid.New(), "a@b.c", nil)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	time.Sleep(10 * time.Millisecond)

	if _, err := issuer.Parse(token); !errors.Is(err, ErrExpiredToken) {
		t.Errorf("expected ErrExpiredToken, got %v", err)
	}
}

func TestParseRejectsTamperedSignature(t *testing.T) {
	issuer := newTestIssuer(t, time.Hour)
	token, err := issuer.Issue(uuid.New(), "a@b.c", []string{"ROLE_PATIENT"})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	tampered := token[:len(token)-2] + "xx"
	if _, err := issuer.Parse(tampered); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	issuer := newTestIssuer(t, time.Hour)
	other, err := NewTokenIssuer("ffffffffffffffffffffffffffffffff", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenIssuer: %v", err)
	}

	token, err := issuer.Issue(uuid.New(), "a@b.c", nil)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := other.Parse(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	issuer := newTestIssuer(t, time.Hour)
	if _, err := issuer.Parse("not.a.token"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestNewTokenIssuerRejectsShortSecret(t *testing.T) {
	if _, err := NewTokenIssuer("short", time.Hour); err == nil {
		t.Error("expected error for short secret")
	}
}

func TestEmptyAuthorities(t *testing.T) {
	issuer := newTestIssuer(t, time.Hour)
	token, err := issuer.Issue(uuid.New(), "a@b.c", nil)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	p, err := issuer.Parse(token)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(p.Authorities) != 0 {
		t.Errorf("expected no authorities, got %v", p.Authorities)
	}
}
