package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func principalEcho(t *testing.T) echo.HandlerFunc {
	return func(c echo.Context) error {
		p, ok := PrincipalFrom(c.Request().Context())
		if !ok {
			return c.String(http.StatusOK, "anonymous")
		}
		return c.String(http.StatusOK, p.Email)
	}
}

func TestCookieAuthNoCookiePassesThrough(t *testing.T) {
	e := echo.New()
	issuer := newTestIssuer(t, time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := CookieAuth(issuer)(principalEcho(t))(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Body.String() != "anonymous" {
		t.Errorf("expected pass-through, got %q", rec.Body.String())
	}
}

func TestCookieAuthValidCookieBindsPrincipal(t *testing.T) {
	e := echo.New()
	issuer := newTestIssuer(t, time.Hour)
	token, err := issuer.Issue(uuid.New(), "nurse@clinic.org", []string{"ROLE_RECEPTIONIST"})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := CookieAuth(issuer)(principalEcho(t))(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Body.String() != "nurse@clinic.org" {
		t.Errorf("principal not bound, body = %q", rec.Body.String())
	}
}

func TestCookieAuthInvalidCookieShortCircuits(t *testing.T) {
	e := echo.New()
	issuer := newTestIssuer(t, time.Hour)

	reached := false
	probe := func(c echo.Context) error {
		reached = true
		return c.NoContent(http.StatusOK)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "garbage"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := CookieAuth(issuer)(probe)(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if reached {
		t.Error("handler reached despite invalid cookie")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestRequireAuthorityUnauthenticated(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := RequireAuthority("ROLE_ADMIN")(principalEcho(t))(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %v", err)
	}
}

func TestRequireAuthorityForbidden(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	ctx := WithPrincipal(req.Context(), &Principal{
		UserID:      uuid.New(),
		Email:       "p@clinic.org",
		Authorities: []string{"ROLE_PATIENT"},
	})
	req = req.WithContext(ctx)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := RequireAuthority("ROLE_ADMIN")(principalEcho(t))(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %v", err)
	}
}

func TestRequireAuthorityAnyOf(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	ctx := WithPrincipal(req.Context(), &Principal{
		UserID:      uuid.New(),
		Email:       "doc@clinic.org",
		Authorities: []string{"ROLE_PROFESSIONAL"},
	})
	req = req.WithContext(ctx)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := RequireAuthority("ROLE_ADMIN", "ROLE_PROFESSIONAL")(principalEcho(t))(c)
	if err != nil {
		t.Errorf("expected access granted, got %v", err)
	}
}
