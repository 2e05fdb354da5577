package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// unauthorizedBody mirrors the apierror envelope. It is written directly
// because the filter short-circuits before the error handler runs.
type unauthorizedBody struct {
	ErrorCode string    `json:"errorCode"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Path      string    `json:"path"`
}

// CookieAuth reads the session cookie and binds the principal to the request
// context. Requests without a cookie pass through unauthenticated so public
// routes keep working; requests with a bad cookie are rejected immediately.
func CookieAuth(issuer *TokenIssuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(CookieName)
			if err != nil || cookie.Value == "" {
				return next(c)
			}

			principal, err := issuer.Parse(cookie.Value)
			if err != nil {
				msg := "invalid or expired token"
				if errors.Is(err, ErrExpiredToken) {
					msg = "token expired"
				}
				return c.JSON(http.StatusUnauthorized, unauthorizedBody{
					ErrorCode: "UNAUTHORIZED",
					Message:   msg,
					Timestamp: time.Now().UTC(),
					Path:      c.Request().URL.Path,
				})
			}

			ctx := WithPrincipal(c.Request().Context(), principal)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}
