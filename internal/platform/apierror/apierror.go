// Package apierror defines the error body returned by every API endpoint
// and the echo error handler that produces it.
package apierror

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Response is the error envelope returned for every failed request.
type Response struct {
	ErrorCode string    `json:"errorCode"`
	Message   string    `json:"message"`
	Details   []string  `json:"details,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Path      string    `json:"path"`
}

// Error carries an HTTP status and a stable error code alongside the message.
// Services return these so handlers do not need to map status codes.
type Error struct {
	Status  int
	Code    string
	Message string
	Details []string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// New builds an Error with the given status, code and message.
func New(status int, code, message string) *Error {
	return &Error{Status: status, Code: code, Message: message}
}

// WithDetails returns a copy of the error with detail lines attached.
func (e *Error) WithDetails(details ...string) *Error {
	clone := *e
	clone.Details = append(clone.Details, details...)
	return &clone
}

// NotFound builds a 404 error for the named resource.
func NotFound(resource string) *Error {
	return &Error{
		Status:  http.StatusNotFound,
		Code:    "NOT_FOUND",
		Message: resource + " not found",
	}
}

// Conflict builds a 409 error.
func Conflict(code, message string) *Error {
	return &Error{Status: http.StatusConflict, Code: code, Message: message}
}

// BadRequest builds a 400 error.
func BadRequest(code, message string) *Error {
	return &Error{Status: http.StatusBadRequest, Code: code, Message: message}
}

// Unauthorized builds a 401 error.
func Unauthorized(message string) *Error {
	return &Error{Status: http.StatusUnauthorized, Code: "UNAUTHORIZED", Message: message}
}

// Forbidden builds a 403 error.
func Forbidden(code, message string) *Error {
	return &Error{Status: http.StatusForbidden, Code: code, Message: message}
}

// codeForStatus maps a bare HTTP status to a stable error code.
func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "BAD_REQUEST"
	case http.StatusUnauthorized:
		return "UNAUTHORIZED"
	case http.StatusForbidden:
		return "FORBIDDEN"
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusConflict:
		return "CONFLICT"
	case http.StatusRequestEntityTooLarge:
		return "PAYLOAD_TOO_LARGE"
	case http.StatusTooManyRequests:
		return "RATE_LIMITED"
	default:
		return "INTERNAL_ERROR"
	}
}

// HTTPErrorHandler converts any error escaping a handler into a Response
// body. Unrecognized errors become opaque 500s so internals never leak.
func HTTPErrorHandler(logger zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		resp := Response{
			Timestamp: time.Now().UTC(),
			Path:      c.Request().URL.Path,
		}

		var apiErr *Error
		var httpErr *echo.HTTPError
		status := http.StatusInternalServerError

		switch {
		case errors.As(err, &apiErr):
			status = apiErr.Status
			resp.ErrorCode = apiErr.Code
			resp.Message = apiErr.Message
			resp.Details = apiErr.Details
		case errors.As(err, &httpErr):
			status = httpErr.Code
			resp.ErrorCode = codeForStatus(status)
			resp.Message = fmt.Sprintf("%v", httpErr.Message)
		default:
			resp.ErrorCode = "INTERNAL_ERROR"
			resp.Message = "internal server error"
		}

		if status >= http.StatusInternalServerError {
			logger.Error().
				Err(err).
				Str("path", resp.Path).
				Msg("request failed")
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}
		_ = c.JSON(status, resp)
	}
}
