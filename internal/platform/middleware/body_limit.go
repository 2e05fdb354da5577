package middleware

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

// BodyLimit returns middleware that rejects request bodies larger than the
// given limit. The limit accepts a plain byte count or a suffix of K, M or G
// (e.g. "2M").
func BodyLimit(limit string) echo.MiddlewareFunc {
	maxBytes, err := parseLimit(limit)
	if err != nil {
		panic(fmt.Sprintf("middleware: invalid body limit %q: %v", limit, err))
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			if req.ContentLength > maxBytes {
				return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "request body too large")
			}

			req.Body = &limitedReadCloser{
				reader: io.LimitReader(req.Body, maxBytes+1),
				closer: req.Body,
				limit:  maxBytes,
			}
			return next(c)
		}
	}
}

// limitedReadCloser wraps a body reader and reports an error once more than
// limit bytes have been read.
type limitedReadCloser struct {
	reader io.Reader
	closer io.Closer
	limit  int64
	read   int64
}

func (l *limitedReadCloser) Read(p []byte) (int, error) {
	n, err := l.reader.Read(p)
	l.read += int64(n)
	if l.read > l.limit {
		return n, echo.NewHTTPError(http.StatusRequestEntityTooLarge, "request body too large")
	}
	return n, err
}

func (l *limitedReadCloser) Close() error {
	return l.closer.Close()
}

func parseLimit(limit string) (int64, error) {
	limit = strings.TrimSpace(strings.ToUpper(limit))
	if limit == "" {
		return 0, fmt.Errorf("empty limit")
	}

	multiplier := int64(1)
	switch limit[len(limit)-1] {
	case 'K':
		multiplier = 1 << 10
		limit = limit[:len(limit)-1]
	case 'M':
		multiplier = 1 << 20
		limit = limit[:len(limit)-1]
	case 'G':
		multiplier = 1 << 30
		limit = limit[:len(limit)-1]
	}

	n, err := strconv.ParseInt(limit, 10, 64)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, fmt.Errorf("limit must be positive")
	}
	return n * multiplier, nil
}
