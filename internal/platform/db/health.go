package db

import (
	"context"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
)

// HealthHandler returns an echo handler reporting service and database
// health. The database check is bounded by a short timeout so a stalled
// pool cannot hang the probe.
func HealthHandler(pool *pgxpool.Pool, version string) echo.HandlerFunc {
	return func(c echo.Context) error {
		resp := map[string]interface{}{
			"status":  "ok",
			"version": version,
		}

		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()

		if err := pool.Ping(ctx); err != nil {
			resp["status"] = "degraded"
			resp["database"] = "unreachable"
			return c.JSON(http.StatusServiceUnavailable, resp)
		}

		stat := pool.Stat()
		resp["database"] = map[string]interface{}{
			"total_conns":    stat.TotalConns(),
			"idle_conns":     stat.IdleConns(),
			"acquired_conns": stat.AcquiredConns(),
		}
		return c.JSON(http.StatusOK, resp)
	}
}
