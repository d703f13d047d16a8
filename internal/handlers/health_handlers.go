package handlers

import (
	"context"
	"net/http"

	"dealerstock/internal/caching"

	"github.com/labstack/echo/v4"
)

// Pinger is satisfied by pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandlers exposes liveness and readiness probes.
type HealthHandlers struct {
	db    Pinger
	cache caching.CacheService
}

func NewHealthHandlers(db Pinger, cache caching.CacheService) *HealthHandlers {
	return &HealthHandlers{db: db, cache: cache}
}

// HealthCheck handles GET /health
func (h *HealthHandlers) HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// ReadinessCheck handles GET /ready. The database is required; the cache
// is reported but never fails readiness.
func (h *HealthHandlers) ReadinessCheck(c echo.Context) error {
	ctx := c.Request().Context()

	checks := map[string]string{"database": "ok"}
	status := http.StatusOK
	if err := h.db.Ping(ctx); err != nil {
		checks["database"] = err.Error()
		status = http.StatusServiceUnavailable
	}
	if h.cache != nil {
		checks["cache"] = "ok"
		if err := h.cache.Ping(ctx); err != nil {
			checks["cache"] = err.Error()
		}
	}
	return c.JSON(status, checks)
}
