package api

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
)

// HealthChecker reports the health of one backing component.
type HealthChecker interface {
	Health(ctx context.Context) map[string]interface{}
}

// HealthHandler aggregates component health into one endpoint.
type HealthHandler struct {
	components map[string]HealthChecker
}

// NewHealthHandler creates the handler. Nil checkers are skipped so
// optional components like the cache can be left unwired.
func NewHealthHandler(components map[string]HealthChecker) *HealthHandler {
	filtered := make(map[string]HealthChecker)
	for name, checker := range components {
		if checker != nil {
			filtered[name] = checker
		}
	}
	return &HealthHandler{components: filtered}
}

// Check reports the status of every wired component.
func (h *HealthHandler) Check(c echo.Context) error {
	ctx := c.Request().Context()

	status := "ok"
	components := make(map[string]map[string]interface{}, len(h.components))
	for name, checker := range h.components {
		health := checker.Health(ctx)
		components[name] = health
		if s, ok := health["status"].(string); ok && s != "up" {
			status = "degraded"
		}
	}

	code := http.StatusOK
	if status != "ok" {
		code = http.StatusServiceUnavailable
	}

	return c.JSON(code, echo.Map{
		"status":     status,
		"components": components,
	})
}
