package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/frases/internal/middleware"
	"github.com/deppfellow/frases/internal/server"
)

// HealthHandler exposes a "system" endpoint that load balancers and uptime
// monitors use to verify the service is alive and the store is reachable.
type HealthHandler struct {
	Handler
}

// NewHealthHandler constructs a HealthHandler with access to shared app dependencies.
func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

// HealthCheck is the result of one dependency check.
type HealthCheck struct {
	Status       string `json:"status"`
	Driver       string `json:"driver,omitempty"`
	ResponseTime string `json:"response_time"`
	Error        string `json:"error,omitempty"`
}

// HealthResponse is the body of GET /status.
type HealthResponse struct {
	Status      string                 `json:"status"`
	Timestamp   time.Time              `json:"timestamp"`
	Environment string                 `json:"environment"`
	Checks      map[string]HealthCheck `json:"checks"`
}

// CheckHealth returns system health status and dependency checks.
//
// It returns:
//   - 200 OK if all checks pass
//   - 503 Service Unavailable if any check fails
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	response := HealthResponse{
		Status:      "healthy",
		Timestamp:   time.Now().UTC(),
		Environment: h.server.Config.Primary.Env,
		Checks:      map[string]HealthCheck{},
	}

	// ---------------- Database connectivity check ----------------------------
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.server.Config.Health.Timeout)
	defer cancel()

	dbStart := time.Now()
	if err := h.server.DB.Ping(ctx); err != nil {
		response.Checks["database"] = HealthCheck{
			Status:       "unhealthy",
			Driver:       h.server.DB.Driver(),
			ResponseTime: time.Since(dbStart).String(),
			Error:        err.Error(),
		}
		response.Status = "unhealthy"

		logger.Error().
			Err(err).
			Dur("response_time", time.Since(dbStart)).
			Msg("database health check failed")
	} else {
		response.Checks["database"] = HealthCheck{
			Status:       "healthy",
			Driver:       h.server.DB.Driver(),
			ResponseTime: time.Since(dbStart).String(),
		}

		logger.Debug().
			Dur("response_time", time.Since(dbStart)).
			Msg("database health check passed")
	}

	if response.Status != "healthy" {
		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("health check failed")

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	return c.JSON(http.StatusOK, response)
}
