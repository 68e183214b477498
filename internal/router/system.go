package router

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/frases/internal/handler"
)

// registerSystemRoutes registers endpoints that are not part of the
// phrase API.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	// Health status endpoint (used by load balancers and monitors).
	r.Match(readMethods, "/status", h.Health.CheckHealth)
}
