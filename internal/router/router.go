// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/frases/internal/handler"
	"github.com/deppfellow/frases/internal/middleware"
	"github.com/deppfellow/frases/internal/server"
)

// NewRouter builds the Echo instance with every middleware and route.
//
// Unmatched paths and unregistered methods fall through to the global
// error handler, which answers 404 "Ruta no encontrada". Every GET route
// also answers HEAD.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true

	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middlewares.Global.RequestID(),
		// Needs the request id, and must run before anything that logs.
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
		middlewares.Global.BodyLimit(),
	)

	registerSystemRoutes(router, h)
	registerPhraseRoutes(router, h)
	registerCatalogRoutes(router, h)

	return router
}
