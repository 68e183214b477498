package middleware

import (
	"github.com/deppfellow/frases/internal/server"
)

// Middlewares is a lightweight container that groups all middleware
// components used by the HTTP server.
type Middlewares struct {
	// Global holds CORS, body limit, request ids, request logging, recovery,
	// secure headers and the global error handler.
	Global *GlobalMiddlewares

	// ContextEnhancer enriches each request with a request-scoped logger.
	ContextEnhancer *ContextEnhancer
}

// NewMiddlewares constructs all middleware components using the application container.
func NewMiddlewares(s *server.Server) *Middlewares {
	return &Middlewares{
		Global:          NewGlobalMiddlewares(s),
		ContextEnhancer: NewContextEnhancer(s),
	}
}
