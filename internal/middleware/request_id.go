package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const (
	// RequestIDHeader carries the correlation id in both directions.
	RequestIDHeader = echo.HeaderXRequestID

	// RequestIDKey is where the id lives in the Echo context.
	RequestIDKey = "request_id"
)

// RequestID tags every request with an id, reusing an incoming
// X-Request-ID and minting a UUID otherwise. The id is echoed on the
// response and read back by the request logger.
func (global *GlobalMiddlewares) RequestID() echo.MiddlewareFunc {
	return middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator:    uuid.NewString,
		TargetHeader: RequestIDHeader,
		RequestIDHandler: func(c echo.Context, id string) {
			c.Set(RequestIDKey, id)
		},
	})
}

// GetRequestID returns the id set by RequestID, or "" outside of it.
func GetRequestID(c echo.Context) string {
	id, _ := c.Get(RequestIDKey).(string)
	return id
}
