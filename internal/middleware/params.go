package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/frases/internal/errs"
)

// SingleSegmentParams answers 404 when a path parameter spans more than one
// segment. Echo lets a trailing :param swallow the rest of the path, so
// without it /frases/1/extra would reach the /frases/:id handler with
// id "1/extra".
func SingleSegmentParams() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			for _, v := range c.ParamValues() {
				if strings.Contains(v, "/") {
					return errs.NewRouteError()
				}
			}
			return next(c)
		}
	}
}
