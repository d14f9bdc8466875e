package ratelimit

import (
	xhttp "github.com/cuongccna/tradingjournalai-sub000/pkg/http"

	"github.com/labstack/echo/v4"
)

// Middleware rejects requests over the per-client budget with 429.
// Clients are keyed by userId when present, otherwise by IP.
func Middleware(l *Limiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if l == nil {
				return next(c)
			}
			key := c.QueryParam("userId")
			if key == "" {
				key = "ip:" + c.RealIP()
			}
			if !l.Allow(key) {
				c.Response().Header().Set("Retry-After", "1")
				return xhttp.TooManyRequestsResponse(c)
			}
			return next(c)
		}
	}
}
