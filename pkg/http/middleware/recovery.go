package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	applogger "github.com/cuongccna/tradingjournalai-sub000/pkg/logger"

	"github.com/labstack/echo/v4"
)

// Recover returns recovery middleware that answers a panic with a 500 envelope.
func Recover(l *applogger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					perr, ok := r.(error)
					if !ok {
						perr = fmt.Errorf("%v", r)
					}
					if l != nil {
						l.Error("panic recovered",
							applogger.String("path", c.Path()),
							applogger.Error(perr),
							applogger.String("stack", string(debug.Stack())),
						)
					}
					err = c.JSON(http.StatusInternalServerError, map[string]interface{}{
						"success": false,
						"message": "Internal Server Error",
					})
				}
			}()
			return next(c)
		}
	}
}
