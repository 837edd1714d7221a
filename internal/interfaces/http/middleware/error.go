package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ErrorHandlingOption options for error handling
type ErrorHandlingOption struct {
	Handler func(c echo.Context, err error)
	Logger  *zap.Logger
}

// ErrorHandling recover panics and turn unhandled handler errors into a
// uniform 500 response
func ErrorHandling(options ...*ErrorHandlingOption) echo.MiddlewareFunc {
	custom := &ErrorHandlingOption{
		Handler: func(c echo.Context, err error) {
			c.JSON(http.StatusInternalServerError, map[string]interface{}{
				"code":  http.StatusInternalServerError,
				"title": http.StatusText(http.StatusInternalServerError),
			})
		},
	}
	if len(options) > 0 {
		option := options[0]
		if option.Handler != nil {
			custom.Handler = option.Handler
		}
		if option.Logger != nil {
			custom.Logger = option.Logger
		}
	}
	handler := custom.Handler
	logger := custom.Logger
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			defer func() {
				if any := recover(); any != nil {
					err, ok := any.(error)
					if !ok {
						panic(any)
					}
					if logger != nil {
						logger.Error(err.Error(),
							zap.String("url.path", c.Request().RequestURI),
							zap.String("client.address", c.Request().RemoteAddr),
							zap.String("http.request.method", c.Request().Method),
							zap.Int64("http.request.body.bytes", c.Request().ContentLength),
							zap.Strings("route.params.name", c.ParamNames()),
							zap.Strings("route.params.value", c.ParamValues()),
						)
					}
					handler(c, err)
				}
			}()
			if err := next(c); err != nil {
				if v, ok := err.(*echo.HTTPError); ok && v.Code == http.StatusNotFound {
					return c.NoContent(v.Code)
				}
				handler(c, err)
			}
			return nil
		}
	}
}
