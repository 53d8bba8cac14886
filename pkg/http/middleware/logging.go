package middleware

import (
	"time"

	"StratLab/pkg/logger"

	"github.com/labstack/echo/v4"
)

// RequestLogging logs one line per HTTP request. 5xx responses log at error
// level, 4xx at warn, the rest at debug.
func RequestLogging(l *logger.Logger) echo.MiddlewareFunc {
	if l == nil {
		l = logger.Nop()
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			status := c.Response().Status
			fields := []logger.Field{
				logger.String("request_id", GetRequestID(c)),
				logger.String("method", req.Method),
				logger.String("uri", req.RequestURI),
				logger.String("remote", c.RealIP()),
				logger.Int("status", status),
				logger.Int64("bytes", c.Response().Size),
				logger.Duration("latency", time.Since(start)),
			}
			if err != nil {
				fields = append(fields, logger.Error(err))
			}
			switch {
			case status >= 500:
				l.Error("http.request", fields...)
			case status >= 400:
				l.Warn("http.request", fields...)
			default:
				l.Debug("http.request", fields...)
			}
			return nil
		}
	}
}
