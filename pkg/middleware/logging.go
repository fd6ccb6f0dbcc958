package middleware

import (
	"time"

	"goodwill-valuation/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// RequestLogger attaches a request-scoped logger to the request context and
// writes one access line per request.
func RequestLogger(log *logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()

			requestID := req.Header.Get(echo.HeaderXRequestID)
			if requestID == "" {
				requestID = c.Response().Header().Get(echo.HeaderXRequestID)
			}

			reqLog := log.With(zap.String("request_id", requestID))
			c.SetRequest(req.WithContext(logger.NewContext(req.Context(), reqLog)))

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			fields := []zap.Field{
				zap.String("method", req.Method),
				zap.String("path", c.Path()),
				zap.Int("status", c.Response().Status),
				zap.Duration("latency", time.Since(start)),
				zap.String("remote_ip", c.RealIP()),
			}
			switch {
			case c.Response().Status >= 500:
				reqLog.Error("request", fields...)
			case c.Response().Status >= 400:
				reqLog.Warn("request", fields...)
			default:
				reqLog.Info("request", fields...)
			}
			return nil
		}
	}
}
