package middleware

import (
	"time"

	"retroFinder/business/finder"
	"retroFinder/pkg/logger"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const HeaderRequestID = "X-Request-ID"

// Trace takes the caller's request id or mints one, echoes it back and
// carries it on the request context so service logs can be correlated.
func Trace() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			traceID := req.Header.Get(HeaderRequestID)
			if traceID == "" {
				traceID = uuid.NewString()
			}

			c.Response().Header().Set(HeaderRequestID, traceID)
			c.SetRequest(req.WithContext(finder.WithTraceID(req.Context(), traceID)))

			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			logger.Info("http_request",
				"trace_id", traceID,
				"method", req.Method,
				"path", c.Path(),
				"status", c.Response().Status,
				"latency_ms", time.Since(start).Milliseconds(),
			)

			return nil
		}
	}
}
