package http

import (
	"strconv"
	"time"

	"laundry/internal/pkg/observability"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// requestLogger puts a request scoped logger on the context and logs one line
// per request once the handler is done.
func requestLogger(base *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			logger := base.With(
				zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
				zap.String("method", req.Method),
				zap.String("path", req.URL.Path),
			)
			ctx := observability.WithLogger(req.Context(), logger)
			c.SetRequest(req.WithContext(ctx))

			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			fields := []zap.Field{
				zap.Int("status", c.Response().Status),
				zap.Duration("latency", time.Since(start)),
				zap.Int64("bytes_out", c.Response().Size),
			}
			fields = append(fields, observability.TraceFields(c.Request().Context())...)
			switch {
			case c.Response().Status >= 500:
				logger.Error("Request served", fields...)
			case c.Response().Status >= 400:
				logger.Warn("Request served", fields...)
			default:
				logger.Info("Request served", fields...)
			}
			return nil
		}
	}
}

// requestMetrics labels by route template so that ids do not explode cardinality.
func requestMetrics(metrics *observability.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			method := c.Request().Method
			metrics.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(c.Response().Status)).Inc()
			metrics.HTTPLatency.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
			return nil
		}
	}
}
