package server

import (
	"context"
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type LoggerOpt func(*middleware.RequestLoggerConfig)

func WithLogger(logger *slog.Logger) LoggerOpt {
	return func(c *middleware.RequestLoggerConfig) {
		c.LogValuesFunc = logValues(logger)
	}
}

// RequestLogger logs one line per request through slog.
func RequestLogger(opts ...LoggerOpt) echo.MiddlewareFunc {
	o := defaultLoggerOpt()
	for _, opt := range opts {
		opt(&o)
	}

	return middleware.RequestLoggerWithConfig(o)
}

func defaultLoggerOpt() middleware.RequestLoggerConfig {
	return middleware.RequestLoggerConfig{
		LogStatus:     true,
		LogLatency:    true,
		LogURI:        true,
		LogMethod:     true,
		LogRequestID:  true,
		LogError:      true,
		HandleError:   true,
		LogValuesFunc: logValues(slog.Default()),
	}
}

func logValues(logger *slog.Logger) func(c echo.Context, v middleware.RequestLoggerValues) error {
	return func(c echo.Context, v middleware.RequestLoggerValues) error {
		if v.Error == nil {
			logger.LogAttrs(context.Background(), slog.LevelInfo, "REQUEST",
				slog.String("id", v.RequestID),
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			)
		} else {
			logger.LogAttrs(context.Background(), slog.LevelError, "REQUEST_ERROR",
				slog.String("id", v.RequestID),
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.String("err", v.Error.Error()),
			)
		}
		return nil
	}
}
