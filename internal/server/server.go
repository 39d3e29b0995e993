package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/leonardinius/goexpr/internal/config"
)

const (
	GracefulShutdownTimeout = 10 * time.Second

	// BodyEnvelopeBytes covers the JSON keys and options around the source.
	BodyEnvelopeBytes = 1024
	// JSON escapes a control character as \u00XX, six bytes per source byte at worst.
	jsonEscapeFactor = 6
)

type Server struct {
	Echo *echo.Echo

	cfg    *config.Config
	logger *slog.Logger
}

func New(cfg *config.Config, logger *slog.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		Echo:   e,
		cfg:    cfg,
		logger: logger,
	}

	s.setupMiddlewares()
	NewExprRouter(e, cfg).Bind()

	return s
}

func (s *Server) setupMiddlewares() {
	s.Echo.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	s.Echo.Use(RequestLogger(WithLogger(s.logger)))
	s.Echo.Use(middleware.Recover())
	s.Echo.Use(middleware.BodyLimit(BodyLimit(s.cfg.Server.MaxSourceBytes)))
	s.Echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: s.cfg.Server.CorsOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost},
	}))
}

// BodyLimit sizes the request body cap for sources of up to maxSourceBytes.
func BodyLimit(maxSourceBytes int) string {
	return strconv.Itoa(maxSourceBytes*jsonEscapeFactor + BodyEnvelopeBytes)
}

// Start serves until ctx is done or an interrupt arrives, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting server", "port", s.cfg.Server.Port)
		if err := s.Echo.Start(":" + s.cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), GracefulShutdownTimeout)
	defer cancel()

	return s.Echo.Shutdown(ctx)
}
