// Package api exposes the HTTP surface: diagnosis submission, catalog
// access, diagnosis history, the chat assistant and health checks.
package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/Pratham9108106876/farm/internal/pkg/config"
	apperrors "github.com/Pratham9108106876/farm/internal/pkg/errors"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Server wraps the echo instance and its configuration.
type Server struct {
	echo   *echo.Echo
	cfg    *config.Config
	logger *slog.Logger
}

// NewServer creates the HTTP server with middleware and error
// handling configured.
func NewServer(cfg *config.Config, logger *slog.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORS())
	e.Use(middleware.BodyLimit(fmt.Sprintf("%dM", cfg.MaxUploadSize)))

	e.HTTPErrorHandler = newHTTPErrorHandler(cfg.IsDevelopment(), logger)

	return &Server{
		echo:   e,
		cfg:    cfg,
		logger: logger,
	}
}

// RegisterRoutes mounts all handlers under /api/v1 and serves stored
// uploads statically.
func (s *Server) RegisterRoutes(h *Handlers, uploadsDir string) {
	v1 := s.echo.Group("/api/v1")

	v1.POST("/diagnose/online", h.Diagnose.Online)
	v1.POST("/diagnose/offline", h.Diagnose.Offline)

	v1.GET("/crops", h.Catalog.ListCrops)
	v1.POST("/catalog/import", h.Catalog.Import)

	v1.GET("/diagnoses", h.Diagnoses.List)
	v1.POST("/diagnoses", h.Diagnoses.Create)

	v1.POST("/chat", h.Chat.Chat)

	v1.GET("/health", h.Health.Check)
	s.echo.GET("/health", h.Health.Check)

	if uploadsDir != "" {
		s.echo.Static("/uploads", uploadsDir)
	}
}

// Start begins serving and blocks until shutdown.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%s", s.cfg.ServerHost, s.cfg.ServerPort)
	s.logger.Info("http server starting", slog.String("addr", addr))

	if err := s.echo.Start(addr); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("http server shutting down")
	return s.echo.Shutdown(ctx)
}

// Handlers bundles every route handler for registration.
type Handlers struct {
	Diagnose  *DiagnoseHandler
	Catalog   *CatalogHandler
	Diagnoses *DiagnosesHandler
	Chat      *ChatHandler
	Health    *HealthHandler
}

// newHTTPErrorHandler maps application errors onto HTTP responses.
// Development mode exposes the underlying error detail.
func newHTTPErrorHandler(isDev bool, logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		payload := echo.Map{"error": "Internal server error"}

		if appErr, ok := apperrors.GetAppError(err); ok {
			status = appErr.StatusCode
			payload = echo.Map{
				"error":   string(appErr.Code),
				"message": appErr.Message,
			}
			if len(appErr.Details) > 0 {
				payload["details"] = appErr.Details
			}
			if isDev && appErr.Err != nil {
				payload["detail"] = appErr.Err.Error()
			}
		} else if httpErr, ok := err.(*echo.HTTPError); ok {
			status = httpErr.Code
			payload = echo.Map{
				"error":   http.StatusText(httpErr.Code),
				"message": fmt.Sprintf("%v", httpErr.Message),
			}
		} else if isDev {
			payload["message"] = err.Error()
		}

		if status >= http.StatusInternalServerError {
			logger.Error("request failed",
				slog.String("method", c.Request().Method),
				slog.String("path", c.Request().URL.Path),
				slog.Int("status", status),
				slog.Any("error", err))
		}

		if jsonErr := c.JSON(status, payload); jsonErr != nil {
			logger.Error("failed to write error response",
				slog.Any("error", jsonErr))
		}
	}
}
