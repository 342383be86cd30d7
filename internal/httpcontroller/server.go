// Package httpcontroller assembles the echo server: middleware stack, error
// handling, routes and lifecycle.
package httpcontroller

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/christian-harsana/music-sheet-catalog-back-end/internal/api"
	"github.com/christian-harsana/music-sheet-catalog-back-end/internal/conf"
	"github.com/christian-harsana/music-sheet-catalog-back-end/internal/datastore"
	"github.com/christian-harsana/music-sheet-catalog-back-end/internal/logging"
	"github.com/christian-harsana/music-sheet-catalog-back-end/internal/security"
)

// Server wraps the echo instance and its dependencies.
type Server struct {
	Echo     *echo.Echo
	Settings *conf.Settings
	DS       datastore.Interface
	API      *api.Controller

	webLogger      *slog.Logger
	closeAccessLog func() error
}

// New assembles the HTTP server. The middleware order matters: logging sees
// every request, CORS and security headers run before the body is read, and
// recover converts panics into errors for the central handler.
func New(settings *conf.Settings, ds datastore.Interface, tokens *security.TokenManager) *Server {
	s := &Server{
		Echo:      echo.New(),
		Settings:  settings,
		DS:        ds,
		webLogger: logging.ForService("http"),
	}

	s.Echo.HideBanner = true
	s.Echo.HidePort = true
	s.Echo.Validator = api.NewRequestValidator()
	s.Echo.HTTPErrorHandler = api.NewHTTPErrorHandler(settings, s.webLogger)
	s.Echo.IPExtractor = echo.ExtractIPFromXFFHeader()

	s.initMiddleware()
	s.API = api.New(s.Echo, ds, settings, tokens)

	return s
}

func (s *Server) initMiddleware() {
	accessLogger, closeLog, err := logging.NewFileLogger("logs/web.log", "http", logging.ParseLevel(s.Settings.LogLevel))
	if err != nil {
		s.webLogger.Warn("Access log file unavailable, using default logger", "error", err)
		accessLogger = s.webLogger
	} else {
		s.closeAccessLog = closeLog
	}

	s.Echo.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogRemoteIP:  true,
		LogLatency:   true,
		LogUserAgent: true,
		LogValuesFunc: func(ctx echo.Context, v middleware.RequestLoggerValues) error {
			accessLogger.Info("Handled request",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"remote_ip", v.RemoteIP,
				"latency_ms", v.Latency.Milliseconds(),
				"user_agent", v.UserAgent,
			)
			return nil
		},
	}))

	s.Echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: s.Settings.CORS.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization},
	}))
	s.Echo.Use(middleware.Secure())
	s.Echo.Use(middleware.BodyLimit("1M"))
	s.Echo.Use(middleware.Recover())
}

// Start runs the HTTP server until it fails or is shut down.
func (s *Server) Start() error {
	addr := ":" + s.Settings.Port
	s.webLogger.Info("Starting HTTP server",
		"address", addr,
		"environment", s.Settings.Environment,
	)

	if err := s.Echo.Start(addr); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("starting server on %s: %w", addr, err)
	}
	return nil
}

// Shutdown drains in-flight requests, then releases the datastore and the
// access log file.
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s.webLogger.Info("Shutting down HTTP server")
	if err := s.Echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}

	if err := s.DS.Close(); err != nil {
		s.webLogger.Error("Failed to close datastore", "error", err)
	}
	if s.closeAccessLog != nil {
		if err := s.closeAccessLog(); err != nil {
			s.webLogger.Error("Failed to close access log", "error", err)
		}
	}
	return nil
}
