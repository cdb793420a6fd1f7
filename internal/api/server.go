// Package api exposes the service over HTTP.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"mcoudert/budget-engine/internal/errs"
	"mcoudert/budget-engine/internal/service"
)

var log = logrus.New()

// SetLogger allows setting a configured logger.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// Server wraps the echo instance and the service it fronts.
type Server struct {
	echo      *echo.Echo
	svc       *service.Service
	connector func(ctx context.Context) []service.SourceResult
}

// NewServer builds the HTTP server. fullLoad runs the configured source
// connectors on demand; it may be nil when no connectors are configured.
func NewServer(svc *service.Service, fullLoad func(ctx context.Context) []service.SourceResult) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.WithFields(logrus.Fields{
				"method": v.Method,
				"uri":    v.URI,
				"status": v.Status,
			}).Info("Request")
			return nil
		},
	}))

	s := &Server{echo: e, svc: svc, connector: fullLoad}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.echo.GET("/status", s.handleStatus)
	s.echo.GET("/transactions", s.handleTransactions)
	s.echo.PUT("/categorize", s.handleCategorize)
	s.echo.PUT("/categorize_multiple", s.handleCategorizeMultiple)
	s.echo.PUT("/auto_categorize", s.handleAutoCategorize)
	s.echo.GET("/pivot_data", s.handlePivotData)
	s.echo.GET("/total", s.handleTotal)
	s.echo.GET("/category_spend", s.handleCategorySpend)
	s.echo.GET("/full_load", s.handleFullLoad)
}

// Start serves on the given port until the listener fails or Shutdown is
// called.
func (s *Server) Start(port int) error {
	addr := fmt.Sprintf(":%d", port)
	log.WithField("addr", addr).Info("HTTP server listening")
	if err := s.echo.Start(addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return s.echo.Shutdown(ctx)
}

// Handler exposes the underlying http.Handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// errorResponse is the uniform error body.
type errorResponse struct {
	Error string `json:"error"`
}

// writeError maps the service error taxonomy onto status codes: rejected
// input is the caller's fault, an unreachable source is the upstream's,
// everything else is ours.
func writeError(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errs.IsInvalidArgument(err):
		status = http.StatusBadRequest
	case errs.IsSourceUnavailable(err):
		status = http.StatusBadGateway
	}
	if status == http.StatusInternalServerError {
		log.WithError(err).Error("Request failed")
	}
	return c.JSON(status, errorResponse{Error: err.Error()})
}
