package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/penwyp/go-dive-monitor/internal/application/top"
	"github.com/penwyp/go-dive-monitor/internal/util"
)

const shutdownTimeout = 5 * time.Second

// Dashboard is the part of the session controller the API reads and drives
type Dashboard interface {
	Source() string
	View() top.View
	Select(date string) error
	RequestRefresh() bool
	Retry() bool
	Summary(ctx context.Context, date string) (string, string, error)
}

// Server exposes the dashboard state as a small JSON API
type Server struct {
	dashboard Dashboard
	router    *gin.Engine
}

// NewServer creates the API server and registers its routes
func NewServer(dashboard Dashboard) *Server {
	router := gin.New()
	router.Use(gin.Recovery(), RequestIDMiddleware(), LoggingMiddleware())

	s := &Server{
		dashboard: dashboard,
		router:    router,
	}

	router.GET("/healthz", s.handleHealth)

	api := router.Group("/api")
	{
		api.GET("/state", s.handleState)
		api.GET("/dates", s.handleDates)
		api.GET("/records", s.handleRecords)
		api.GET("/stats", s.handleStats)
		api.GET("/summary", s.handleSummary)
		api.PUT("/selection", s.handleSelect)
		api.POST("/refresh", s.handleRefresh)
		api.POST("/retry", s.handleRetry)
	}

	return s
}

// Handler returns the underlying http.Handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		util.LogInfo("API server listening", util.F("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	util.LogInfo("API server stopped")
	return nil
}
