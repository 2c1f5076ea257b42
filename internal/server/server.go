// Package server exposes the milling station over a small JSON API.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/piwi3910/MillPool/internal/engine"
	"github.com/piwi3910/MillPool/internal/logger"
	"github.com/piwi3910/MillPool/internal/model"
	"github.com/piwi3910/MillPool/internal/project"
)

// Server serves the pool, order and queue endpoints for one backlog.
type Server struct {
	backlog  *project.Backlog
	selector *engine.Selector
	settings model.PoolSettings
	now      func() time.Time
}

// New creates a server for the backlog using the given pool settings.
func New(backlog *project.Backlog, settings model.PoolSettings) *Server {
	settings = settings.Normalize()
	return &Server{
		backlog:  backlog,
		selector: engine.New(settings),
		settings: settings,
		now:      model.Today,
	}
}

// Router builds the gin engine with every route registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	api := r.Group("/api")
	api.GET("/pool", s.getPool)
	api.POST("/pool/complete", s.completePool)
	api.GET("/pool/chart", s.getPoolChart)
	api.GET("/pool/pdf", s.getPoolPDF)
	api.GET("/orders", s.getOrders)
	api.POST("/orders/:id/stage", s.setStage)
	api.GET("/queues/polishing", s.getPolishingQueue)
	api.GET("/queues/monitor", s.getMonitorQueue)
	return r
}

// Run listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.L().Info("server.listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		logger.L().Info("server.stopping", "addr", addr)
		return srv.Shutdown(shutdownCtx)
	}
}

// requestLogger logs each request through the application logger.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.L().Debug("http.request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start).String())
	}
}

// writeError maps store errors to HTTP status codes.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case model.IsKind(err, model.KindNotFound):
		status = http.StatusNotFound
	case model.IsKind(err, model.KindInvalidData):
		status = http.StatusBadRequest
	case errors.Is(err, model.ErrEmptyPool):
		status = http.StatusNotFound
	}
	if status == http.StatusInternalServerError {
		logger.L().Error("http.failed", "path", c.FullPath(), "err", err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
