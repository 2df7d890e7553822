// Package status exposes the outcome of the classification run over HTTP.
package status

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-contrib/static"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mpromonet/tflite-letters/internal/pipeline"
)

// Store keeps the latest pipeline report. It is the pipeline's Sink.
type Store struct {
	mu     sync.RWMutex
	report pipeline.Report
	seen   bool
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) Publish(r pipeline.Report) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.report = r
	s.seen = true
}

// Latest returns the last published report, if any.
func (s *Store) Latest() (pipeline.Report, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.report, s.seen
}

// NewRouter builds the read-only status API. When staticDir is set, files
// in it are served from the root.
func NewRouter(store *Store, staticDir string, log *zap.SugaredLogger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(log))
	if staticDir != "" {
		r.Use(static.Serve("/", static.LocalFile(staticDir, false)))
	}

	api := r.Group("/api")
	api.GET("/state", func(c *gin.Context) {
		report, ok := store.Latest()
		if !ok {
			c.JSON(http.StatusOK, gin.H{"state": pipeline.Running})
			return
		}
		c.JSON(http.StatusOK, gin.H{"state": report.State, "error": report.Error, "at": report.At})
	})
	api.GET("/result", func(c *gin.Context) {
		report, ok := store.Latest()
		if !ok || report.Result == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "no result yet"})
			return
		}
		c.JSON(http.StatusOK, report)
	})
	return r
}

func requestLogger(log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debugw("http",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"elapsed", time.Since(start))
	}
}

// Server runs the status router in the background.
type Server struct {
	srv *http.Server
	log *zap.SugaredLogger
}

func NewServer(addr string, handler http.Handler, log *zap.SugaredLogger) *Server {
	return &Server{
		srv: &http.Server{Addr: addr, Handler: handler, ReadHeaderTimeout: 5 * time.Second},
		log: log,
	}
}

func (s *Server) Start() {
	go func() {
		s.log.Infow("status server listening", "addr", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Errorw("status server stopped", "error", err)
		}
	}()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
