// Package gin exposes the insight analyzer over HTTP with the gin router.
package gin

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/fwojciec/insight"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// RequestIDHeader carries the request ID in both directions.
const RequestIDHeader = "X-Request-ID"

// DefaultShutdownTimeout bounds how long in-flight requests may finish
// after the server context is cancelled.
const DefaultShutdownTimeout = 10 * time.Second

// Server serves the analyze API.
type Server struct {
	analyzer insight.Analyzer
	logger   *slog.Logger
	router   *gin.Engine

	// ShutdownTimeout overrides DefaultShutdownTimeout when positive.
	ShutdownTimeout time.Duration
}

// NewServer creates a Server and registers its routes.
func NewServer(analyzer insight.Analyzer, logger *slog.Logger) *Server {
	s := &Server{
		analyzer: analyzer,
		logger:   logger,
		router:   gin.New(),
	}
	s.router.Use(s.requestID(), gin.Recovery())
	s.router.GET("/healthz", s.handleHealth)
	s.router.POST("/api/analyze", s.handleAnalyze)
	return s
}

// Handler returns the HTTP handler serving all routes.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe listens on addr and serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		timeout := s.ShutdownTimeout
		if timeout <= 0 {
			timeout = DefaultShutdownTimeout
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleAnalyze(c *gin.Context) {
	var req insight.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		s.writeError(c, insight.WrapErrorf(err, insight.EINVALID, "invalid request body"))
		return
	}

	res, err := s.analyzer.Analyze(c.Request.Context(), &req)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) writeError(c *gin.Context, err error) {
	c.JSON(StatusCode(insight.ErrorCode(err)), gin.H{"error": insight.ErrorMessage(err)})
}

// StatusCode maps an application error code to an HTTP status.
func StatusCode(code string) int {
	switch code {
	case insight.EINVALID, insight.EEXTRACT:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// requestID tags each request with an ID and logs it once the handler
// has completed.
func (s *Server) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		begin := time.Now()
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(RequestIDHeader, id)

		c.Next()

		s.logger.Info("request",
			"request_id", id,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(begin),
		)
	}
}
