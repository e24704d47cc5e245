// Package httpapi exposes the schedule over a JSON HTTP API.
package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ersonp/fightnight/internal/application/handlers"
	"github.com/ersonp/fightnight/internal/domain/entities"
	"github.com/ersonp/fightnight/internal/domain/services"
	"github.com/ersonp/fightnight/internal/infrastructure/config"
)

const requestIDHeader = "X-Request-ID"

// Server serves the schedule API.
type Server struct {
	engine   *gin.Engine
	srv      *http.Server
	schedule *handlers.ScheduleHandler
	timeout  time.Duration
	logger   *slog.Logger
}

// NewServer builds the router. metrics may be nil to disable /metrics.
func NewServer(cfg *config.Config, schedule *handlers.ScheduleHandler, metrics http.Handler, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), requestID(), accessLog(logger))

	s := &Server{
		engine:   r,
		schedule: schedule,
		timeout:  cfg.Timeout,
		logger:   logger,
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/events", s.handleEvents)
	r.GET("/promotions", s.handlePromotions)
	r.POST("/refresh", s.handleRefresh)
	if metrics != nil {
		r.GET("/metrics", gin.WrapH(metrics))
	}

	s.srv = &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the router, e.g. for httptest.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// ListenAndServe blocks until the server stops. http.ErrServerClosed is not an error.
func (s *Server) ListenAndServe() error {
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func (s *Server) handleEvents(c *gin.Context) {
	promotion, ok := promotionParam(c)
	if !ok {
		return
	}

	ctx, cancel := s.requestContext(c)
	defer cancel()

	result, err := s.schedule.Handle(ctx, promotion)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) handlePromotions(c *gin.Context) {
	ctx, cancel := s.requestContext(c)
	defer cancel()

	result, err := s.schedule.Handle(ctx, "")
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"promotions": result.Promotions,
		"status":     result.Status,
		"fetchedAt":  result.FetchedAt,
	})
}

func (s *Server) handleRefresh(c *gin.Context) {
	promotion, ok := promotionParam(c)
	if !ok {
		return
	}

	ctx, cancel := s.requestContext(c)
	defer cancel()

	result, err := s.schedule.HandleRefresh(ctx, promotion)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(c.Request.Context())
	}
	return context.WithTimeout(c.Request.Context(), s.timeout)
}

// writeError maps domain errors to status codes.
func (s *Server) writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, services.ErrDataUnavailable) {
		status = http.StatusServiceUnavailable
	}
	s.logger.Error("request failed",
		"path", c.FullPath(),
		"request_id", c.GetString(requestIDHeader),
		"err", err,
	)
	c.JSON(status, gin.H{"error": err.Error()})
}

func promotionParam(c *gin.Context) (entities.Promotion, bool) {
	raw := c.Query("promotion")
	if raw == "" {
		return "", true
	}
	p, err := entities.ParsePromotion(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", false
	}
	return p, true
}

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDHeader, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func accessLog(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"request_id", c.GetString(requestIDHeader),
		)
	}
}
