// Package web serves the trending data as JSON together with a small
// browser front end.
package web

import (
	"context"
	_ "embed"
	"fmt"
	"net/http"
	"time"

	"github.com/abdulachik/ghtrending/internal/metrics"
	"github.com/abdulachik/ghtrending/internal/trending"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

//go:embed static/index.html
var indexHTML []byte

// TrendingService is what the handlers need from the core.
type TrendingService interface {
	GetTrendingData(ctx context.Context, since trending.TimeRange) trending.Result
}

// Server holds the router and its dependencies.
type Server struct {
	service TrendingService
	health  *Health
	router  *gin.Engine
}

// Config holds server configuration.
type Config struct {
	Service            TrendingService
	CORSAllowedOrigins []string
}

// New creates a server with all routes registered.
func New(cfg Config) *Server {
	s := &Server{
		service: cfg.Service,
		health:  NewHealth(),
	}

	router := gin.New()
	router.Use(gin.Recovery())
	// Engine level so preflights for unregistered OPTIONS routes are answered.
	if len(cfg.CORSAllowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:  cfg.CORSAllowedOrigins,
			AllowMethods:  []string{http.MethodGet, http.MethodOptions},
			AllowHeaders:  []string{"Origin", "Content-Type", "Accept", requestIDHeader},
			ExposeHeaders: []string{requestIDHeader},
			MaxAge:        12 * time.Hour,
		}))
	}
	router.Use(RequestID())
	router.Use(AccessLog())

	router.GET("/", s.Index)
	router.GET("/healthz", s.Healthz)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := router.Group("/api")
	{
		api.GET("/trending", s.Trending)
		api.GET("/status", s.Status)
	}

	s.router = router
	return s
}

// Handler returns the HTTP handler for the server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Health returns the upstream health tracker.
func (s *Server) Health() *Health {
	return s.health
}

// Index serves the front end page.
func (s *Server) Index(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", indexHTML)
}

// Healthz reports process liveness.
func (s *Server) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Trending handles GET /api/trending?since=daily|weekly|monthly.
//
// An invalid selector is rejected with 400 before the core runs. Any core
// outcome, failed or not, is returned with 200 and the envelope.
func (s *Server) Trending(c *gin.Context) {
	raw := c.DefaultQuery("since", string(trending.Daily))

	since, err := trending.ParseTimeRange(raw)
	if err != nil {
		msg := fmt.Sprintf("Invalid parameter: since=%s. Valid options: %s", raw, trending.ValidTimeRanges())
		c.JSON(http.StatusBadRequest, trending.Failed(trending.FailureNone, msg, nil))
		return
	}

	ctx := c.Request.Context()
	result := s.service.GetTrendingData(ctx, since)
	// A caller that went away says nothing about the upstream.
	if ctx.Err() == nil {
		s.health.Record(since, result)
	}

	c.JSON(http.StatusOK, result)
}

// statusResponse is the body of GET /api/status.
type statusResponse struct {
	Healthy bool                                   `json:"healthy"`
	Ranges  map[trending.TimeRange]*UpstreamStatus `json:"ranges"`
}

// Status reports the last observed upstream outcome per time range.
func (s *Server) Status(c *gin.Context) {
	c.JSON(http.StatusOK, statusResponse{
		Healthy: s.health.IsOverallHealthy(),
		Ranges:  s.health.GetAllStatuses(),
	})
}
