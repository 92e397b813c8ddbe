package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/medboard/hospital-api/pkg/errors"
	"github.com/medboard/hospital-api/pkg/httputil"
	"github.com/medboard/hospital-api/pkg/metrics"

	"github.com/medboard/hospital-api/internal/middleware"
	"github.com/medboard/hospital-api/internal/router"
	"github.com/medboard/hospital-api/internal/service/auth"
)

const apiPrefix = "/api/v1"

type Config struct {
	Port         int
	Timeout      time.Duration
	RateLimit    rate.Limit
	RateBurst    int
	AllowOrigins []string
}

// Server is the HTTP edge: gin carries the middleware chain and hands
// every /api/v1 request to the logical route table, which owns matching
// and dispatch.
type Server struct {
	engine  *gin.Engine
	table   *router.Table
	metrics *metrics.Metrics
	logger  zerolog.Logger
	http    *http.Server
}

func New(cfg Config, table *router.Table, authSvc *auth.Service, m *metrics.Metrics, logger zerolog.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	corsCfg := middleware.DefaultCORSConfig()
	if len(cfg.AllowOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.AllowOrigins
	}

	engine.Use(middleware.Recovery(logger))
	engine.Use(middleware.RequestID())
	engine.Use(middleware.Logger(logger))
	engine.Use(middleware.CORS(corsCfg))
	if cfg.RateLimit > 0 {
		limiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{Rate: cfg.RateLimit, Burst: cfg.RateBurst})
		engine.Use(limiter.RateLimit())
	}
	if cfg.Timeout > 0 {
		engine.Use(middleware.Timeout(cfg.Timeout))
	}
	engine.Use(middleware.Identify(authSvc))

	s := &Server{
		engine:  engine,
		table:   table,
		metrics: m,
		logger:  logger,
	}

	engine.GET("/healthz", s.healthz)
	engine.GET("/readyz", s.healthz)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
	engine.Any(apiPrefix+"/*path", s.dispatch)

	s.http = &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: engine,
	}
	return s
}

func (s *Server) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// dispatch adapts the HTTP request into a logical request and routes it
// through the table. The pre-match is only for the metrics route label;
// the table resolves again inside Dispatch.
func (s *Server) dispatch(c *gin.Context) {
	path := c.Param("path")

	routeLabel := "unrouted"
	if m, ok := s.table.Match(c.Request.Method, path); ok {
		routeLabel = m.Pattern
	} else if s.metrics != nil {
		s.metrics.UnroutedTotal.Inc()
	}

	var body []byte
	if c.Request.Body != nil {
		body, _ = io.ReadAll(c.Request.Body)
	}

	req := &router.Request{
		Method: c.Request.Method,
		Path:   path,
		Query:  c.Request.URL.Query(),
		Body:   body,
	}

	start := time.Now()
	resp, err := s.table.Dispatch(c.Request.Context(), req)
	elapsed := time.Since(start)

	if s.metrics != nil {
		s.metrics.RequestDuration.WithLabelValues(c.Request.Method, routeLabel).Observe(elapsed.Seconds())
	}

	if err != nil {
		if s.metrics != nil {
			code := errors.Code(err)
			s.metrics.RequestErrors.WithLabelValues(c.Request.Method, routeLabel, strconv.Itoa(int(code))).Inc()
			s.metrics.RequestsTotal.WithLabelValues(c.Request.Method, routeLabel, strconv.Itoa(httputil.StatusOf(code))).Inc()
		}
		httputil.RespondWithError(c, err)
		return
	}

	if s.metrics != nil {
		s.metrics.RequestsTotal.WithLabelValues(c.Request.Method, routeLabel, strconv.Itoa(resp.Status)).Inc()
	}
	if resp.Status == http.StatusNoContent {
		c.Status(http.StatusNoContent)
		return
	}
	httputil.RespondWithSuccess(c, resp.Status, resp.Data)
}

// Handler exposes the engine for httptest.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) Start() error {
	s.logger.Info().Str("addr", s.http.Addr).Msg("http server listening")
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
