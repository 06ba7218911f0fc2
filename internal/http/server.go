package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/jmehdipour/credit-insights/internal/config"
	"github.com/jmehdipour/credit-insights/internal/http/middleware"
	"github.com/jmehdipour/credit-insights/internal/logger"
	"github.com/jmehdipour/credit-insights/internal/metrics"
	"github.com/jmehdipour/credit-insights/internal/service/insights"
	"github.com/jmehdipour/credit-insights/internal/util"
	"github.com/labstack/echo/v4"
	echoMid "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct{ e *echo.Echo }

// NewServer wires routes over svc. rds may be nil; rate limiting is then off.
func NewServer(cfg config.Config, svc *insights.Service, rds *redis.Client) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(echoLevel(cfg.Log.Level))
	e.Use(
		echoMid.Recover(),
		echoMid.RequestIDWithConfig(echoMid.RequestIDConfig{Generator: util.NewID}),
		requestLogger(),
	)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics.MustRegister(reg)

	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// health
	e.GET("/healthz", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })

	// middlewares
	authMW := middleware.APIKeyMiddleware(cfg.Auth.APIKeys)
	rlMW := middleware.RateLimitMiddleware(middleware.RateLimitConfig{
		Redis:          rds,
		RPS:            cfg.RateLimit.RPS,
		KeyPrefix:      cfg.RateLimit.KeyPrefix,
		Window:         cfg.RateLimit.Window,
		RetryAfterHint: true,
	})

	// routes
	v1 := e.Group("/v1", authMW, rlMW)
	v1.GET("/charts", listChartsHandler(svc))
	v1.GET("/charts/:kind", chartHandler(svc))
	v1.GET("/charts/:kind/image.png", chartImageHandler(svc))
	v1.GET("/dataset/preview", previewHandler(svc))
	v1.GET("/dataset/summary", summaryHandler(svc))

	return &Server{e: e}
}

func (s *Server) Handler() http.Handler { return s.e }

func (s *Server) Start(addr string) error {
	logger.Log.Info("http: listening", zap.String("addr", addr))
	return s.e.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error { return s.e.Shutdown(ctx) }

func requestLogger() echo.MiddlewareFunc {
	return echoMid.RequestLoggerWithConfig(echoMid.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echoMid.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("request_id", v.RequestID),
			}
			if v.Error != nil {
				logger.Log.Warn("request", append(fields, zap.Error(v.Error))...)
				return nil
			}
			logger.Log.Info("request", fields...)
			return nil
		},
	})
}

func echoLevel(level string) log.Lvl {
	switch strings.ToLower(level) {
	case "debug":
		return log.DEBUG
	case "warn":
		return log.WARN
	case "error":
		return log.ERROR
	default:
		return log.INFO
	}
}

// ShutdownTimeout falls back to 10s when unset.
func ShutdownTimeout(cfg config.Config) time.Duration {
	if cfg.HTTP.ShutdownTimeout <= 0 {
		return 10 * time.Second
	}
	return cfg.HTTP.ShutdownTimeout
}
