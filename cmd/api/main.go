package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"webhook-receiver/config"
	_ "webhook-receiver/docs" // Swagger docs
	"webhook-receiver/internal/httpserver"
	"webhook-receiver/internal/webhook"
	"webhook-receiver/internal/webhook/sink"
	"webhook-receiver/internal/webhook/usecase"
	"webhook-receiver/pkg/log"
	"webhook-receiver/pkg/metrics"
	"webhook-receiver/pkg/ratelimit"
	pkgRedis "webhook-receiver/pkg/redis"
)

// @title       Webhook Receiver API
// @description Hub-style webhook receiver: subscription handshake and HMAC-authenticated event deliveries.
// @version     1
// @host        localhost:3100
// @schemes     http https
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "webhook-receiver:", err)
		stop()
		os.Exit(1)
	}
}

// run wires every component and blocks until ctx is cancelled. Any error
// before the listener is up is returned so main can exit non-zero.
func run(ctx context.Context) error {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	logger.Info(ctx, "Starting webhook receiver...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)
	if len(cfg.Webhook.AllowedIPs) > 0 {
		logger.Infof(ctx, "Origin allowlist enabled with %d entries", len(cfg.Webhook.AllowedIPs))
	} else {
		logger.Warn(ctx, "Origin allowlist disabled, relying on signatures only")
	}

	// 3. Metrics
	registry := prometheus.NewRegistry()
	m := metrics.NewMetrics(registry)

	// 4. Redis (optional)
	var redisClient *pkgRedis.Client
	if cfg.Redis.Address != "" {
		redisClient, err = pkgRedis.Connect(ctx, pkgRedis.Config{
			Address:  cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		if err != nil {
			return err
		}
		defer redisClient.Close()
		logger.Infof(ctx, "Redis connected at %s", cfg.Redis.Address)
	}

	// 5. Rate limiter
	limiter := newLimiter(cfg, redisClient)

	// 6. Sinks
	sinks := []webhook.Sink{sink.NewLog(logger)}
	if cfg.Webhook.RedisStream != "" {
		sinks = append(sinks, sink.NewRedisStream(redisClient.Redis(), cfg.Webhook.RedisStream, cfg.Webhook.StreamMaxLen))
		logger.Infof(ctx, "Deliveries are also published to Redis stream %s", cfg.Webhook.RedisStream)
	}

	// 7. Webhook use case
	uc, err := usecase.New(logger, cfg.SecurityConfig(), sink.Multi(sinks...), m)
	if err != nil {
		return fmt.Errorf("init webhook use case: %w", err)
	}

	// 8. HTTP Server
	srv, err := httpserver.New(logger, httpserver.Config{
		Logger:            logger,
		Port:              cfg.HTTPServer.Port,
		Mode:              cfg.HTTPServer.Mode,
		Environment:       cfg.Environment.Name,
		TrustedProxies:    cfg.HTTPServer.TrustedProxies,
		ReadHeaderTimeout: cfg.HTTPServer.ReadHeaderTimeout,
		ReadTimeout:       cfg.HTTPServer.ReadTimeout,
		WriteTimeout:      cfg.HTTPServer.WriteTimeout,
		IdleTimeout:       cfg.HTTPServer.IdleTimeout,
		ShutdownTimeout:   cfg.HTTPServer.ShutdownTimeout,
		TLSCertFile:       cfg.HTTPServer.TLSCertFile,
		TLSKeyFile:        cfg.HTTPServer.TLSKeyFile,
		WebhookUseCase:    uc,
		MaxBodySize:       cfg.Webhook.MaxBodySize,
		Metrics:           m,
		Limiter:           limiter,
		Redis:             redisClient,
	})
	if err != nil {
		return fmt.Errorf("init HTTP server: %w", err)
	}

	// 9. Public URL discovery (optional, never fatal)
	if cfg.Ngrok.APIURL != "" {
		go func() {
			publicURL, err := detectPublicURL(ctx, cfg.Ngrok.APIURL, publicURLAttempts, publicURLInterval)
			if err != nil {
				logger.Warnf(ctx, "Could not detect public URL: %v", err)
				return
			}
			logger.Infof(ctx, "Register this callback URL with the platform: %s/webhook", publicURL)
		}()
	}

	// 10. Run
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("run server: %w", err)
	}

	logger.Info(context.Background(), "Server stopped gracefully")
	return nil
}

func newLimiter(cfg *config.Config, redisClient *pkgRedis.Client) ratelimit.Limiter {
	if !cfg.RateLimit.Enabled {
		return nil
	}
	if cfg.RateLimit.Backend == config.RateLimitBackendRedis && redisClient != nil {
		return ratelimit.NewRedis(redisClient.Redis(), cfg.RateLimit.RequestsPerMin, cfg.RateLimit.RedisKeyPrefix)
	}
	return ratelimit.NewLocal(cfg.RateLimit.RequestsPerMin)
}
