package httpserver

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"webhook-receiver/internal/webhook"
	"webhook-receiver/pkg/log"
	"webhook-receiver/pkg/metrics"
	"webhook-receiver/pkg/ratelimit"
	pkgRedis "webhook-receiver/pkg/redis"
)

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin         *gin.Engine
	l           log.Logger
	port        int
	mode        string
	environment string

	trustedProxies    []string
	readHeaderTimeout time.Duration
	readTimeout       time.Duration
	writeTimeout      time.Duration
	idleTimeout       time.Duration
	shutdownTimeout   time.Duration
	tlsCertFile       string
	tlsKeyFile        string

	// Webhook domain
	webhookUC   webhook.UseCase
	maxBodySize int64

	// Infrastructure
	metrics *metrics.Metrics
	limiter ratelimit.Limiter
	redis   *pkgRedis.Client
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger      log.Logger
	Port        int
	Mode        string
	Environment string

	TrustedProxies    []string
	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
	TLSCertFile       string
	TLSKeyFile        string

	// Webhook domain
	WebhookUseCase webhook.UseCase
	MaxBodySize    int64

	// Optional infrastructure
	Metrics *metrics.Metrics
	Limiter ratelimit.Limiter
	Redis   *pkgRedis.Client
}

// New creates a new HTTPServer instance with all routes mapped.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:                 logger,
		gin:               gin.New(),
		port:              cfg.Port,
		mode:              cfg.Mode,
		environment:       cfg.Environment,
		trustedProxies:    cfg.TrustedProxies,
		readHeaderTimeout: cfg.ReadHeaderTimeout,
		readTimeout:       cfg.ReadTimeout,
		writeTimeout:      cfg.WriteTimeout,
		idleTimeout:       cfg.IdleTimeout,
		shutdownTimeout:   cfg.ShutdownTimeout,
		tlsCertFile:       cfg.TLSCertFile,
		tlsKeyFile:        cfg.TLSKeyFile,
		webhookUC:         cfg.WebhookUseCase,
		maxBodySize:       cfg.MaxBodySize,
		metrics:           cfg.Metrics,
		limiter:           cfg.Limiter,
		redis:             cfg.Redis,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	if err := srv.mapHandlers(); err != nil {
		return nil, err
	}

	return srv, nil
}

// Handler exposes the routed engine, mainly for tests.
func (srv *HTTPServer) Handler() *gin.Engine {
	return srv.gin
}

func (srv *HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.webhookUC == nil {
		return errors.New("webhook use case is required")
	}
	if (srv.tlsCertFile == "") != (srv.tlsKeyFile == "") {
		return errors.New("tls cert and key files must be set together")
	}
	return nil
}
