package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"webhook-receiver/internal/webhook"
)

var (
	ErrMissingSecret      = errors.New("webhook secret is required (WEBHOOK_SECRET or APP_SECRET)")
	ErrMissingVerifyToken = errors.New("webhook verify token is required (WEBHOOK_VERIFY_TOKEN or VERIFY_TOKEN)")
)

// Config holds all service configuration. It is built once by Load and
// passed by value or pointer; nothing mutates it afterwards.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// Webhook receiver
	Webhook   WebhookConfig
	RateLimit RateLimitConfig
	Redis     RedisConfig
	Ngrok     NgrokConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port              int
	Mode              string
	TrustedProxies    []string
	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
	TLSCertFile       string
	TLSKeyFile        string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

type WebhookConfig struct {
	Secret         string
	VerifyToken    string
	SubscribeMode  string
	ExpectedObject string
	AllowedIPs     []string
	MaxBodySize    int64
	RedisStream    string // Empty disables the Redis stream sink
	StreamMaxLen   int64
}

type RateLimitConfig struct {
	Enabled        bool
	RequestsPerMin int
	Backend        string // "local" or "redis"
	RedisKeyPrefix string
}

type RedisConfig struct {
	Address  string // Empty disables Redis entirely
	Password string
	DB       int
	PoolSize int
}

type NgrokConfig struct {
	APIURL string // Empty disables public URL discovery
}

// SecurityConfig returns the part of the configuration the webhook use case
// needs.
func (c Config) SecurityConfig() webhook.SecurityConfig {
	return webhook.SecurityConfig{
		Secret:         c.Webhook.Secret,
		VerifyToken:    c.Webhook.VerifyToken,
		SubscribeMode:  c.Webhook.SubscribeMode,
		ExpectedObject: c.Webhook.ExpectedObject,
		AllowedIPs:     c.Webhook.AllowedIPs,
	}
}

// Load loads configuration using Viper.
// Precedence: process env > .env.<environment> > .env > config.yaml
// (searched in ./config, ., /etc/app/) > defaults.
func Load() (*Config, error) {
	loadDotEnv()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/app/")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)
	if err := bindAliases(v); err != nil {
		return nil, err
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = v.GetString("environment.name")
	cfg.HTTPServer.Port = v.GetInt("http_server.port")
	cfg.HTTPServer.Mode = v.GetString("http_server.mode")
	cfg.HTTPServer.TrustedProxies = splitList(v.Get("http_server.trusted_proxies"))
	cfg.HTTPServer.ReadHeaderTimeout = v.GetDuration("http_server.read_header_timeout")
	cfg.HTTPServer.ReadTimeout = v.GetDuration("http_server.read_timeout")
	cfg.HTTPServer.WriteTimeout = v.GetDuration("http_server.write_timeout")
	cfg.HTTPServer.IdleTimeout = v.GetDuration("http_server.idle_timeout")
	cfg.HTTPServer.ShutdownTimeout = v.GetDuration("http_server.shutdown_timeout")
	cfg.HTTPServer.TLSCertFile = v.GetString("http_server.tls_cert_file")
	cfg.HTTPServer.TLSKeyFile = v.GetString("http_server.tls_key_file")

	cfg.Logger.Level = v.GetString("logger.level")
	cfg.Logger.Mode = v.GetString("logger.mode")
	cfg.Logger.Encoding = v.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = v.GetBool("logger.color_enabled")

	// Webhook
	cfg.Webhook.Secret = v.GetString("webhook.secret")
	cfg.Webhook.VerifyToken = v.GetString("webhook.verify_token")
	cfg.Webhook.SubscribeMode = v.GetString("webhook.subscribe_mode")
	cfg.Webhook.ExpectedObject = v.GetString("webhook.expected_object")
	// Env delivers a comma string, YAML may deliver a list.
	cfg.Webhook.AllowedIPs = splitList(v.Get("webhook.allowed_ips"))
	cfg.Webhook.MaxBodySize = v.GetInt64("webhook.max_body_size")
	cfg.Webhook.RedisStream = v.GetString("webhook.redis_stream")
	cfg.Webhook.StreamMaxLen = v.GetInt64("webhook.stream_max_len")

	cfg.RateLimit.Enabled = v.GetBool("rate_limit.enabled")
	cfg.RateLimit.RequestsPerMin = v.GetInt("rate_limit.requests_per_min")
	cfg.RateLimit.Backend = v.GetString("rate_limit.backend")
	cfg.RateLimit.RedisKeyPrefix = v.GetString("rate_limit.redis_key_prefix")

	cfg.Redis.Address = v.GetString("redis.address")
	cfg.Redis.Password = v.GetString("redis.password")
	cfg.Redis.DB = v.GetInt("redis.db")
	cfg.Redis.PoolSize = v.GetInt("redis.pool_size")

	cfg.Ngrok.APIURL = v.GetString("ngrok.api_url")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate reports every configuration problem at once.
func (c *Config) Validate() error {
	var errs []error

	if c.Webhook.Secret == "" {
		errs = append(errs, ErrMissingSecret)
	}
	if c.Webhook.VerifyToken == "" {
		errs = append(errs, ErrMissingVerifyToken)
	}
	if c.HTTPServer.Port < 1 || c.HTTPServer.Port > 65535 {
		errs = append(errs, fmt.Errorf("http_server.port %d out of range", c.HTTPServer.Port))
	}
	if (c.HTTPServer.TLSCertFile == "") != (c.HTTPServer.TLSKeyFile == "") {
		errs = append(errs, errors.New("http_server.tls_cert_file and tls_key_file must be set together"))
	}
	if c.Webhook.MaxBodySize <= 0 {
		errs = append(errs, fmt.Errorf("webhook.max_body_size must be positive, got %d", c.Webhook.MaxBodySize))
	}
	if _, err := webhook.ParseAllowlist(c.Webhook.AllowedIPs); err != nil {
		errs = append(errs, fmt.Errorf("webhook.allowed_ips: %w", err))
	}
	if c.RateLimit.Enabled {
		if c.RateLimit.RequestsPerMin <= 0 {
			errs = append(errs, errors.New("rate_limit.requests_per_min must be positive"))
		}
		switch c.RateLimit.Backend {
		case RateLimitBackendLocal:
		case RateLimitBackendRedis:
			if c.Redis.Address == "" {
				errs = append(errs, errors.New("rate_limit.backend redis needs redis.address"))
			}
		default:
			errs = append(errs, fmt.Errorf("unknown rate_limit.backend %q", c.RateLimit.Backend))
		}
	}
	if c.Webhook.RedisStream != "" && c.Redis.Address == "" {
		errs = append(errs, errors.New("webhook.redis_stream needs redis.address"))
	}

	return errors.Join(errs...)
}

const (
	RateLimitBackendLocal = "local"
	RateLimitBackendRedis = "redis"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment.name", "development")
	v.SetDefault("http_server.port", 3100)
	v.SetDefault("http_server.mode", "release")
	v.SetDefault("http_server.read_header_timeout", "5s")
	v.SetDefault("http_server.read_timeout", "15s")
	v.SetDefault("http_server.write_timeout", "15s")
	v.SetDefault("http_server.idle_timeout", "60s")
	v.SetDefault("http_server.shutdown_timeout", "10s")
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.mode", "debug")
	v.SetDefault("logger.encoding", "console")
	v.SetDefault("logger.color_enabled", true)
	v.SetDefault("webhook.subscribe_mode", "subscribe")
	v.SetDefault("webhook.max_body_size", 1<<20)
	v.SetDefault("webhook.stream_max_len", 10000)
	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests_per_min", 600)
	v.SetDefault("rate_limit.backend", RateLimitBackendLocal)
	v.SetDefault("rate_limit.redis_key_prefix", "webhook:ratelimit")
	v.SetDefault("redis.pool_size", 10)
}

// bindAliases keeps the short env names deployments already use working
// next to the structured ones.
func bindAliases(v *viper.Viper) error {
	aliases := map[string][]string{
		"webhook.secret":       {"WEBHOOK_SECRET", "APP_SECRET"},
		"webhook.verify_token": {"WEBHOOK_VERIFY_TOKEN", "VERIFY_TOKEN"},
		"webhook.allowed_ips":  {"WEBHOOK_ALLOWED_IPS", "ALLOWED_IPS"},
		"http_server.port":     {"HTTP_SERVER_PORT", "APP_PORT"},
		"logger.level":         {"LOGGER_LEVEL", "LOG_LEVEL"},
		"environment.name":     {"ENVIRONMENT_NAME", "NODE_ENV"},
	}
	for key, envs := range aliases {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return fmt.Errorf("bind env %s: %w", key, err)
		}
	}
	return nil
}

// loadDotEnv loads .env.<environment> then .env into the process env.
// godotenv never overrides variables that are already set, so the real
// environment wins and the specific file wins over the generic one.
func loadDotEnv() {
	env := os.Getenv("ENVIRONMENT_NAME")
	if env == "" {
		env = os.Getenv("NODE_ENV")
	}
	if env != "" {
		_ = godotenv.Load(".env." + env)
	}
	_ = godotenv.Load(".env")
}

// splitList accepts a comma-delimited string or a list and returns the
// trimmed, non-empty entries.
func splitList(raw interface{}) []string {
	var parts []string
	switch val := raw.(type) {
	case nil:
		return nil
	case string:
		parts = strings.Split(val, ",")
	case []string:
		parts = val
	case []interface{}:
		for _, p := range val {
			parts = append(parts, fmt.Sprint(p))
		}
	default:
		parts = strings.Split(fmt.Sprint(val), ",")
	}

	var out []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
