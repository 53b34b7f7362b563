package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// Validator valida la configuración cargada
type Validator struct{}

// NewValidator crea una nueva instancia del validador
func NewValidator() *Validator {
	return &Validator{}
}

// Validate valida toda la configuración
func (v *Validator) Validate(config *Config) error {
	if err := v.validateServer(config.Server); err != nil {
		return fmt.Errorf("server config validation failed: %w", err)
	}

	if err := v.validateCache(config.Cache); err != nil {
		return fmt.Errorf("cache config validation failed: %w", err)
	}

	if err := v.validateCoinGecko(config.Provider.CoinGecko); err != nil {
		return fmt.Errorf("provider config validation failed: %w", err)
	}

	if err := v.validateDatabase(config.Database); err != nil {
		return fmt.Errorf("database config validation failed: %w", err)
	}

	if err := v.validateLogging(config.Logging); err != nil {
		return fmt.Errorf("logging config validation failed: %w", err)
	}

	if err := v.validateScheduler(config.Scheduler); err != nil {
		return fmt.Errorf("scheduler config validation failed: %w", err)
	}

	if err := v.validateStartup(config.Startup); err != nil {
		return fmt.Errorf("startup config validation failed: %w", err)
	}

	return nil
}

// validateServer valida la configuración del servidor
func (v *Validator) validateServer(config ServerConfig) error {
	if config.Port <= 0 || config.Port > 65535 {
		return fmt.Errorf("invalid port: %d, must be between 1-65535", config.Port)
	}

	if config.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown_timeout must be positive, got: %v", config.ShutdownTimeout)
	}

	if config.ShutdownTimeout > 5*time.Minute {
		return fmt.Errorf("shutdown_timeout too long: %v, max 5 minutes", config.ShutdownTimeout)
	}

	if config.ReadTimeout < 0 || config.WriteTimeout < 0 {
		return fmt.Errorf("read/write timeouts cannot be negative")
	}

	if config.RateLimit.Enabled {
		if config.RateLimit.RequestsPerSecond <= 0 {
			return fmt.Errorf("rate_limit requests_per_second must be positive, got: %v", config.RateLimit.RequestsPerSecond)
		}
		if config.RateLimit.Burst < 1 {
			return fmt.Errorf("rate_limit burst must be at least 1, got: %d", config.RateLimit.Burst)
		}
	}

	return nil
}

// validateCache valida la configuración del cache
func (v *Validator) validateCache(config CacheConfig) error {
	validBackends := []string{"memory", "redis"}
	if !contains(validBackends, config.Backend) {
		return fmt.Errorf("invalid cache backend: %s, must be one of: %v", config.Backend, validBackends)
	}

	if config.OperationTimeout <= 0 {
		return fmt.Errorf("cache op_timeout must be positive, got: %v", config.OperationTimeout)
	}

	if config.OperationTimeout > time.Minute {
		return fmt.Errorf("cache op_timeout too long: %v, max 1 minute", config.OperationTimeout)
	}

	if strings.EqualFold(config.Backend, "redis") {
		if err := v.validateRedis(config.Redis); err != nil {
			return err
		}
	}

	return nil
}

// validateRedis valida la configuración de Redis. La URL tiene prioridad sobre addr.
func (v *Validator) validateRedis(config RedisConfig) error {
	if config.URL != "" {
		parsed, err := url.Parse(config.URL)
		if err != nil {
			return fmt.Errorf("invalid redis url: %v", err)
		}
		if parsed.Scheme != "redis" && parsed.Scheme != "rediss" {
			return fmt.Errorf("invalid redis url scheme: %s, must be redis or rediss", parsed.Scheme)
		}
		return nil
	}

	if config.Addr == "" {
		return fmt.Errorf("redis addr cannot be empty")
	}

	if !strings.Contains(config.Addr, ":") {
		return fmt.Errorf("invalid redis addr format: %s, expected host:port", config.Addr)
	}

	if config.DB < 0 || config.DB > 15 {
		return fmt.Errorf("invalid redis DB: %d, must be between 0-15", config.DB)
	}

	return nil
}

// validateCoinGecko valida la configuración del proveedor
func (v *Validator) validateCoinGecko(config CoinGeckoConfig) error {
	if err := v.validateURL(config.BaseURL, "coingecko base_url"); err != nil {
		return err
	}

	if config.Timeout <= 0 {
		return fmt.Errorf("coingecko timeout must be positive, got: %v", config.Timeout)
	}

	if config.Timeout > 2*time.Minute {
		return fmt.Errorf("coingecko timeout too long: %v, max 2 minutes", config.Timeout)
	}

	if config.RequestsPerMinute < 0 {
		return fmt.Errorf("coingecko requests_per_minute cannot be negative, got: %d", config.RequestsPerMinute)
	}

	if config.APIKey != "" && strings.TrimSpace(config.APIKeyHeader) == "" {
		return fmt.Errorf("coingecko api_key_header is required when api_key is set")
	}

	return nil
}

// validateDatabase valida la configuración del registro
func (v *Validator) validateDatabase(config DatabaseConfig) error {
	switch strings.ToLower(config.Driver) {
	case "postgres":
		if config.DSN == "" {
			return fmt.Errorf("database dsn is required for postgres")
		}
	case "sqlite":
	default:
		return fmt.Errorf("invalid database driver: %s, must be one of: [postgres sqlite]", config.Driver)
	}

	if config.MaxOpenConns < 0 || config.MaxIdleConns < 0 {
		return fmt.Errorf("database pool sizes cannot be negative")
	}

	if config.MaxOpenConns > 0 && config.MaxIdleConns > config.MaxOpenConns {
		return fmt.Errorf("database max_idle_conns (%d) exceeds max_open_conns (%d)", config.MaxIdleConns, config.MaxOpenConns)
	}

	return nil
}

// validateLogging valida la configuración de logging
func (v *Validator) validateLogging(config LoggingConfig) error {
	validLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLevels, strings.ToLower(config.Level)) {
		return fmt.Errorf("invalid log level: %s, must be one of: %v", config.Level, validLevels)
	}

	validFormats := []string{"json", "text"}
	if !contains(validFormats, strings.ToLower(config.Format)) {
		return fmt.Errorf("invalid log format: %s, must be one of: %v", config.Format, validFormats)
	}

	return nil
}

// validateScheduler verifica que el spec de cron sea parseable
func (v *Validator) validateScheduler(config SchedulerConfig) error {
	spec := strings.TrimSpace(config.CatalogWarmup)
	if spec == "" {
		return nil
	}

	if _, err := cron.ParseStandard(spec); err != nil {
		return fmt.Errorf("invalid catalog_warmup schedule %q: %w", spec, err)
	}

	return nil
}

func (v *Validator) validateStartup(config StartupConfig) error {
	if config.ConnectAttempts == 0 {
		return fmt.Errorf("connect_attempts must be at least 1")
	}

	if config.ConnectDelay < 0 {
		return fmt.Errorf("connect_delay cannot be negative, got: %v", config.ConnectDelay)
	}

	return nil
}

// validateURL valida que una URL sea válida para HTTP/HTTPS
func (v *Validator) validateURL(rawURL, fieldName string) error {
	if rawURL == "" {
		return fmt.Errorf("%s cannot be empty", fieldName)
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid %s: %s, error: %v", fieldName, rawURL, err)
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("invalid %s scheme: %s, must be http or https", fieldName, parsedURL.Scheme)
	}

	if parsedURL.Host == "" {
		return fmt.Errorf("%s must have a host", fieldName)
	}

	return nil
}

// contains verifica si un slice contiene un elemento
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if strings.EqualFold(s, item) {
			return true
		}
	}
	return false
}
