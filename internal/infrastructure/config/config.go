package config

import (
	"time"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Cache     CacheConfig     `yaml:"cache" mapstructure:"cache"`
	Provider  ProviderConfig  `yaml:"provider" mapstructure:"provider"`
	Database  DatabaseConfig  `yaml:"database" mapstructure:"database"`
	Logging   LoggingConfig   `yaml:"logging" mapstructure:"logging"`
	Registry  RegistryConfig  `yaml:"registry" mapstructure:"registry"`
	Scheduler SchedulerConfig `yaml:"scheduler" mapstructure:"scheduler"`
	Startup   StartupConfig   `yaml:"startup" mapstructure:"startup"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int             `yaml:"port" mapstructure:"port"`
	ReadTimeout     time.Duration   `yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout    time.Duration   `yaml:"write_timeout" mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration   `yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`
	StaticDir       string          `yaml:"static_dir" mapstructure:"static_dir"`
	RateLimit       RateLimitConfig `yaml:"rate_limit" mapstructure:"rate_limit"`
}

// RateLimitConfig limita requests entrantes por IP de cliente
type RateLimitConfig struct {
	Enabled           bool    `yaml:"enabled" mapstructure:"enabled"`
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	Burst             int     `yaml:"burst" mapstructure:"burst"`
}

// CacheConfig contains cache system configuration. Los TTL por tipo de dato
// son constantes del paquete cache, no configurables.
type CacheConfig struct {
	Backend          string        `yaml:"backend" mapstructure:"backend"`
	OperationTimeout time.Duration `yaml:"op_timeout" mapstructure:"op_timeout"`
	Redis            RedisConfig   `yaml:"redis" mapstructure:"redis"`
}

// RedisConfig contains Redis-specific configuration
type RedisConfig struct {
	URL      string `yaml:"url" mapstructure:"url"`
	Addr     string `yaml:"addr" mapstructure:"addr"`
	Password string `yaml:"password" mapstructure:"password"`
	DB       int    `yaml:"db" mapstructure:"db"`
}

// ProviderConfig contains price provider configuration
type ProviderConfig struct {
	CoinGecko CoinGeckoConfig `yaml:"coingecko" mapstructure:"coingecko"`
}

// CoinGeckoConfig contains CoinGecko-specific configuration
type CoinGeckoConfig struct {
	BaseURL           string        `yaml:"base_url" mapstructure:"base_url"`
	APIKey            string        `yaml:"api_key" mapstructure:"api_key"`
	APIKeyHeader      string        `yaml:"api_key_header" mapstructure:"api_key_header"`
	Timeout           time.Duration `yaml:"timeout" mapstructure:"timeout"`
	RequestsPerMinute int           `yaml:"requests_per_minute" mapstructure:"requests_per_minute"`
}

// DatabaseConfig contains registry database configuration
type DatabaseConfig struct {
	Driver          string        `yaml:"driver" mapstructure:"driver"`
	DSN             string        `yaml:"dsn" mapstructure:"dsn"`
	Path            string        `yaml:"path" mapstructure:"path"`
	MaxOpenConns    int           `yaml:"max_open_conns" mapstructure:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns" mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" mapstructure:"conn_max_lifetime"`
	LogQueries      bool          `yaml:"log_queries" mapstructure:"log_queries"`
}

// LoggingConfig contains logging system configuration
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// RegistryConfig contains registry business rules
type RegistryConfig struct {
	// ValidateCoins rechaza altas de pares que el proveedor no conoce
	ValidateCoins bool `yaml:"validate_coins" mapstructure:"validate_coins"`
}

// SchedulerConfig contiene los jobs periódicos. Un spec vacío desactiva el job.
type SchedulerConfig struct {
	CatalogWarmup string `yaml:"catalog_warmup" mapstructure:"catalog_warmup"`
}

// StartupConfig controla los reintentos de conexión al arrancar
type StartupConfig struct {
	ConnectAttempts uint          `yaml:"connect_attempts" mapstructure:"connect_attempts"`
	ConnectDelay    time.Duration `yaml:"connect_delay" mapstructure:"connect_delay"`
}

// GetDefaultConfig returns the default configuration
func GetDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 30 * time.Second,
			StaticDir:       "./web/static",
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerSecond: 10,
				Burst:             100,
			},
		},
		Cache: CacheConfig{
			Backend:          "memory",
			OperationTimeout: 3 * time.Second,
			Redis: RedisConfig{
				Addr: "localhost:6379",
				DB:   0,
			},
		},
		Provider: ProviderConfig{
			CoinGecko: CoinGeckoConfig{
				BaseURL:           "https://api.coingecko.com/api/v3",
				APIKeyHeader:      "x-cg-demo-api-key",
				Timeout:           10 * time.Second,
				RequestsPerMinute: 30,
			},
		},
		Database: DatabaseConfig{
			Driver:          "sqlite",
			Path:            "./data/registry.db",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 30 * time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Registry: RegistryConfig{
			ValidateCoins: true,
		},
		Scheduler: SchedulerConfig{
			CatalogWarmup: "@every 12h",
		},
		Startup: StartupConfig{
			ConnectAttempts: 5,
			ConnectDelay:    2 * time.Second,
		},
	}
}
