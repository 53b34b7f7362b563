package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix para variables de entorno: CRYPTO_SERVER_PORT, CRYPTO_CACHE_BACKEND...
const EnvPrefix = "CRYPTO"

// Loader handles configuration loading using Viper
type Loader struct {
	v           *viper.Viper
	configPaths []string
}

// NewLoader creates a new configuration loader instance
func NewLoader() *Loader {
	return &Loader{
		v: viper.New(),
		configPaths: []string{
			"./configs",
			"../configs",
			".",
			"/etc/crypto-registry",
		},
	}
}

// WithConfigPaths reemplaza los directorios donde se busca config.yaml
func (l *Loader) WithConfigPaths(paths ...string) *Loader {
	l.configPaths = paths
	return l
}

// Load loads configuration from files and environment variables
func (l *Loader) Load() (*Config, error) {
	l.setupViper()

	if err := l.v.ReadInConfig(); err != nil {
		// Sin config.yaml se usan solo env vars y defaults
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	config := GetDefaultConfig()
	if err := l.v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	l.overrideWithEnvVars(config)

	return config, nil
}

// ConfigFileUsed retorna el archivo leído, vacío si no hubo
func (l *Loader) ConfigFileUsed() string {
	return l.v.ConfigFileUsed()
}

func (l *Loader) setupViper() {
	l.v.SetConfigName("config")
	l.v.SetConfigType("yaml")
	for _, path := range l.configPaths {
		l.v.AddConfigPath(path)
	}

	l.v.AutomaticEnv()
	l.v.SetEnvPrefix(EnvPrefix)
	l.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// AutomaticEnv solo aplica a claves conocidas por viper; los defaults
	// las registran para que CRYPTO_* funcione sin config.yaml
	l.registerDefaults()
	l.bindEnvVars()
}

func (l *Loader) registerDefaults() {
	d := GetDefaultConfig()
	defaults := map[string]interface{}{
		"server.port":                            d.Server.Port,
		"server.read_timeout":                    d.Server.ReadTimeout,
		"server.write_timeout":                   d.Server.WriteTimeout,
		"server.shutdown_timeout":                d.Server.ShutdownTimeout,
		"server.static_dir":                      d.Server.StaticDir,
		"server.rate_limit.enabled":              d.Server.RateLimit.Enabled,
		"server.rate_limit.requests_per_second":  d.Server.RateLimit.RequestsPerSecond,
		"server.rate_limit.burst":                d.Server.RateLimit.Burst,
		"cache.backend":                          d.Cache.Backend,
		"cache.op_timeout":                       d.Cache.OperationTimeout,
		"cache.redis.url":                        d.Cache.Redis.URL,
		"cache.redis.addr":                       d.Cache.Redis.Addr,
		"cache.redis.password":                   d.Cache.Redis.Password,
		"cache.redis.db":                         d.Cache.Redis.DB,
		"provider.coingecko.base_url":            d.Provider.CoinGecko.BaseURL,
		"provider.coingecko.api_key":             d.Provider.CoinGecko.APIKey,
		"provider.coingecko.api_key_header":      d.Provider.CoinGecko.APIKeyHeader,
		"provider.coingecko.timeout":             d.Provider.CoinGecko.Timeout,
		"provider.coingecko.requests_per_minute": d.Provider.CoinGecko.RequestsPerMinute,
		"database.driver":                        d.Database.Driver,
		"database.dsn":                           d.Database.DSN,
		"database.path":                          d.Database.Path,
		"database.max_open_conns":                d.Database.MaxOpenConns,
		"database.max_idle_conns":                d.Database.MaxIdleConns,
		"database.conn_max_lifetime":             d.Database.ConnMaxLifetime,
		"database.log_queries":                   d.Database.LogQueries,
		"logging.level":                          d.Logging.Level,
		"logging.format":                         d.Logging.Format,
		"registry.validate_coins":                d.Registry.ValidateCoins,
		"scheduler.catalog_warmup":               d.Scheduler.CatalogWarmup,
		"startup.connect_attempts":               d.Startup.ConnectAttempts,
		"startup.connect_delay":                  d.Startup.ConnectDelay,
	}

	for key, value := range defaults {
		l.v.SetDefault(key, value)
	}
}

// bindEnvVars maps specific environment variables to configuration keys
func (l *Loader) bindEnvVars() {
	envMappings := map[string]string{
		"server.port":                 "PORT",
		"cache.backend":               "CACHE_BACKEND",
		"cache.redis.url":             "REDIS_URL",
		"cache.redis.addr":            "REDIS_ADDR",
		"cache.redis.password":        "REDIS_PASSWORD",
		"cache.redis.db":              "REDIS_DB",
		"provider.coingecko.api_key":  "COINGECKO_API_KEY",
		"provider.coingecko.base_url": "COINGECKO_BASE_URL",
		"database.driver":             "DATABASE_DRIVER",
		"logging.level":               "LOG_LEVEL",
		"logging.format":              "LOG_FORMAT",
	}

	for configKey, envVar := range envMappings {
		_ = l.v.BindEnv(configKey, EnvPrefix+"_"+strings.ToUpper(strings.ReplaceAll(configKey, ".", "_")), envVar)
	}
}

// overrideWithEnvVars maneja casos especiales de env vars
func (l *Loader) overrideWithEnvVars(config *Config) {
	// DATABASE_URL (estilo Heroku) implica postgres
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		config.Database.DSN = databaseURL
		if os.Getenv("DATABASE_DRIVER") == "" && os.Getenv(EnvPrefix+"_DATABASE_DRIVER") == "" {
			config.Database.Driver = "postgres"
		}
	}

	// REDIS_URL sin backend explícito activa Redis
	if os.Getenv("REDIS_URL") != "" && os.Getenv("CACHE_BACKEND") == "" && os.Getenv(EnvPrefix+"_CACHE_BACKEND") == "" {
		config.Cache.Backend = "redis"
	}
}

// GetEnvironment determina el entorno actual desde ENV vars
func GetEnvironment() string {
	env := strings.ToLower(os.Getenv("ENV"))
	if env == "" {
		env = strings.ToLower(os.Getenv("ENVIRONMENT"))
	}
	if env == "" {
		env = "development"
	}
	return env
}
