// @title Crypto Registry API
// @version 1.0
// @description Registry of cryptocurrencies (symbol + platform) with current prices from CoinGecko, cached in Redis with stale fallback.
// @license.name MIT
// @host localhost:8080
// @BasePath /
// @schemes http
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"crypto-registry-service/internal/application/services"
	"crypto-registry-service/internal/domain/interfaces"
	"crypto-registry-service/internal/infrastructure/config"
	"crypto-registry-service/internal/infrastructure/logging"
	"crypto-registry-service/internal/infrastructure/metrics"
	"crypto-registry-service/internal/infrastructure/provider/coingecko"
	"crypto-registry-service/internal/infrastructure/repositories/cache"
	"crypto-registry-service/internal/infrastructure/repositories/registry"
	"crypto-registry-service/internal/infrastructure/scheduler"
	"crypto-registry-service/internal/infrastructure/web/handlers"
	"crypto-registry-service/internal/infrastructure/web/middleware"
	"crypto-registry-service/internal/infrastructure/web/router"
	"crypto-registry-service/internal/infrastructure/web/server"

	"github.com/avast/retry-go/v4"
	"go.uber.org/multierr"
)

const serviceName = "crypto-registry-service"

// Se sobreescriben con -ldflags en el build
var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("%s: %v", serviceName, err)
	}
}

func run() error {
	loader := config.NewLoader()
	cfg, err := loader.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := config.NewValidator().Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	loggerConfig := logging.NewConfig(serviceName, version, config.GetEnvironment()).
		WithLevel(logging.LogLevelFromString(cfg.Logging.Level)).
		WithFormat(logging.LogFormatFromString(cfg.Logging.Format))
	if err := logging.InitializeGlobalLoggers(loggerConfig); err != nil {
		return err
	}

	ctx := logging.WithRequestID(context.Background(), "startup")
	logging.Info(ctx, "Starting service", logging.Fields{
		logging.FieldVersion: version,
		"config_file":        loader.ConfigFileUsed(),
		"cache_backend":      cfg.Cache.Backend,
		"database_driver":    cfg.Database.Driver,
	})

	metrics.SetApplicationInfo(version, buildTime, runtime.Version())

	db, err := openDatabase(ctx, cfg)
	if err != nil {
		return err
	}

	backend, err := openCache(ctx, cfg)
	if err != nil {
		return multierr.Append(err, db.Close())
	}
	store := cache.NewStore(backend, cache.WithOperationTimeout(cfg.Cache.OperationTimeout))

	gecko := cfg.Provider.CoinGecko
	provider := coingecko.NewClient(coingecko.Options{
		BaseURL:           gecko.BaseURL,
		APIKey:            gecko.APIKey,
		APIKeyHeader:      gecko.APIKeyHeader,
		Timeout:           gecko.Timeout,
		RequestsPerMinute: gecko.RequestsPerMinute,
		UserAgent:         serviceName + "/" + version,
	})

	resolver := services.NewCoinResolver(provider, store)
	fetcher := services.NewPriceFetcher(provider, store)
	service := services.NewCryptocurrencyService(
		registry.NewCryptocurrencyRepository(db.DB),
		resolver,
		fetcher,
		cfg.Registry.ValidateCoins,
	)

	routerOpts := router.Options{StaticDir: cfg.Server.StaticDir}
	if rl := cfg.Server.RateLimit; rl.Enabled {
		routerOpts.RateLimiter = middleware.NewRateLimiter(rl.RequestsPerSecond, rl.Burst)
	}

	handler := router.New(router.Handlers{
		Cryptocurrency: handlers.NewCryptocurrencyHandler(service),
		Coin:           handlers.NewCoinHandler(resolver),
		Health: handlers.NewHealthHandler(map[string]interfaces.Pinger{
			"cache":    store,
			"database": db,
		}),
	}, routerOpts)

	srv := server.NewServer(handler, server.Options{
		Port:         cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	})

	warmer := scheduler.NewCatalogWarmer(resolver, cfg.Scheduler.CatalogWarmup, scheduler.WithRunOnStart(true))
	if err := warmer.Start(); err != nil {
		return multierr.Combine(err, store.Close(), db.Close())
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Start()
	}()

	logging.Info(ctx, "Service is running", logging.Fields{
		"port": cfg.Server.Port,
		"endpoints": map[string]string{
			"registry": "/api/cryptocurrencies",
			"price":    "/api/cryptocurrencies/{id}/price",
			"coins":    "/api/coins/{symbol}/platforms",
			"health":   "/health",
			"ready":    "/ready",
			"metrics":  "/metrics",
			"docs":     "/swagger/index.html",
		},
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	var runErr error
	select {
	case sig := <-quit:
		logging.Info(ctx, "Shutting down", logging.Fields{"signal": sig.String()})
	case err := <-serverErr:
		if err != nil {
			runErr = fmt.Errorf("server stopped unexpectedly: %w", err)
			logging.ErrorWithError(ctx, "Server failed", err, nil)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	// primero el server para que no entren requests contra recursos cerrados
	err = multierr.Combine(
		runErr,
		srv.Stop(shutdownCtx),
		warmer.Stop(shutdownCtx),
		store.Close(),
		db.Close(),
	)
	if err != nil {
		logging.ErrorWithError(ctx, "Shutdown completed with errors", err, nil)
		return err
	}

	logging.Info(ctx, "Shutdown completed", nil)
	return nil
}

// openDatabase abre el registro con reintentos y aplica migraciones
func openDatabase(ctx context.Context, cfg *config.Config) (*registry.Database, error) {
	dbCfg := registry.Config{
		Driver:          cfg.Database.Driver,
		DSN:             cfg.Database.DSN,
		Path:            cfg.Database.Path,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		LogQueries:      cfg.Database.LogQueries,
	}

	var db *registry.Database
	err := retry.Do(
		func() error {
			opened, err := registry.Open(dbCfg)
			if err != nil {
				return err
			}
			if err := opened.Ping(ctx); err != nil {
				_ = opened.Close()
				return err
			}
			db = opened
			return nil
		},
		retry.Attempts(cfg.Startup.ConnectAttempts),
		retry.Delay(cfg.Startup.ConnectDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.Context(ctx),
		retry.OnRetry(func(n uint, err error) {
			logging.WarnWithError(ctx, "Database not reachable, retrying", err, logging.Fields{
				"attempt": n + 1,
				"driver":  dbCfg.Driver,
			})
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open registry database: %w", err)
	}

	if err := db.Migrate(); err != nil {
		return nil, multierr.Append(fmt.Errorf("failed to migrate registry database: %w", err), db.Close())
	}

	logging.Info(ctx, "Registry database ready", logging.Fields{"driver": db.Driver()})
	return db, nil
}

// openCache crea el backend configurado; Redis se pinguea con reintentos
func openCache(ctx context.Context, cfg *config.Config) (interfaces.CacheBackend, error) {
	factory := cache.NewFactory()
	cacheCfg := cache.Config{
		Type:        cache.CacheType(cfg.Cache.Backend),
		RedisURL:    cfg.Cache.Redis.URL,
		RedisAddr:   cfg.Cache.Redis.Addr,
		Password:    cfg.Cache.Redis.Password,
		RedisDB:     cfg.Cache.Redis.DB,
		PingTimeout: cfg.Cache.OperationTimeout,
	}

	var backend interfaces.CacheBackend
	err := retry.Do(
		func() error {
			created, err := factory.CreateBackend(ctx, cacheCfg)
			if err != nil {
				return err
			}
			backend = created
			return nil
		},
		retry.Attempts(cfg.Startup.ConnectAttempts),
		retry.Delay(cfg.Startup.ConnectDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.Context(ctx),
		retry.OnRetry(func(n uint, err error) {
			logging.WarnWithError(ctx, "Cache backend not reachable, retrying", err, logging.Fields{
				"attempt": n + 1,
				"backend": cfg.Cache.Backend,
			})
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create cache backend: %w", err)
	}

	return backend, nil
}
