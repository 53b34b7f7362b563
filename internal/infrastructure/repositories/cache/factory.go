package cache

import (
	"context"
	"fmt"
	"time"

	"crypto-registry-service/internal/domain/interfaces"
	"crypto-registry-service/internal/infrastructure/logging"

	"github.com/redis/go-redis/v9"
)

// CacheType represents the type of cache implementation
type CacheType string

const (
	CacheTypeMemory CacheType = "memory"
	CacheTypeRedis  CacheType = "redis"
)

// Config holds cache configuration options
type Config struct {
	Type        CacheType
	RedisURL    string // tiene prioridad sobre Addr/Password/DB
	RedisAddr   string
	Password    string
	RedisDB     int
	PingTimeout time.Duration
}

// Factory provides methods to create cache backends
type Factory struct{}

// NewFactory creates a new cache factory
func NewFactory() *Factory {
	return &Factory{}
}

// CreateBackend crea el backend y, para Redis, verifica la conexión
func (f *Factory) CreateBackend(ctx context.Context, config Config) (interfaces.CacheBackend, error) {
	switch config.Type {
	case CacheTypeMemory:
		logging.Info(ctx, "Creating memory cache", logging.Fields{
			"type": "memory",
		})
		return NewMemoryCache(), nil

	case CacheTypeRedis:
		return f.createRedisCache(ctx, config)

	default:
		return nil, fmt.Errorf("unsupported cache type: %s", config.Type)
	}
}

func (f *Factory) createRedisCache(ctx context.Context, config Config) (interfaces.CacheBackend, error) {
	opts, err := redisOptions(config)
	if err != nil {
		return nil, err
	}

	logging.Info(ctx, "Creating Redis cache", logging.Fields{
		"type":     "redis",
		"addr":     opts.Addr,
		"database": opts.DB,
	})

	backend := NewRedisCache(opts)

	pingTimeout := config.PingTimeout
	if pingTimeout <= 0 {
		pingTimeout = 5 * time.Second
	}
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := backend.Ping(pingCtx); err != nil {
		_ = backend.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", opts.Addr, err)
	}

	logging.Info(ctx, "Redis connection established successfully", logging.Fields{
		"addr":     opts.Addr,
		"database": opts.DB,
	})
	return backend, nil
}

func redisOptions(config Config) (*redis.Options, error) {
	if config.RedisURL != "" {
		opts, err := redis.ParseURL(config.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		return opts, nil
	}

	if config.RedisAddr == "" {
		return nil, fmt.Errorf("redis address is required")
	}

	return &redis.Options{
		Addr:     config.RedisAddr,
		Password: config.Password,
		DB:       config.RedisDB,
	}, nil
}
