package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"crypto-registry-service/internal/domain/interfaces"
	"crypto-registry-service/internal/infrastructure/logging"
	"crypto-registry-service/internal/infrastructure/metrics"
)

// Tiers de expiración. Son fijos, no configurables.
const (
	DefaultTTL = 300 * time.Second
	PriceTTL   = 1800 * time.Second
	CatalogTTL = 86400 * time.Second
)

// DefaultOperationTimeout acota cada llamada al backend
const DefaultOperationTimeout = 3 * time.Second

// Store guarda valores JSON sobre un CacheBackend
type Store struct {
	backend   interfaces.CacheBackend
	opTimeout time.Duration
	log       logging.CacheLogger
}

// StoreOption configura un Store
type StoreOption func(*Store)

// WithOperationTimeout cambia el timeout por operación; 0 lo desactiva
func WithOperationTimeout(timeout time.Duration) StoreOption {
	return func(s *Store) {
		s.opTimeout = timeout
	}
}

// WithLogger reemplaza el logger de cache global
func WithLogger(logger logging.CacheLogger) StoreOption {
	return func(s *Store) {
		s.log = logger
	}
}

// NewStore crea un Store sobre el backend indicado
func NewStore(backend interfaces.CacheBackend, opts ...StoreOption) *Store {
	s := &Store{
		backend:   backend,
		opTimeout: DefaultOperationTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logging.Cache()
	}
	return s
}

func (s *Store) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.opTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.opTimeout)
}

// Get decodifica el valor guardado en dest. Retorna false sin error si la
// clave no existe, expiró o su contenido no se puede decodificar.
func (s *Store) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	opCtx, cancel := s.withTimeout(ctx)
	defer cancel()

	raw, err := s.backend.Get(opCtx, key)
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			metrics.RecordCacheOperation("get", "miss")
			s.log.Miss(ctx, key, logging.CacheOpGet)
			return false, nil
		}
		metrics.RecordCacheOperation("get", "error")
		s.log.CacheError(ctx, logging.CacheOpGet, key, err)
		return false, unavailable("get", key, err)
	}

	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		metrics.RecordCacheOperation("get", "invalid")
		s.log.WarnWithError(ctx, "Discarding undecodable cache entry", err, logging.Fields{
			logging.FieldCacheKey: key,
		})
		return false, nil
	}

	metrics.RecordCacheOperation("get", "hit")
	s.log.Hit(ctx, key, logging.CacheOpGet)
	return true, nil
}

// Set sobrescribe la clave. ttl <= 0 usa DefaultTTL.
func (s *Store) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode cache value for %q: %w", key, err)
	}

	opCtx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := s.backend.Set(opCtx, key, string(payload), ttl); err != nil {
		metrics.RecordCacheOperation("set", "error")
		s.log.CacheError(ctx, logging.CacheOpSet, key, err)
		return unavailable("set", key, err)
	}

	metrics.RecordCacheOperation("set", "success")
	s.log.Set(ctx, key, ttl.Seconds())
	return nil
}

// Delete elimina la clave; borrar una clave inexistente no es error
func (s *Store) Delete(ctx context.Context, key string) error {
	opCtx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := s.backend.Delete(opCtx, key); err != nil {
		metrics.RecordCacheOperation("delete", "error")
		s.log.CacheError(ctx, logging.CacheOpDelete, key, err)
		return unavailable("delete", key, err)
	}

	metrics.RecordCacheOperation("delete", "success")
	s.log.Delete(ctx, key)
	return nil
}

func (s *Store) Exists(ctx context.Context, key string) (bool, error) {
	opCtx, cancel := s.withTimeout(ctx)
	defer cancel()

	exists, err := s.backend.Exists(opCtx, key)
	if err != nil {
		metrics.RecordCacheOperation("exists", "error")
		s.log.CacheError(ctx, logging.CacheOpExists, key, err)
		return false, unavailable("exists", key, err)
	}

	metrics.RecordCacheOperation("exists", "success")
	return exists, nil
}

// Ping lo usa el readiness check
func (s *Store) Ping(ctx context.Context) error {
	opCtx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := s.backend.Ping(opCtx); err != nil {
		return fmt.Errorf("%w: %w", ErrCacheUnavailable, err)
	}
	return nil
}

// Close cierra el backend
func (s *Store) Close() error {
	return s.backend.Close()
}
