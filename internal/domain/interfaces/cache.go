package interfaces

import (
	"context"
	"time"
)

// CacheStore guarda valores serializables a JSON con expiración.
// Get retorna found=false si la clave no existe o expiró; los fallos del
// backend se retornan como error, nunca como miss.
type CacheStore interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// Pinger lo implementan las dependencias que participan en el readiness check
type Pinger interface {
	Ping(ctx context.Context) error
}

// CacheBackend es el almacenamiento crudo de strings detrás del CacheStore.
// Get retorna cache.ErrKeyNotFound cuando la clave no existe.
type CacheBackend interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Ping(ctx context.Context) error
	Close() error
}
