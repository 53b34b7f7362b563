package cache

import (
	"errors"
	"fmt"
)

var (
	// ErrKeyNotFound la clave no existe o ya expiró
	ErrKeyNotFound = errors.New("key not found")
	// ErrCacheUnavailable el backend no respondió; nunca se enmascara como miss
	ErrCacheUnavailable = errors.New("cache unavailable")
)

func unavailable(operation, key string, err error) error {
	return fmt.Errorf("%w: %s %q: %w", ErrCacheUnavailable, operation, key, err)
}
