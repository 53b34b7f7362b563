package coingecko

import "errors"

var (
	// ErrUpstreamUnavailable cubre errores de red, timeouts y respuestas no-2xx
	ErrUpstreamUnavailable = errors.New("price provider unavailable")
	// ErrRateLimited el proveedor respondió 429; siempre acompaña a ErrUpstreamUnavailable
	ErrRateLimited = errors.New("price provider rate limit exceeded")
)
