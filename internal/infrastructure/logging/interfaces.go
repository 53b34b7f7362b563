package logging

import (
	"context"
)

// Logger es lo mínimo que necesita cualquier componente: niveles con campos y
// variantes que adjuntan un error.
type Logger interface {
	Debug(ctx context.Context, message string, fields Fields)
	Info(ctx context.Context, message string, fields Fields)
	Warn(ctx context.Context, message string, fields Fields)
	Error(ctx context.Context, message string, fields Fields)

	InfoWithError(ctx context.Context, message string, err error, fields Fields)
	WarnWithError(ctx context.Context, message string, err error, fields Fields)
	ErrorWithError(ctx context.Context, message string, err error, fields Fields)

	SetLevel(level LogLevel)
	GetLevel() LogLevel
}

// DomainLogger etiqueta cada entrada con FieldDomain
type DomainLogger interface {
	Logger
	Domain() string
}

// HTTPLogger: request entrante y su resultado
type HTTPLogger interface {
	DomainLogger
	RequestReceived(ctx context.Context, method, path, userAgent, remoteIP string)
	RequestCompleted(ctx context.Context, method, path string, statusCode int, duration float64)
	RequestFailed(ctx context.Context, method, path string, statusCode int, err error, duration float64)
}

// ExternalAPILogger cubre las llamadas salientes a CoinGecko, incluida la
// espera en el throttle del cliente
type ExternalAPILogger interface {
	DomainLogger
	Throttled(ctx context.Context, service string, waitMs float64)
	RequestStarted(ctx context.Context, service, endpoint, method string)
	RequestCompleted(ctx context.Context, service, endpoint string, statusCode int, duration float64)
	RequestFailed(ctx context.Context, service, endpoint string, statusCode int, err error, duration float64)
}

type CacheLogger interface {
	DomainLogger
	Hit(ctx context.Context, key string, operation string)
	Miss(ctx context.Context, key string, operation string)
	Set(ctx context.Context, key string, ttl float64)
	Delete(ctx context.Context, key string)
	CacheError(ctx context.Context, operation, key string, err error)
}

// BusinessLogger registra eventos del registro y del pipeline de precios
type BusinessLogger interface {
	DomainLogger

	// registro
	RegistryChanged(ctx context.Context, operation string, id uint, symbol, platform string)
	ValidationFailed(ctx context.Context, input string, reason string)

	// precios
	CatalogRefreshed(ctx context.Context, coins int, durationMs float64)
	PriceRequested(ctx context.Context, coinID, currency string)
	PriceServed(ctx context.Context, coinID, currency string, price float64, status string)
	PriceLookupFailed(ctx context.Context, coinID, currency string, err error)
}
