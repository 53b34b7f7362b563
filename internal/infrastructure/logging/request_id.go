package logging

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// RequestIDGenerator genera ids de request con prefijo
type RequestIDGenerator struct {
	prefix string
}

// NewRequestIDGenerator creates a new request ID generator
func NewRequestIDGenerator(prefix string) *RequestIDGenerator {
	if prefix == "" {
		prefix = "req"
	}
	return &RequestIDGenerator{
		prefix: prefix,
	}
}

// Generate crea un id único con formato {prefix}_{uuid}
func (g *RequestIDGenerator) Generate() string {
	return g.prefix + "_" + uuid.NewString()
}

// GenerateShort usa solo el primer bloque del uuid
func (g *RequestIDGenerator) GenerateShort() string {
	id := uuid.NewString()
	if idx := strings.IndexByte(id, '-'); idx > 0 {
		id = id[:idx]
	}
	return g.prefix + "_" + id
}

var defaultGenerator = NewRequestIDGenerator("req")

// GenerateRequestID generates a request ID using the default generator
func GenerateRequestID() string {
	return defaultGenerator.Generate()
}

type ctxKey int

const (
	requestIDKey ctxKey = iota
	startTimeKey
)

// WithRequestID guarda el id para que todas las entradas del request lo lleven
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// WithStartTime habilita duration_ms automático en cada entrada
func WithStartTime(ctx context.Context, startTime time.Time) context.Context {
	return context.WithValue(ctx, startTimeKey, startTime)
}

func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

func GetStartTime(ctx context.Context) time.Time {
	start, _ := ctx.Value(startTimeKey).(time.Time)
	return start
}
