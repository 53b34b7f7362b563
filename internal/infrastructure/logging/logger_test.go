package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func newTestLogger(t *testing.T, level LogLevel) (*StructuredLogger, *bytes.Buffer) {
	t.Helper()

	buf := &bytes.Buffer{}
	cfg := NewConfig("test-service", "test", "testing").
		WithLevel(level).
		WithFormat(FormatJSON).
		WithOutput(buf)

	logger, err := NewStructuredLogger(cfg)
	require.NoError(t, err)
	return logger, buf
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()

	var entries []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &entry), line)
		entries = append(entries, entry)
	}
	return entries
}

func TestStructuredLogger_JSONEntry(t *testing.T) {
	logger, buf := newTestLogger(t, LevelDebug)

	ctx := WithRequestID(context.Background(), "req_123")
	logger.Info(ctx, "price served", Fields{FieldCoinID: "bitcoin"})

	entries := decodeLines(t, buf)
	require.Len(t, entries, 1)

	entry := entries[0]
	assert.Equal(t, "price served", entry[FieldMessage])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "test-service", entry[FieldService])
	assert.Equal(t, "req_123", entry[FieldRequestID])
	assert.Equal(t, "bitcoin", entry[FieldCoinID])
	assert.Contains(t, entry, FieldTimestamp)
}

func TestStructuredLogger_LevelFiltering(t *testing.T) {
	logger, buf := newTestLogger(t, LevelWarn)
	ctx := context.Background()

	logger.Debug(ctx, "debug", nil)
	logger.Info(ctx, "info", nil)
	logger.Warn(ctx, "warn", nil)
	logger.Error(ctx, "error", nil)

	entries := decodeLines(t, buf)
	require.Len(t, entries, 2)
	assert.Equal(t, "warn", entries[0][FieldMessage])
	assert.Equal(t, "error", entries[1][FieldMessage])

	buf.Reset()
	logger.SetLevel(LevelDebug)
	assert.Equal(t, LevelDebug, logger.GetLevel())
	logger.Debug(ctx, "debug", nil)
	assert.Len(t, decodeLines(t, buf), 1)
}

func TestStructuredLogger_WithErrorDoesNotMutateCallerFields(t *testing.T) {
	logger, buf := newTestLogger(t, LevelInfo)

	fields := Fields{"key": "value"}
	wrapped := fmt.Errorf("fetch: %w", errors.New("boom"))
	logger.ErrorWithError(context.Background(), "failed", wrapped, fields)

	entries := decodeLines(t, buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "fetch: boom", entries[0][FieldError])
	assert.Equal(t, "*errors.errorString", entries[0][FieldErrorType])
	assert.NotContains(t, fields, FieldError)
}

func TestDomainLoggers_TagDomain(t *testing.T) {
	logger, buf := newTestLogger(t, LevelDebug)
	ctx := context.Background()

	NewCacheLogger(logger).Miss(ctx, "price:bitcoin:usd", CacheOpGet)
	NewBusinessLogger(logger).PriceLookupFailed(ctx, "bitcoin", "usd", errors.New("upstream down"))
	NewExternalAPILogger(logger).RequestCompleted(ctx, "coingecko", "/simple/price", 503, 12.5)

	entries := decodeLines(t, buf)
	require.Len(t, entries, 3)

	assert.Equal(t, "cache", entries[0][FieldDomain])
	assert.Equal(t, false, entries[0][FieldCacheHit])

	assert.Equal(t, "business", entries[1][FieldDomain])
	assert.Equal(t, "upstream down", entries[1][FieldError])
	assert.Equal(t, "error", entries[1]["level"])

	assert.Equal(t, "external_api", entries[2][FieldDomain])
	assert.Equal(t, "error", entries[2]["level"])
}

func TestDomainLoggers_RegistryAndThrottle(t *testing.T) {
	logger, buf := newTestLogger(t, LevelDebug)
	ctx := context.Background()

	api := NewExternalAPILogger(logger)
	api.Throttled(ctx, "coingecko", 0.4)
	api.Throttled(ctx, "coingecko", 850)
	NewBusinessLogger(logger).RegistryChanged(ctx, "create", 7, "USDC", "ethereum")

	entries := decodeLines(t, buf)
	require.Len(t, entries, 2, "sub-millisecond waits are not logged")

	assert.Equal(t, 850.0, entries[0][FieldDuration])
	assert.Equal(t, "create", entries[1]["operation"])
	assert.Equal(t, 7.0, entries[1][FieldCryptoID])
	assert.Equal(t, "ethereum", entries[1][FieldPlatform])
}

func TestLogLevelFromString(t *testing.T) {
	assert.Equal(t, LevelDebug, LogLevelFromString("debug"))
	assert.Equal(t, LevelWarn, LogLevelFromString("WARNING"))
	assert.Equal(t, LevelError, LogLevelFromString(" error "))
	assert.Equal(t, LevelInfo, LogLevelFromString("verbose"))
	assert.Equal(t, FormatText, LogFormatFromString("TEXT"))
	assert.Equal(t, FormatJSON, LogFormatFromString(""))
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	cfg.Level = "TRACE"
	cfg.Service = " "
	err := cfg.Validate()
	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.Len(t, multierr.Errors(err), 2)
	assert.ErrorContains(t, err, `unknown level "TRACE"`)

	assert.True(t, NewConfig("svc", "v1", "test").WithLevel(LevelDebug).AddSource)
	assert.False(t, NewConfig("svc", "v1", "test").WithLevel(LevelWarn).AddSource)
}

func TestRequestIDGenerator(t *testing.T) {
	gen := NewRequestIDGenerator("")

	first := gen.Generate()
	second := gen.Generate()
	assert.True(t, strings.HasPrefix(first, "req_"))
	assert.NotEqual(t, first, second)

	short := gen.GenerateShort()
	assert.Len(t, short, len("req_")+8)
}
