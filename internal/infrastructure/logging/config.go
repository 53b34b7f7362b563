package logging

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/multierr"
)

// ErrInvalidConfig envuelve todos los problemas detectados por Validate
var ErrInvalidConfig = errors.New("invalid logger config")

// LogFormat es el formatter de logrus a usar
type LogFormat string

const (
	FormatJSON LogFormat = "json"
	FormatText LogFormat = "text"
)

// LoggerConfig describe cómo se construye el logger base. Los campos de
// identidad (Service, Version, Environment) viajan en cada entrada.
type LoggerConfig struct {
	Level  LogLevel
	Format LogFormat
	Output io.Writer

	Service     string
	Version     string
	Environment string

	// AddSource agrega la función que llamó al logger. Se activa sola en DEBUG.
	AddSource bool
}

// DefaultConfig: INFO en JSON a stdout
func DefaultConfig() *LoggerConfig {
	return &LoggerConfig{
		Level:       LevelInfo,
		Format:      FormatJSON,
		Output:      os.Stdout,
		Service:     "crypto-registry-service",
		Environment: "development",
	}
}

// NewConfig parte de DefaultConfig con la identidad del servicio
func NewConfig(service, version, environment string) *LoggerConfig {
	cfg := DefaultConfig()
	cfg.Service = service
	cfg.Version = version
	cfg.Environment = environment
	return cfg
}

func (c *LoggerConfig) WithLevel(level LogLevel) *LoggerConfig {
	c.Level = level
	c.AddSource = level == LevelDebug
	return c
}

func (c *LoggerConfig) WithFormat(format LogFormat) *LoggerConfig {
	c.Format = format
	return c
}

func (c *LoggerConfig) WithOutput(output io.Writer) *LoggerConfig {
	c.Output = output
	return c
}

// Validate reporta todos los campos inválidos juntos, cada uno envuelto en
// ErrInvalidConfig
func (c *LoggerConfig) Validate() error {
	var errs error

	switch c.Level {
	case LevelDebug, LevelInfo, LevelWarn, LevelError:
	default:
		errs = multierr.Append(errs, fmt.Errorf("%w: unknown level %q", ErrInvalidConfig, c.Level))
	}

	if c.Format != FormatJSON && c.Format != FormatText {
		errs = multierr.Append(errs, fmt.Errorf("%w: unknown format %q", ErrInvalidConfig, c.Format))
	}

	if c.Output == nil {
		errs = multierr.Append(errs, fmt.Errorf("%w: nil output", ErrInvalidConfig))
	}

	if strings.TrimSpace(c.Service) == "" {
		errs = multierr.Append(errs, fmt.Errorf("%w: empty service name", ErrInvalidConfig))
	}

	return errs
}

// LogLevelFromString acepta los nombres de config (case-insensitive); INFO si no se reconoce
func LogLevelFromString(level string) LogLevel {
	switch LogLevel(strings.ToUpper(strings.TrimSpace(level))) {
	case LevelDebug:
		return LevelDebug
	case LevelWarn, "WARNING":
		return LevelWarn
	case LevelError:
		return LevelError
	default:
		return LevelInfo
	}
}

// LogFormatFromString: "text" o JSON para todo lo demás
func LogFormatFromString(format string) LogFormat {
	if strings.EqualFold(strings.TrimSpace(format), string(FormatText)) {
		return FormatText
	}
	return FormatJSON
}
