package logger

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/trace"
)

// Logger is the process-wide structured logger.
var Logger zerolog.Logger

// Init configures the global logger. In development mode output is
// pretty-printed; otherwise JSON lines go to stdout.
func Init(serviceName string, isDevelopment bool) {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	var output io.Writer = os.Stdout
	if isDevelopment {
		output = zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: "15:04:05",
		}
	}

	Logger = zerolog.New(output).
		With().
		Timestamp().
		Str("service", serviceName).
		Logger()

	log.Logger = Logger
}

// SetLevel adjusts the global log level. Unknown values fall back to info.
func SetLevel(level string) {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil || parsed == zerolog.NoLevel {
		parsed = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(parsed)
}

// WithContext returns a logger enriched with the trace and span IDs of the
// active span, when one is recorded on the context.
func WithContext(ctx context.Context) *zerolog.Logger {
	l := Logger.With().Logger()

	span := trace.SpanFromContext(ctx)
	if span.SpanContext().IsValid() {
		l = l.With().
			Str("trace_id", span.SpanContext().TraceID().String()).
			Str("span_id", span.SpanContext().SpanID().String()).
			Logger()
	}
	return &l
}

// Info logs at info level with trace context.
func Info(ctx context.Context) *zerolog.Event { return WithContext(ctx).Info() }

// Warn logs at warn level with trace context.
func Warn(ctx context.Context) *zerolog.Event { return WithContext(ctx).Warn() }

// Error logs at error level with trace context.
func Error(ctx context.Context) *zerolog.Event { return WithContext(ctx).Error() }

// Debug logs at debug level with trace context.
func Debug(ctx context.Context) *zerolog.Event { return WithContext(ctx).Debug() }
