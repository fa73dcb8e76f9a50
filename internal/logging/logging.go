package logging

import (
	"context"
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"
)

// New builds a logger writing to out with the given level name and format
// ("text" or "json").
func New(level, format string, out io.Writer) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	logger := log.New()
	logger.SetOutput(out)
	logger.SetLevel(lvl)
	switch format {
	case "", "text":
		logger.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	case "json":
		logger.SetFormatter(&log.JSONFormatter{})
	default:
		return nil, fmt.Errorf("log format %q not supported", format)
	}
	return logger, nil
}

type entryKey struct{}

// WithEntry attaches a request-scoped log entry to ctx.
func WithEntry(ctx context.Context, entry *log.Entry) context.Context {
	return context.WithValue(ctx, entryKey{}, entry)
}

// FromContext returns the entry attached by WithEntry, or one derived from
// fallback (the standard logger when fallback is nil).
func FromContext(ctx context.Context, fallback log.FieldLogger) *log.Entry {
	if entry, ok := ctx.Value(entryKey{}).(*log.Entry); ok && entry != nil {
		return entry
	}
	if fallback == nil {
		fallback = log.StandardLogger()
	}
	return fallback.WithFields(log.Fields{})
}
