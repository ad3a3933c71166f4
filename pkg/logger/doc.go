// Package logger builds the slog loggers used by the lingua command and
// server.
//
//	log, err := logger.New(os.Stderr, logger.Config{Level: "debug", Format: "json"})
//
// Request-scoped values travel in the context. The locale middleware stores
// the resolved locale with WithAttrs and every record logged with that
// context carries it:
//
//	ctx = logger.WithAttrs(ctx, slog.String("locale", "de_CH"))
//	log.InfoContext(ctx, "bundle resolved")
//
// When SentryDSN is set, warnings are also shipped to Sentry as logs and
// errors as events. Pass Flush to the shutdown sequence so buffered events
// are delivered.
package logger
