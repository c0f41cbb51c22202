// Package logger builds *slog.Logger values and provides the attribute helpers
// shared by the rest of the module.
//
// # Construction
//
// New returns a logger writing text at info level to stdout. Options change
// the handler:
//
//	log := logger.New(
//		logger.WithJSONFormatter(),
//		logger.WithLevel(slog.LevelDebug),
//		logger.WithOutput(os.Stderr),
//		logger.WithAttr(slog.String("service", "web")),
//	)
//
// WithTextFormatter switches back to text output and WithHandlerOptions passes
// custom slog.HandlerOptions (the level still comes from WithLevel).
//
// Environment presets set format, level and the "app" and "env" attributes:
//
//   - WithDevelopment: text at debug level
//   - WithStaging: JSON at info level
//   - WithProduction: JSON at info level
//
// ForEnv picks a preset from an APP_ENV value ("production" and "real" map to
// production, "staging" and "beta" to staging, anything else to development),
// and ParseLevel reads a LOG_LEVEL value, falling back to info:
//
//	log := logger.New(
//		logger.ForEnv(cfg.AppName, cfg.Env),
//		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
//	)
//
// Nop returns a logger that discards everything. Components use it when no
// logger is injected.
//
// # Attributes
//
// Helpers return slog.Attr values with fixed keys:
//
//	log.WarnContext(ctx, "normalizer: start session",
//		logger.Component("normalizer"),
//		logger.Error(err),
//	)
//
// Available helpers:
//
//   - Error ("error"), empty for a nil error
//   - RequestID ("request_id"), empty for an empty id
//   - Path ("path"), Query ("query"), Referer ("referer")
//   - Route ("route"), Action ("action"), UserID ("user")
//   - ClientIP ("client_ip"), Component ("component")
//   - Stack ("stack"), the current goroutine's stack trace
//
// An empty slog.Attr is dropped by the handlers, so Error and RequestID can be
// passed without nil checks.
package logger
