// Package logger provides a factory for structured slog loggers with
// environment presets and context-aware attribute injection.
//
// The factory applies functional options on top of production-safe defaults
// (JSON output, INFO level) and wraps the resulting handler with a decorator
// that extracts request-scoped attributes from context at log time.
//
// # Basic Usage
//
//	log := logger.New(
//	    logger.WithDevelopment("apikit"),
//	)
//	log.Info("client ready")
//
// # Context Extractors
//
//	log := logger.New(
//	    logger.WithContextExtractors(func(ctx context.Context) (slog.Attr, bool) {
//	        if id, ok := ctx.Value(requestIDKey).(string); ok {
//	            return slog.String("request_id", id), true
//	        }
//	        return slog.Attr{}, false
//	    }),
//	)
package logger
