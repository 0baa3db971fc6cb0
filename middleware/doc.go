// Package middleware provides the HTTP middleware used in front of the relay.
//
// All middleware follow the same shape: a generic constructor over
// handler.Context, a Config struct for customization and a WithConfig
// constructor. Each can be skipped per request through Config.Skip.
//
// # Request ID
//
// RequestID assigns a UUID to every request, stores it in the context and
// echoes it in the X-Request-ID response header.
//
//	r.Use(middleware.RequestID[*router.Context]())
//
//	id, ok := middleware.GetRequestID(ctx)
//
// RequestIDExtractor feeds the ID into every log record written with a
// request context:
//
//	log := logger.New(logger.WithContextExtractors(middleware.RequestIDExtractor))
//
// # Logging
//
// Logging writes one record per request after the response is rendered,
// with method, path, status, size and duration. Bodies are never logged.
//
//	r.Use(middleware.LoggingWithConfig[*router.Context](middleware.LoggingConfig{
//		Logger: log,
//		Skip: func(ctx handler.Context) bool {
//			return strings.HasPrefix(ctx.Request().URL.Path, "/health/")
//		},
//	}))
package middleware
