// Package router provides a small generic HTTP router built around the
// handler package types. Routes match the exact request path (a trailing
// slash is ignored) and can be bound to one method, a list of methods, or to
// every method with Handle.
//
//	r := router.New[*router.Context](
//		router.WithErrorHandler(errorHandler),
//	)
//	r.Use(middleware.RequestID[*router.Context]())
//	r.Get("/health/live", health.Liveness[*router.Context])
//	r.Handle("/", relay.Handler[*router.Context](rl))
//
// Unknown paths produce ErrNotFound, known paths with the wrong method
// produce ErrMethodNotAllowed (with an Allow header), and panics are
// recovered and reported as PanicError. All of them go to the configured
// ErrorHandler; StatusCode maps them to an HTTP status.
package router
