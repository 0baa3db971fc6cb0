// Package health provides liveness and readiness handlers.
//
//	r.Get("/health/live", health.Liveness[*router.Context])
//	r.Get("/health/ready", health.Readiness[*router.Context](log, settings.Check))
//
// Checks follow the func(context.Context) error signature. Readiness stops at
// the first failing check and reports 503 through the error handler.
package health
