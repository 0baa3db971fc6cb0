package health

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/mailrelay/core/handler"
	"github.com/dmitrymomot/mailrelay/core/logger"
	"github.com/dmitrymomot/mailrelay/core/response"
)

// Check reports whether a dependency is usable.
type Check func(context.Context) error

// Readiness runs every check in order and returns "READY" when all pass.
// The first failure is logged and handed to the router's error handler as
// response.ErrServiceUnavailable.
//
// Example:
//
//	r.Get("/health/ready", health.Readiness[*router.Context](log, settings.Check))
func Readiness[C handler.Context](log *slog.Logger, checks ...Check) handler.HandlerFunc[C] {
	return func(ctx C) handler.Response {
		for _, check := range checks {
			if err := check(ctx); err != nil {
				if log != nil {
					log.WarnContext(ctx, "readiness check failed",
						logger.Component("health"),
						logger.Error(err),
					)
				}
				return response.Error(response.ErrServiceUnavailable)
			}
		}

		return response.String("READY")
	}
}
