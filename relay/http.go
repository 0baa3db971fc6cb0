package relay

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/mailrelay/core/handler"
	"github.com/dmitrymomot/mailrelay/core/logger"
	"github.com/dmitrymomot/mailrelay/core/response"
	"github.com/dmitrymomot/mailrelay/core/router"
)

// Handler adapts rl to a route handler. Register it for every method;
// the relay answers non-POST requests itself, after the settings check.
func Handler[C handler.Context](rl *Relay) handler.HandlerFunc[C] {
	return func(ctx C) handler.Response {
		status, result := rl.Serve(ctx.ResponseWriter(), ctx.Request())
		resp := response.JSONWithStatus(result, status)
		if status != http.StatusMethodNotAllowed {
			return resp
		}
		return func(w http.ResponseWriter, r *http.Request) error {
			w.Header().Set("Allow", http.MethodPost)
			return resp(w, r)
		}
	}
}

// ErrorHandler renders router failures (unknown path, wrong method, panics)
// with the relay's result shape. Server errors are logged and never echoed.
func ErrorHandler[C handler.Context](log *slog.Logger) handler.ErrorHandler[C] {
	return func(ctx C, err error) {
		w := ctx.ResponseWriter()
		if router.Written(w) {
			return
		}

		status := router.StatusCode(err)
		msg := http.StatusText(status)
		var httpErr response.HTTPError
		switch {
		case status == http.StatusMethodNotAllowed:
			msg = "Method not allowed"
		case status == http.StatusNotFound:
			msg = "Not found"
		case errors.As(err, &httpErr):
			msg = httpErr.Message
		}

		if status >= http.StatusInternalServerError && log != nil {
			log.ErrorContext(ctx, "request failed",
				logger.Component("http"),
				logger.Method(ctx.Request().Method),
				logger.Path(ctx.Request().URL.Path),
				logger.Error(err),
			)
		}

		_ = response.JSONWithStatus(Result{Success: false, Message: msg}, status)(w, ctx.Request())
	}
}
