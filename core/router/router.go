package router

import (
	"net/http"

	"github.com/dmitrymomot/mailrelay/core/handler"
)

// Router is the routing interface for handling HTTP requests.
// Routes match on the exact request path; a trailing slash is ignored.
type Router[C handler.Context] interface {
	http.Handler
	Routes

	// HTTP method handlers
	Get(pattern string, h handler.HandlerFunc[C])
	Post(pattern string, h handler.HandlerFunc[C])

	// Handle registers a handler for every HTTP method.
	Handle(pattern string, h handler.HandlerFunc[C])
	// Method registers a handler for the listed HTTP methods.
	Method(pattern string, h handler.HandlerFunc[C], methods ...string)

	// Use appends middleware. All middleware must be added before routes.
	Use(middlewares ...handler.Middleware[C])
}

// Routes provides route introspection capabilities for debugging and monitoring.
type Routes interface {
	Routes() []Route
}

// Route describes a single route in the router with its HTTP method and pattern.
// Method is "*" for routes registered with Handle.
type Route struct {
	Method  string
	Pattern string
}

// New creates a new router with the given options.
func New[C handler.Context](opts ...Option[C]) Router[C] {
	return newMux[C](opts...)
}
