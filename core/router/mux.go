package router

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"runtime/debug"
	"slices"
	"strings"
	"sync"

	"github.com/dmitrymomot/mailrelay/core/handler"
)

// anyMethod is the route key used by Handle.
const anyMethod = "*"

// mux is the private implementation of Router interface.
type mux[C handler.Context] struct {
	mu           sync.RWMutex
	routes       map[string]map[string]handler.HandlerFunc[C]
	middlewares  []handler.Middleware[C]
	errorHandler handler.ErrorHandler[C]
	newContext   func(http.ResponseWriter, *http.Request) C
	logger       *slog.Logger
	sealed       bool // routes registered, middleware stack is fixed
}

func newMux[C handler.Context](opts ...Option[C]) *mux[C] {
	m := &mux[C]{
		routes:       make(map[string]map[string]handler.HandlerFunc[C]),
		errorHandler: defaultErrorHandler[C],
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.newContext == nil {
		m.newContext = func(w http.ResponseWriter, r *http.Request) C {
			// Only the default *Context works without a factory.
			var zero C
			if _, ok := any(zero).(*Context); ok {
				return any(NewContext(w, r)).(C)
			}
			panic(ErrNoContextFactory)
		}
	}

	return m
}

// ServeHTTP implements http.Handler interface.
func (m *mux[C]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ww := newResponseWriter(w)
	ctx := m.newContext(ww, r)

	defer func() {
		if p := recover(); p != nil {
			panicErr := &panicError{
				value: p,
				stack: debug.Stack(),
			}

			if ww.Written() {
				m.logger.Error("panic after response written",
					"value", panicErr.value,
					"stack", string(panicErr.stack),
					"path", r.URL.Path,
					"method", r.Method,
					"status", ww.Status(),
				)
				return
			}
			m.errorHandler(ctx, panicErr)
		}
	}()

	fn, allowed := m.lookup(r.Method, normalizePath(r.URL.Path))
	if fn == nil {
		if len(allowed) > 0 {
			// RFC 7231: a 405 response must carry the Allow header
			ww.Header().Set("Allow", strings.Join(allowed, ", "))
			m.errorHandler(ctx, ErrMethodNotAllowed)
			return
		}
		m.errorHandler(ctx, ErrNotFound)
		return
	}

	if len(m.middlewares) > 0 {
		fn = chain(m.middlewares, fn)
	}

	resp := fn(ctx)
	if resp == nil {
		m.errorHandler(ctx, ErrNilResponse)
		return
	}

	// Middleware may have replaced the request (SetValue), render with the latest one.
	if err := resp(ww, ctx.Request()); err != nil {
		m.errorHandler(ctx, err)
	}
}

// lookup finds the handler for method and path. When the path exists but the
// method does not, it returns the allowed methods instead.
func (m *mux[C]) lookup(method, path string) (handler.HandlerFunc[C], []string) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	methods, ok := m.routes[path]
	if !ok {
		return nil, nil
	}
	if fn, ok := methods[method]; ok {
		return fn, nil
	}
	if fn, ok := methods[anyMethod]; ok {
		return fn, nil
	}

	allowed := make([]string, 0, len(methods))
	for mt := range methods {
		allowed = append(allowed, mt)
	}
	slices.Sort(allowed)
	return nil, allowed
}

// Get registers a handler for GET requests.
func (m *mux[C]) Get(pattern string, h handler.HandlerFunc[C]) {
	m.handle(http.MethodGet, pattern, h)
}

// Post registers a handler for POST requests.
func (m *mux[C]) Post(pattern string, h handler.HandlerFunc[C]) {
	m.handle(http.MethodPost, pattern, h)
}

// Handle registers a handler for all HTTP methods.
func (m *mux[C]) Handle(pattern string, h handler.HandlerFunc[C]) {
	m.handle(anyMethod, pattern, h)
}

// Method registers a handler for one or more specific HTTP methods.
func (m *mux[C]) Method(pattern string, h handler.HandlerFunc[C], methods ...string) {
	if len(methods) == 0 {
		panic(fmt.Errorf("%w: no methods provided", ErrInvalidMethod))
	}

	for _, method := range methods {
		method = strings.ToUpper(strings.TrimSpace(method))
		if method == "" || method == anyMethod {
			panic(fmt.Errorf("%w: %q", ErrInvalidMethod, method))
		}
		m.handle(method, pattern, h)
	}
}

// Use appends middleware to the router.
func (m *mux[C]) Use(middlewares ...handler.Middleware[C]) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.sealed {
		panic("router: all middlewares must be defined before routes on a mux")
	}
	m.middlewares = append(m.middlewares, middlewares...)
}

// Routes returns all registered routes sorted by pattern and method.
func (m *mux[C]) Routes() []Route {
	m.mu.RLock()
	defer m.mu.RUnlock()

	routes := make([]Route, 0, len(m.routes))
	for pattern, methods := range m.routes {
		for method := range methods {
			routes = append(routes, Route{Method: method, Pattern: pattern})
		}
	}
	slices.SortFunc(routes, func(a, b Route) int {
		if c := strings.Compare(a.Pattern, b.Pattern); c != 0 {
			return c
		}
		return strings.Compare(a.Method, b.Method)
	})
	return routes
}

func (m *mux[C]) handle(method, pattern string, h handler.HandlerFunc[C]) {
	if len(pattern) == 0 || pattern[0] != '/' {
		panic(fmt.Errorf("%w: '%s'", ErrInvalidPattern, pattern))
	}
	if h == nil {
		panic(fmt.Errorf("%w: nil handler for '%s'", ErrInvalidPattern, pattern))
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.sealed = true
	path := normalizePath(pattern)

	methods, ok := m.routes[path]
	if !ok {
		methods = make(map[string]handler.HandlerFunc[C])
		m.routes[path] = methods
	}
	if _, exists := methods[method]; exists {
		panic(fmt.Errorf("%w: %s %s", ErrDuplicateRoute, method, path))
	}
	methods[method] = h
}

// normalizePath drops a trailing slash so "/send" and "/send/" match the same route.
func normalizePath(p string) string {
	if p == "" {
		return "/"
	}
	if len(p) > 1 && strings.HasSuffix(p, "/") {
		if p = strings.TrimRight(p, "/"); p == "" {
			return "/"
		}
	}
	return p
}
