// Package handler defines the request processing types shared by the router,
// middleware and the relay: a Context that wraps the request, a Response
// that renders it, and the HandlerFunc/Middleware/ErrorHandler signatures
// built on top of them.
//
// Handlers never write to the ResponseWriter directly. They return a Response
// and the router executes it, passing rendering errors to its ErrorHandler:
//
//	func hello(ctx *router.Context) handler.Response {
//		return response.JSON(map[string]string{"hello": "world"})
//	}
//
// Middleware wraps a HandlerFunc and may wrap the returned Response as well,
// which is how the logging middleware observes the final status code:
//
//	func timing[C handler.Context](next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
//		return func(ctx C) handler.Response {
//			start := time.Now()
//			resp := next(ctx)
//			return func(w http.ResponseWriter, r *http.Request) error {
//				defer log.Println(time.Since(start))
//				return resp(w, r)
//			}
//		}
//	}
package handler
