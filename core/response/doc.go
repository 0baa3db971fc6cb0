// Package response provides constructors for handler.Response values:
// plain text, JSON with an explicit status code, and errors handed to the
// router's error handler.
//
//	return response.JSONWithStatus(result, http.StatusUnprocessableEntity)
//
// HTTPError values implement StatusCode() so the router's default error
// handler can pick the right status when they are returned through Error.
package response
