package middleware

import (
	"net/http"
)

// Middleware wraps an http.Handler. It has the same shape as chi middleware,
// so values pass straight to chi's Router.Use.
type Middleware func(http.Handler) http.Handler

// Chain composes middleware; the first one sees the request first.
func Chain(middlewares ...Middleware) Middleware {
	return func(final http.Handler) http.Handler {
		for i := len(middlewares) - 1; i >= 0; i-- {
			final = middlewares[i](final)
		}
		return final
	}
}

// NoStore marks every response as uncacheable.
func NoStore() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "no-store")
			next.ServeHTTP(w, r)
		})
	}
}
