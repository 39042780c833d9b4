package middleware

import (
	"context"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/hostkit/observability"
)

type routeKey struct{}

// SetRoute records the route template that matched the request. Tracing
// names the server span "METHOD route" once the handler returns.
func SetRoute(ctx context.Context, route string) {
	if p, ok := ctx.Value(routeKey{}).(*string); ok && route != "" {
		*p = route
	}
}

// Tracing opens a server span per request, continuing any trace context the
// caller propagated. The span is named after the method and, when known, the
// matched route; never the raw path. Without an installed tracer provider
// the spans are no-ops.
func Tracing() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))
			ctx, span := observability.StartSpan(ctx, r.Method,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					attribute.String("http.request.method", r.Method),
					attribute.String("url.path", r.URL.Path),
				),
			)
			defer span.End()

			var route string
			req := r.WithContext(context.WithValue(ctx, routeKey{}, &route))
			rec := newRecorder(w)
			next.ServeHTTP(rec, req)

			if route == "" {
				route = muxRoute(req.Pattern)
			}
			if route != "" {
				span.SetName(r.Method + " " + route)
				span.SetAttributes(attribute.String("http.route", route))
			}

			status := rec.Status()
			span.SetAttributes(attribute.Int("http.response.status_code", status))
			if status >= http.StatusInternalServerError {
				span.SetStatus(codes.Error, http.StatusText(status))
			}
		})
	}
}

// muxRoute strips the method and host from a ServeMux pattern:
// "GET example.com/foos/{id}" becomes "/foos/{id}".
func muxRoute(pattern string) string {
	if i := strings.Index(pattern, "/"); i >= 0 {
		return pattern[i:]
	}
	return ""
}
