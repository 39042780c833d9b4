package middleware

import (
	"net/http"
	"time"

	"github.com/kbukum/hostkit/logger"
)

// probePaths are polled by orchestrators and would drown the log.
var probePaths = map[string]struct{}{
	"/health": {},
	"/info":   {},
}

// RequestLogger logs one record per request. 5xx responses log at error,
// 4xx at warn and the rest at debug.
func RequestLogger(log *logger.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := probePaths[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			rec := newRecorder(w)
			next.ServeHTTP(rec, r)

			status := rec.Status()
			fields := logger.Fields(
				"method", r.Method,
				"path", r.URL.Path,
				"bytes", rec.written,
				logger.FieldStatus, status,
				logger.FieldDuration, time.Since(start).Milliseconds(),
			)
			l := log.WithContext(r.Context())
			switch {
			case status >= http.StatusInternalServerError:
				l.Error("Request completed", fields)
			case status >= http.StatusBadRequest:
				l.Warn("Request completed", fields)
			default:
				l.Debug("Request completed", fields)
			}
		})
	}
}
