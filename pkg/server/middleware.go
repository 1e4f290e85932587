package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/platinummonkey/ktlint-report/pkg/log"
	"github.com/platinummonkey/ktlint-report/pkg/observability"
)

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// loggingMiddleware logs every request at debug level
func loggingMiddleware(l log.Log) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(rw, r)

			if l.IsDebugEnabled() {
				l.Debug(fmt.Sprintf("[%s] %s %s - %d (%v)",
					r.Method,
					r.URL.Path,
					r.RemoteAddr,
					rw.statusCode,
					time.Since(start),
				))
			}
		})
	}
}

// recoveryMiddleware turns a handler panic into a 500 response
func recoveryMiddleware(l log.Log) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer observability.RecoverPanicWithCallback(l, r.Method+" "+r.URL.Path, func() {
				writeErrorMessage(w, http.StatusInternalServerError, "internal server error")
			})
			next.ServeHTTP(w, r)
		})
	}
}

// chain applies middlewares so that the first one is outermost
func chain(middlewares ...func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	return func(final http.Handler) http.Handler {
		for i := len(middlewares) - 1; i >= 0; i-- {
			final = middlewares[i](final)
		}
		return final
	}
}
