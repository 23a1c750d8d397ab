package middleware

import (
	"net/http"
	"strconv"
	"time"

	"nicu-progress/internal/platform/logger"
	"nicu-progress/internal/platform/metrics"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// RequestLog registra cada request (método, path, status, duración, request id)
// y cuenta el request en metrics. Debe ir después de chimw.RequestID.
func RequestLog(log logger.Logger, m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			if m != nil {
				m.HTTPRequests.WithLabelValues(r.Method, strconv.Itoa(status)).Inc()
			}

			fields := map[string]any{
				"method":      r.Method,
				"path":        r.URL.Path,
				"status":      status,
				"bytes":       ww.BytesWritten(),
				"duration_ms": time.Since(start).Milliseconds(),
				"request_id":  chimw.GetReqID(r.Context()),
			}
			switch {
			case status >= 500:
				log.Error("http request", fields)
			case status >= 400:
				log.Warn("http request", fields)
			default:
				log.Debug("http request", fields)
			}
		})
	}
}
