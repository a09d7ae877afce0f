package middlewares

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// Logger logs one line per completed request. Level follows the response
// status: 5xx at error, 4xx at warn, everything else at info.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		defer func() {
			attrs := []any{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr),
				slog.Int("status", ww.Status()),
				slog.Int("bytes", ww.BytesWritten()),
				slog.Duration("duration", time.Since(start)),
			}

			ctx := r.Context()
			switch {
			case ww.Status() >= 500:
				slog.ErrorContext(ctx, "http request completed", attrs...)
			case ww.Status() >= 400:
				slog.WarnContext(ctx, "http request completed", attrs...)
			default:
				slog.InfoContext(ctx, "http request completed", attrs...)
			}
		}()

		next.ServeHTTP(ww, r)
	})
}
