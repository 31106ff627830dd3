package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/mssola/useragent"
)

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.statusCode = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// clientAttrs describes the user agent for the request log.
func clientAttrs(header string) []any {
	if header == "" {
		return nil
	}
	ua := useragent.New(header)
	if ua.Bot() {
		name, _ := ua.Browser()
		return []any{"client", "bot", "bot_name", name}
	}
	name, version := ua.Browser()
	client := "desktop"
	if ua.Mobile() {
		client = "mobile"
	}
	return []any{"client", client, "browser", name, "browser_version", version, "os", ua.OS()}
}

func slogMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/health" || r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		recorder := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(recorder, r)

		attrs := []any{
			"method", r.Method,
			"path", r.URL.Path,
			"status", recorder.statusCode,
			"duration_ms", time.Since(start).Milliseconds(),
			"remote_addr", r.RemoteAddr,
		}
		attrs = append(attrs, clientAttrs(r.UserAgent())...)
		slog.Info("http request", attrs...)
	})
}
