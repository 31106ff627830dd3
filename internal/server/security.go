package server

import (
	"fmt"
	"net/http"
	"strings"
)

type SecurityConfig struct {
	BaseURL string
	// MediaOrigins may serve thumbnails, avatars and video files.
	MediaOrigins []string
}

func securityHeaders(cfg SecurityConfig) func(http.Handler) http.Handler {
	strictTransport := hasHTTPS(cfg.BaseURL)

	mediaSuffix := ""
	if len(cfg.MediaOrigins) > 0 {
		mediaSuffix = " " + strings.Join(cfg.MediaOrigins, " ")
	}
	csp := fmt.Sprintf(
		"default-src 'self'; img-src 'self' data:%s; media-src 'self'%s; script-src 'self'; style-src 'self'; connect-src 'self'; frame-ancestors 'self';",
		mediaSuffix, mediaSuffix,
	)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Referrer-Policy", "no-referrer")
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "SAMEORIGIN")
			w.Header().Set("Permissions-Policy", "camera=(), microphone=(), geolocation=(), fullscreen=(self), picture-in-picture=(self)")
			w.Header().Set("Content-Security-Policy", csp)

			if strictTransport {
				w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
			}

			next.ServeHTTP(w, r)
		})
	}
}

func hasHTTPS(baseURL string) bool {
	return strings.HasPrefix(baseURL, "https://")
}
