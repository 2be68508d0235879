package server

import (
	"net/http"
	"strings"
)

// SecurityConfig controls the hardening applied to every HTTP response:
// standard security headers, CORS policy, and the upper bound on the term
// count a request may ask for.
type SecurityConfig struct {
	// EnableCORS turns on CORS header handling.
	EnableCORS bool
	// AllowedOrigins lists origins allowed to call the API ("*" for any).
	AllowedOrigins []string
	// AllowedMethods lists the HTTP methods advertised in CORS responses.
	AllowedMethods []string
	// MaxTermsValue caps the terms query parameter to bound request cost.
	MaxTermsValue uint64
}

// DefaultSecurityConfig returns the default security configuration:
// CORS open to any origin for the read-only API, with the term count capped.
func DefaultSecurityConfig() SecurityConfig {
	return SecurityConfig{
		EnableCORS:     true,
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		MaxTermsValue:  1_000_000_000,
	}
}

// SecurityMiddleware wraps next with security headers, CORS handling, and
// OPTIONS preflight short-circuiting.
func SecurityMiddleware(config SecurityConfig, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-XSS-Protection", "1; mode=block")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")

		if config.EnableCORS {
			if origin, ok := resolveOrigin(config.AllowedOrigins, r.Header.Get("Origin")); ok {
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Access-Control-Allow-Methods", strings.Join(config.AllowedMethods, ", "))
				h.Set("Access-Control-Allow-Headers", "Content-Type, Accept")
				h.Set("Access-Control-Max-Age", "86400")
			}
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next(w, r)
	}
}

// resolveOrigin returns the Access-Control-Allow-Origin value for a request
// origin, or false if the origin is not allowed. A wildcard entry matches
// even requests without an Origin header.
func resolveOrigin(allowed []string, origin string) (string, bool) {
	for _, a := range allowed {
		if a == "*" {
			return "*", true
		}
		if origin != "" && a == origin {
			return origin, true
		}
	}
	return "", false
}
