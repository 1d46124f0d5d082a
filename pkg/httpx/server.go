package httpx

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/unrolled/secure"
)

const (
	// MaxBodyBytes caps request bodies; item payloads are a name and a flag.
	MaxBodyBytes = 1 << 20 // 1 MB

	requestsPerMinute = 300
	handlerTimeout    = 30 * time.Second
)

// ServerConfig holds the options for NewRouter.
type ServerConfig struct {
	IsDevelopment bool
	// CORSAllowedOrigins is a comma-separated list of allowed origins.
	// Pass "*" (dev only) to allow all origins.
	CORSAllowedOrigins string
}

// Middlewares are the app-specific middlewares NewRouter places around the
// chi built-ins. Nil entries are skipped.
type Middlewares struct {
	Logger   func(http.Handler) http.Handler
	Recovery func(http.Handler) http.Handler
	Sentry   func(http.Handler) http.Handler
	Otel     func(http.Handler) http.Handler
}

// NewRouter returns a chi.Mux pre-wired with the service's middleware stack.
//
// Middleware order (outermost → innermost):
//  1. Recovery        catches panics that re-panic from sentry
//  2. Sentry          captures panics, re-panics
//  3. RequestID       unique X-Request-Id per request
//  4. Otel            starts trace span per request
//  5. Logger          logs request + trace_id/span_id
//  6. RealIP          sets RemoteAddr from X-Forwarded-For
//  7. CORS            cross-origin preflight and headers
//  8. BodyLimit       MaxBodyBytes request body cap
//  9. Timeout         handler deadline
//  10. Security headers
//
// The per-IP rate limit is not part of the stack: resource routes opt in with
// RateLimit so /healthcheck and /readyz always answer.
func NewRouter(cfg ServerConfig, mw Middlewares) *chi.Mux {
	sec := secure.New(secure.Options{
		STSSeconds:            63072000,
		STSIncludeSubdomains:  true,
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		BrowserXssFilter:      true,
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		ContentSecurityPolicy: "default-src 'self'",
		PermissionsPolicy:     "geolocation=(), microphone=(), camera=(), usb=(), magnetometer=(), gyroscope=()",
		IsDevelopment:         cfg.IsDevelopment,
	})

	chain := []func(http.Handler) http.Handler{
		mw.Recovery,
		mw.Sentry,
		middleware.RequestID,
		mw.Otel,
		mw.Logger,
		middleware.RealIP,
		CORSMiddleware(cfg.CORSAllowedOrigins),
		RequestBodyLimit(MaxBodyBytes),
		middleware.Timeout(handlerTimeout),
		sec.Handler,
	}

	r := chi.NewRouter()
	for _, m := range chain {
		if m != nil {
			r.Use(m)
		}
	}
	return r
}

// RateLimit returns the per-IP request budget for resource routes.
func RateLimit() func(http.Handler) http.Handler {
	return httprate.LimitByIP(requestsPerMinute, time.Minute)
}

// CORSMiddleware returns a CORS handler restricted to the given allowed origins.
// allowedOrigins is a comma-separated list (e.g. "https://app.example.com,http://localhost:3000").
// Pass "*" to allow all origins (development only).
func CORSMiddleware(allowedOrigins string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   parseOrigins(allowedOrigins),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	})
}

func parseOrigins(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p := strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

// RequestBodyLimit returns middleware that caps the request body at maxBytes.
// When the limit is exceeded, reads on the body return an error that handlers
// should convert to a 413 response.
func RequestBodyLimit(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// MountStatic serves files under dir at /static/*. It reports false and
// mounts nothing when dir does not exist.
func MountStatic(r chi.Router, dir string) bool {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return false
	}
	fs := http.StripPrefix("/static/", http.FileServer(http.Dir(dir)))
	r.Get("/static/*", fs.ServeHTTP)
	return true
}

// GreetingHandler answers GET / with a short environment-dependent greeting.
func GreetingHandler(isDevelopment bool) http.HandlerFunc {
	msg := "Hello World!"
	if isDevelopment {
		msg = "Hello dev!"
	}
	return func(w http.ResponseWriter, _ *http.Request) {
		Text(w, http.StatusOK, msg)
	}
}

// NewServer returns an *http.Server with production-ready timeouts.
func NewServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      handlerTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1 MB
	}
}
