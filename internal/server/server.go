package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"word-explainer/internal/config"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// maxTimeoutMargin caps the time reserved for writing the response.
const maxTimeoutMargin = time.Second

// NewMux wires the explain endpoint, the liveness probe and the metrics endpoint.
// explainTimeout bounds each explanation; zero disables it.
func NewMux(gen Generator, maxBodySize int64, explainTimeout time.Duration) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/explain", NewExplainHandler(gen, maxBodySize, explainTimeout))

	// Liveness probe
	mux.HandleFunc("/health/live", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			slog.Warn("received request at root path", "method", r.Method, "hint", "POST /explain")
		}
		http.NotFound(w, r)
	})

	return withRequestID(mux)
}

// New builds the HTTP server from configuration.
func New(cfg *config.Config, gen Generator) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      NewMux(gen, cfg.Server.MaxBodySize, ExplainTimeout(cfg.Server.WriteTimeout)),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}

// withRequestID echoes the caller's X-Request-ID or assigns a new one.
func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

// ExplainTimeout returns the explanation deadline that leaves room to write the
// response before the server's write timeout closes the connection.
func ExplainTimeout(writeTimeout time.Duration) time.Duration {
	if writeTimeout <= 0 {
		return 0
	}
	margin := writeTimeout / 10
	if margin > maxTimeoutMargin {
		margin = maxTimeoutMargin
	}
	return writeTimeout - margin
}
