package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/segmentio/ksuid"

	"github.com/cortexkv/kvdb/pkg/store"
)

// requestIDHeader is the header a ksuid-stamped request ID is echoed
// under, distinct from chi's own numeric request ID.
const requestIDHeader = "X-Request-Id"

// ksuidRequestID stamps every request with a K-sortable, globally
// unique ID so log lines and client retries can be correlated without
// a central counter.
func ksuidRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := ksuid.New().String()
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

// NewRouter builds the HTTP router: health, kv CRUD, stats, and
// Prometheus metrics, with API-key auth in front of everything but
// the metrics endpoint.
func NewRouter(engine *store.Engine, config ServerConfig) http.Handler {
	metrics := NewMetrics()
	server := NewServer(engine, metrics)

	r := chi.NewRouter()
	r.Use(ksuidRequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Handle("/metrics", metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(metrics.InstrumentAuthMiddleware(apiKeyMiddleware(config.APIKey)))

		r.Get("/health", metrics.InstrumentHandler("GET", "/api/v1/health", server.handleHealth))
		r.Get("/stats", metrics.InstrumentHandler("GET", "/api/v1/stats", server.handleStats))

		r.Put("/kv/{key}", metrics.InstrumentHandler("PUT", "/api/v1/kv/{key}", server.handlePut))
		r.Get("/kv/{key}", metrics.InstrumentHandler("GET", "/api/v1/kv/{key}", server.handleGet))
		r.Delete("/kv/{key}", metrics.InstrumentHandler("DELETE", "/api/v1/kv/{key}", server.handleDelete))
	})

	return r
}

// StartServer opens engine, builds the router, and blocks serving
// HTTP on config.Port.
func StartServer(engine *store.Engine, config ServerConfig) error {
	if err := engine.Open(); err != nil {
		return fmt.Errorf("failed to open engine: %w", err)
	}

	addr := fmt.Sprintf("%s:%d", config.Bind, config.Port)
	fmt.Printf("kvdb API listening on %s\n", addr)
	return http.ListenAndServe(addr, NewRouter(engine, config))
}
