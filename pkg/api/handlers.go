package api

import (
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/cortexkv/kvdb/pkg/dberr"
	"github.com/cortexkv/kvdb/pkg/store"
)

// Server holds the API server state: the engine it fronts and the
// metrics it records against.
type Server struct {
	engine  *store.Engine
	metrics *Metrics
}

// NewServer creates a new API server over engine.
func NewServer(engine *store.Engine, metrics *Metrics) *Server {
	return &Server{engine: engine, metrics: metrics}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	sendSuccess(w, map[string]string{"status": "healthy"})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	keys := s.engine.Len()
	s.metrics.UpdateDBStats(keys)
	sendSuccess(w, map[string]int{"keys": keys})
}

func modeFromQuery(r *http.Request) store.Mode {
	switch r.URL.Query().Get("mode") {
	case "insert":
		return store.Insert
	case "update":
		return store.Update
	default:
		return store.Upsert
	}
}

func (s *Server) handlePut(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	key := chi.URLParam(r, "key")
	if key == "" {
		s.metrics.RecordDBOperation("put", false, time.Since(start))
		sendError(w, "key is required", http.StatusBadRequest)
		return
	}

	value, err := io.ReadAll(r.Body)
	if err != nil {
		s.metrics.RecordDBOperation("put", false, time.Since(start))
		sendError(w, "failed to read request body", http.StatusBadRequest)
		return
	}

	changed, err := s.engine.Set([]byte(key), value, modeFromQuery(r))
	s.metrics.RecordDBOperation("put", err == nil, time.Since(start))
	if err != nil {
		writeEngineError(w, err)
		return
	}
	sendSuccess(w, map[string]bool{"changed": changed})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	key := chi.URLParam(r, "key")
	if key == "" {
		s.metrics.RecordDBOperation("get", false, time.Since(start))
		sendError(w, "key is required", http.StatusBadRequest)
		return
	}

	value, ok := s.engine.Get([]byte(key))
	s.metrics.RecordDBOperation("get", ok, time.Since(start))
	if !ok {
		sendError(w, "key not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(value)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	key := chi.URLParam(r, "key")
	if key == "" {
		s.metrics.RecordDBOperation("delete", false, time.Since(start))
		sendError(w, "key is required", http.StatusBadRequest)
		return
	}

	existed, err := s.engine.Del([]byte(key))
	s.metrics.RecordDBOperation("delete", err == nil, time.Since(start))
	if err != nil {
		writeEngineError(w, err)
		return
	}
	if !existed {
		sendError(w, "key not found", http.StatusNotFound)
		return
	}
	sendSuccess(w, map[string]bool{"deleted": true})
}

// writeEngineError maps a domain or I/O error from the engine to an
// HTTP status: user-input errors are 400, everything else is 500.
func writeEngineError(w http.ResponseWriter, err error) {
	if code, ok := dberr.CodeOf(err); ok {
		switch code {
		case dberr.KeyTooLarge, dberr.ValueTooLarge, dberr.BadKey, dberr.TypeMismatch:
			sendError(w, err.Error(), http.StatusBadRequest)
			return
		}
	}
	sendError(w, err.Error(), http.StatusInternalServerError)
}
