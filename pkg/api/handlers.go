package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// Server handles HTTP requests against a record store
type Server struct {
	store   Store
	config  ServerConfig
	metrics *Metrics
	logger  *slog.Logger
}

// NewServer creates a new API server
func NewServer(store Store, config ServerConfig, metrics *Metrics, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		store:   store,
		config:  config,
		metrics: metrics,
		logger:  logger,
	}
}

// handleHealth reports service liveness
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	sendSuccess(w, map[string]string{"status": "ok"})
}

// handleListKeys lists every key in the store
func (s *Server) handleListKeys(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	keys := s.store.AllKeys()
	s.metrics.RecordStoreOperation("all_keys", statusSuccess, time.Since(start))

	sendSuccess(w, keys)
}

// handleGetRecord retrieves a single record. Pass ?encrypted=true for
// records saved encrypted; the server's configured encryption key is
// used to open them.
func (s *Server) handleGetRecord(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	encrypted := r.URL.Query().Get("encrypted") == "true"

	start := time.Now()
	record, ok := s.store.RetrieveRecord(key, encrypted, s.config.EncryptionKey)
	if !ok {
		s.metrics.RecordStoreOperation("retrieve_record", statusMiss, time.Since(start))
		sendError(w, "record not found", http.StatusNotFound)
		return
	}
	s.metrics.RecordStoreOperation("retrieve_record", statusSuccess, time.Since(start))

	sendSuccess(w, RecordResponse{
		Key:                   key,
		Data:                  record.Data,
		DataTypeName:          record.DataTypeName,
		DataContainerTypeName: record.DataContainerTypeName,
		DataKeyTypeName:       record.DataKeyTypeName,
		SizeOnMb:              record.SizeOnMb,
		Source:                record.Source,
		Timestamp:             record.Timestamp,
	})
}

// handleEvict deletes a single record; evicting a missing key succeeds
func (s *Server) handleEvict(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	start := time.Now()
	if err := s.store.Evict(key); err != nil {
		s.metrics.RecordStoreOperation("evict", statusError, time.Since(start))
		s.logger.Error("evict failed", "key", key, "error", err)
		sendError(w, "failed to evict record", http.StatusInternalServerError)
		return
	}
	s.metrics.RecordStoreOperation("evict", statusSuccess, time.Since(start))

	sendSuccess(w, map[string]string{"evicted": key})
}

// handleEvictAll deletes every record in the store
func (s *Server) handleEvictAll(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if err := s.store.EvictAll(); err != nil {
		s.metrics.RecordStoreOperation("evict_all", statusError, time.Since(start))
		s.logger.Error("evict all failed", "error", err)
		sendError(w, "failed to evict records", http.StatusInternalServerError)
		return
	}
	s.metrics.RecordStoreOperation("evict_all", statusSuccess, time.Since(start))

	sendSuccess(w, map[string]string{"evicted": "all"})
}

// handleStats reports key count and stored size
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats := StatsResponse{
		Keys:     len(s.store.AllKeys()),
		StoredMB: s.store.StoredMB(),
	}
	s.metrics.UpdateStoreStats(stats.Keys, stats.StoredMB)

	sendSuccess(w, stats)
}

// startMetricsUpdater periodically refreshes the store gauges
func (s *Server) startMetricsUpdater(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		s.metrics.UpdateStoreStats(len(s.store.AllKeys()), s.store.StoredMB())
	}
}
