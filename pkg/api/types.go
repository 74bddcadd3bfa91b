package api

import "github.com/muninn-cache/muninn/pkg/codec"

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// RecordResponse is the wire form of a retrieved record
type RecordResponse struct {
	Key                   string  `json:"key"`
	Data                  any     `json:"data"`
	DataTypeName          string  `json:"data_type_name"`
	DataContainerTypeName string  `json:"data_container_type_name,omitempty"`
	DataKeyTypeName       string  `json:"data_key_type_name,omitempty"`
	SizeOnMb              float64 `json:"size_on_mb"`
	Source                string  `json:"source,omitempty"`
	Timestamp             int64   `json:"timestamp"`
}

// StatsResponse reports store-level statistics
type StatsResponse struct {
	Keys     int `json:"keys"`
	StoredMB int `json:"stored_mb"`
}

// ServerConfig holds configuration for the API server
type ServerConfig struct {
	Port          int
	APIKey        string
	EncryptionKey string // Key used when serving encrypted records
}

// Store defines the persistence operations the API surfaces
type Store interface {
	RetrieveRecord(key string, encrypted bool, encryptKey string) (*codec.Record, bool)
	Evict(key string) error
	EvictAll() error
	AllKeys() []string
	StoredMB() int
}
