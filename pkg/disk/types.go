package disk

import (
	"github.com/muninn-cache/muninn/pkg/codec"
)

// Persistence is the seam a cache orchestrator consumes. Disk is the
// primary implementation; PebbleStore backs the same contract with a
// single-file database.
//
// Retrieval reports absence, never errors: a missing entry and a corrupt
// one are indistinguishable by design, and callers must treat either as
// a cache miss.
type Persistence interface {
	SaveRecord(key string, record *codec.Record, encrypted bool, encryptKey string) error
	RetrieveRecord(key string, encrypted bool, encryptKey string) (*codec.Record, bool)
	Evict(key string) error
	EvictAll() error
	AllKeys() []string
	StoredMB() int
}

// Errors
var (
	ErrNilRecord = &StoreError{"nil record"}
)

// StoreError represents a persistence layer error
type StoreError struct {
	Message string
}

func (e *StoreError) Error() string {
	return e.Message
}
