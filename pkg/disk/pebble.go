package disk

import (
	"fmt"
	"math"

	"github.com/cockroachdb/pebble"

	"github.com/muninn-cache/muninn/pkg/codec"
	"github.com/muninn-cache/muninn/pkg/crypt"
	"github.com/muninn-cache/muninn/pkg/shape"
)

// PebbleStore backs the Persistence contract with a pebble database
// instead of a directory of files, for deployments that want a single
// on-disk artifact. Records keep the same envelope and the same
// two-phase decode; encryption seals the serialized value bytes rather
// than a file.
type PebbleStore struct {
	db       *pebble.DB
	codec    codec.Codec
	resolver *shape.Resolver
}

// OpenPebble opens (or creates) a pebble-backed store at path
func OpenPebble(path string, resolver *shape.Resolver) (*PebbleStore, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to open pebble store: %w", err)
	}

	return &PebbleStore{
		db:       db,
		codec:    codec.NewJSONCodec(),
		resolver: resolver,
	}, nil
}

// Close releases the underlying database
func (s *PebbleStore) Close() error {
	return s.db.Close()
}

// NewRecord builds a record with shape metadata from the store's registry
func (s *PebbleStore) NewRecord(data any, opts ...codec.RecordOption) (*codec.Record, error) {
	dataType, containerType, keyType, err := shape.Describe(s.resolver.Registry(), data)
	if err != nil {
		return nil, err
	}

	record := codec.NewRecord(data, opts...)
	record.DataTypeName = dataType
	record.DataContainerTypeName = containerType
	record.DataKeyTypeName = keyType

	return record, nil
}

// SaveRecord encodes the record and stores it under key, sealing the
// bytes first when encrypted is true.
func (s *PebbleStore) SaveRecord(key string, record *codec.Record, encrypted bool, encryptKey string) error {
	if record == nil {
		return ErrNilRecord
	}

	buf, err := s.codec.Encode(record)
	if err != nil {
		return fmt.Errorf("failed to encode record %q: %w", key, err)
	}

	if encrypted {
		if buf, err = crypt.Seal(encryptKey, buf); err != nil {
			return fmt.Errorf("failed to encrypt record %q: %w", key, err)
		}
	}

	if err := s.db.Set([]byte(key), buf, pebble.NoSync); err != nil {
		return fmt.Errorf("failed to write record %q: %w", key, err)
	}

	return nil
}

// RetrieveRecord reads back the record stored under key via the
// two-phase decode. SizeOnMb is recomputed from the stored byte length.
// Any failure reports absence.
func (s *PebbleStore) RetrieveRecord(key string, encrypted bool, encryptKey string) (*codec.Record, bool) {
	stored, closer, err := s.db.Get([]byte(key))
	if err != nil {
		return nil, false
	}

	raw := make([]byte, len(stored))
	copy(raw, stored)
	closer.Close()

	if encrypted {
		if raw, err = crypt.Open(encryptKey, raw); err != nil {
			return nil, false
		}
	}

	record, err := decodeRecord(s.codec, s.resolver, raw)
	if err != nil {
		return nil, false
	}

	record.SizeOnMb = float64(len(raw)) / 1024 / 1024
	return record, true
}

// Evict deletes the record stored under key; missing keys are a no-op
func (s *PebbleStore) Evict(key string) error {
	if err := s.db.Delete([]byte(key), pebble.NoSync); err != nil {
		return fmt.Errorf("failed to evict %q: %w", key, err)
	}
	return nil
}

// EvictAll deletes every stored record
func (s *PebbleStore) EvictAll() error {
	for _, key := range s.AllKeys() {
		if err := s.Evict(key); err != nil {
			return err
		}
	}
	return nil
}

// AllKeys lists every stored key
func (s *PebbleStore) AllKeys() []string {
	keys := []string{}

	iter, err := s.db.NewIter(&pebble.IterOptions{})
	if err != nil {
		return keys
	}
	defer iter.Close()

	for iter.First(); iter.Valid(); iter.Next() {
		keys = append(keys, string(iter.Key()))
	}

	return keys
}

// StoredMB reports the total stored record size in megabytes, rounded
// up to the next whole number.
func (s *PebbleStore) StoredMB() int {
	iter, err := s.db.NewIter(&pebble.IterOptions{})
	if err != nil {
		return 0
	}
	defer iter.Close()

	var bytes int64
	for iter.First(); iter.Valid(); iter.Next() {
		bytes += int64(len(iter.Value()))
	}

	return int(math.Ceil(float64(bytes) / 1024 / 1024))
}
