package disk

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"reflect"

	"github.com/muninn-cache/muninn/pkg/codec"
	"github.com/muninn-cache/muninn/pkg/crypt"
	"github.com/muninn-cache/muninn/pkg/shape"
)

// Disk persists records as one file per key inside a single directory.
// The file name is exactly the key; callers are responsible for
// producing filesystem-safe keys. Writing an existing key fully
// replaces its content.
//
// Disk provides no locking across keys or across save/retrieve/evict on
// the same key. Concurrent access to the same key must be serialized by
// the caller.
type Disk struct {
	dir       string
	codec     codec.Codec
	resolver  *shape.Resolver
	encryptor *crypt.FileEncryptor
}

// Option configures a Disk store
type Option func(*Disk)

// WithCodec overrides the default JSON codec
func WithCodec(c codec.Codec) Option {
	return func(d *Disk) {
		d.codec = c
	}
}

// WithEncryptor overrides the default file encryptor
func WithEncryptor(e *crypt.FileEncryptor) Option {
	return func(d *Disk) {
		d.encryptor = e
	}
}

// New creates a disk store rooted at dir, creating the directory if
// needed. The resolver's registry decides which type names stored
// records may carry.
func New(dir string, resolver *shape.Resolver, opts ...Option) (*Disk, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache dir: %w", err)
	}

	d := &Disk{
		dir:       dir,
		codec:     codec.NewJSONCodec(),
		resolver:  resolver,
		encryptor: crypt.NewFileEncryptor(),
	}

	for _, opt := range opts {
		opt(d)
	}

	return d, nil
}

// Dir returns the store's root directory
func (d *Disk) Dir() string {
	return d.dir
}

// NewRecord builds a record around data with its shape metadata derived
// from the store's type registry. Unregistered element, key, or
// container types are an error.
func (d *Disk) NewRecord(data any, opts ...codec.RecordOption) (*codec.Record, error) {
	dataType, containerType, keyType, err := shape.Describe(d.resolver.Registry(), data)
	if err != nil {
		return nil, err
	}

	record := codec.NewRecord(data, opts...)
	record.DataTypeName = dataType
	record.DataContainerTypeName = containerType
	record.DataKeyTypeName = keyType

	return record, nil
}

// SaveRecord encodes the record and writes it to the file named key,
// replacing any previous content. If encrypted is true the file is
// sealed in place afterwards. Failures here mean the store is unusable
// and are surfaced to the caller; nothing is retried.
func (d *Disk) SaveRecord(key string, record *codec.Record, encrypted bool, encryptKey string) error {
	if record == nil {
		return ErrNilRecord
	}

	buf, err := d.codec.Encode(record)
	if err != nil {
		return fmt.Errorf("failed to encode record %q: %w", key, err)
	}

	path := filepath.Join(d.dir, key)
	if err := os.WriteFile(path, buf, 0600); err != nil {
		return fmt.Errorf("failed to write record %q: %w", key, err)
	}

	if encrypted {
		if err := d.encryptor.Encrypt(encryptKey, path); err != nil {
			return fmt.Errorf("failed to encrypt record %q: %w", key, err)
		}
	}

	return nil
}

// RetrieveRecord reads back the record saved under key, reconstructing
// the original shape of its data via the two-phase decode protocol:
// an envelope pass extracts the type-name metadata, the resolver
// classifies it, and a typed pass re-decodes the same bytes into the
// fully parameterized target.
//
// SizeOnMb is overwritten with the actual file length; whatever value
// the payload carried is ignored. Any failure reports absence. If
// encrypted, the decrypted working file is deleted on every exit path.
func (d *Disk) RetrieveRecord(key string, encrypted bool, encryptKey string) (*codec.Record, bool) {
	path := filepath.Join(d.dir, key)

	if encrypted {
		working, err := d.encryptor.Decrypt(encryptKey, path)
		if err != nil {
			return nil, false
		}
		defer os.Remove(working)
		path = working
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}

	record, err := decodeRecord(d.codec, d.resolver, raw)
	if err != nil {
		return nil, false
	}

	if info, err := os.Stat(path); err == nil {
		record.SizeOnMb = float64(info.Size()) / 1024 / 1024
	}

	return record, true
}

// decodeRecord runs the two-phase decode over raw envelope bytes.
// The envelope pass leaves the data payload untyped; only the three
// type-name fields matter. The typed pass decodes the identical bytes a
// second time into a record whose data field is pre-seeded with a
// pointer to the resolved container type, which the codec fills in.
func decodeRecord(c codec.Codec, resolver *shape.Resolver, raw []byte) (*codec.Record, error) {
	var envelope codec.Record
	if err := c.Decode(raw, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode envelope: %w", err)
	}

	resolved, err := resolver.Resolve(envelope.DataTypeName, envelope.DataContainerTypeName, envelope.DataKeyTypeName)
	if err != nil {
		return nil, err
	}

	record := &codec.Record{Data: reflect.New(resolved.Container).Interface()}
	if err := c.Decode(raw, record); err != nil {
		return nil, fmt.Errorf("failed to decode record: %w", err)
	}

	// A null data payload nils out the seeded pointer
	if v := reflect.ValueOf(record.Data); v.Kind() == reflect.Pointer && !v.IsNil() {
		record.Data = v.Elem().Interface()
	}

	return record, nil
}

// Evict deletes the file named key. A missing key is a no-op.
func (d *Disk) Evict(key string) error {
	err := os.Remove(filepath.Join(d.dir, key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to evict %q: %w", key, err)
	}
	return nil
}

// EvictAll deletes every file directly inside the store directory.
// An unlistable directory means there is nothing to evict.
func (d *Disk) EvictAll() error {
	entries, err := os.ReadDir(d.dir)
	if err != nil {
		return nil
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if err := os.Remove(filepath.Join(d.dir, entry.Name())); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to evict %q: %w", entry.Name(), err)
		}
	}

	return nil
}

// AllKeys lists the names of all plain files directly under the store
// directory. Order is filesystem-defined.
func (d *Disk) AllKeys() []string {
	keys := []string{}

	entries, err := os.ReadDir(d.dir)
	if err != nil {
		return keys
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		keys = append(keys, entry.Name())
	}

	return keys
}

// StoredMB reports the total size of all stored records in megabytes,
// rounded up to the next whole number. An empty or unreadable directory
// reports 0.
func (d *Disk) StoredMB() int {
	entries, err := os.ReadDir(d.dir)
	if err != nil {
		return 0
	}

	var bytes int64
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		bytes += info.Size()
	}

	return int(math.Ceil(float64(bytes) / 1024 / 1024))
}
