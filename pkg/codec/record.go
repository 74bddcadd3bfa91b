package codec

import "time"

// Data sources a record can originate from.
const (
	SourceMemory      = "memory"
	SourcePersistence = "persistence"
	SourceCloud       = "cloud"
)

// Record is the persisted envelope combining a cached value with the
// metadata needed to reconstruct its runtime shape on read.
//
// The three type-name fields are the shape metadata: DataTypeName names
// the element type (or the value type, for maps), DataContainerTypeName
// names the container and is empty for bare scalars, and DataKeyTypeName
// names the map key type and is set only for maps.
//
// SizeOnMb is never trusted from persisted content; the store overwrites
// it with the actual file length at retrieval time. The remaining fields
// are cache-policy metadata that passes through the store opaquely.
type Record struct {
	Data                  any     `json:"data"`
	DataTypeName          string  `json:"dataTypeName"`
	DataContainerTypeName string  `json:"dataContainerTypeName,omitempty"`
	DataKeyTypeName       string  `json:"dataKeyTypeName,omitempty"`
	SizeOnMb              float64 `json:"sizeOnMb"`

	Source         string `json:"source,omitempty"`
	Timestamp      int64  `json:"timestamp"`
	LifeTimeMillis int64  `json:"lifeTimeMillis,omitempty"`
	Expirable      bool   `json:"expirable"`
}

// RecordOption configures optional metadata on a new record
type RecordOption func(*Record)

// WithSource sets where the record originated from
func WithSource(source string) RecordOption {
	return func(r *Record) {
		r.Source = source
	}
}

// WithLifeTime marks the record expirable after the given duration
func WithLifeTime(d time.Duration) RecordOption {
	return func(r *Record) {
		r.LifeTimeMillis = d.Milliseconds()
		r.Expirable = true
	}
}

// NewRecord creates a record around the given value with the current
// timestamp. The shape metadata fields are left empty; stores fill them
// in from their type registry before persisting.
func NewRecord(data any, opts ...RecordOption) *Record {
	r := &Record{
		Data:      data,
		Source:    SourceMemory,
		Timestamp: time.Now().UnixMilli(),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}
