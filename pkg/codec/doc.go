// Package codec provides record serialization and deserialization for Muninn.
//
// The codec package defines the Record envelope persisted for every cache
// entry and the Codec contract used to move it to and from its on-disk
// text form. This is the foundation for Muninn's type-preserving
// persistence layer.
//
// # Envelope Format
//
// Records are serialized as a self-describing JSON envelope:
//
//	{
//	  "data": <payload>,
//	  "dataTypeName": "User",
//	  "dataContainerTypeName": "collection",
//	  "dataKeyTypeName": "string",
//	  "sizeOnMb": 0.0012,
//	  "source": "memory",
//	  "timestamp": 1719043200000,
//	  "lifeTimeMillis": 60000,
//	  "expirable": true
//	}
//
// Fields:
//   - data: the cached value, encoded by the underlying Codec
//   - dataTypeName: registered name of the element type (map value type
//     for maps)
//   - dataContainerTypeName: registered name or builtin token of the
//     container; absent for bare scalars
//   - dataKeyTypeName: registered name of the map key type; present only
//     for maps
//   - sizeOnMb: advisory only; recomputed from the physical file length
//     on every read
//   - source, timestamp, lifeTimeMillis, expirable: cache-policy metadata
//     the persistence layer passes through untouched
//
// # Two-Phase Decode
//
// Because the stored text carries no machine-level generic type tags, a
// Record whose payload is parameterized (a collection, array, or map)
// is decoded in two passes: an envelope pass that reads only the three
// type-name fields, and a typed pass that re-decodes the same bytes into
// the fully parameterized target built by the shape resolver. See the
// shape package for classification and target construction.
//
// # Error Handling
//
// Decode reports malformed input as an error; it never panics. Stores
// translate decode errors on read paths into cache misses.
//
// # Thread Safety
//
// JSONCodec is stateless and safe for concurrent use. Record values are
// treated as immutable once persisted; an update is a full overwrite
// under the same key.
package codec
