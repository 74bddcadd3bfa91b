package codec

import "encoding/json"

// Codec converts values to and from their serialized text form.
// Encode and Decode must be pure: no side effects, deterministic output
// for the same input.
type Codec interface {
	Encode(v any) ([]byte, error)
	Decode(data []byte, target any) error
}

// JSONCodec is the default Codec backed by encoding/json.
type JSONCodec struct{}

// NewJSONCodec creates a new JSON codec instance
func NewJSONCodec() JSONCodec {
	return JSONCodec{}
}

// Encode serializes a value to JSON
func (JSONCodec) Encode(v any) ([]byte, error) {
	return json.Marshal(v)
}

// Decode deserializes JSON into the target, which must be a pointer
func (JSONCodec) Decode(data []byte, target any) error {
	return json.Unmarshal(data, target)
}
