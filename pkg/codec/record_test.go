package codec

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecord_Defaults(t *testing.T) {
	record := NewRecord("hello")

	assert.Equal(t, "hello", record.Data)
	assert.Equal(t, SourceMemory, record.Source)
	assert.Greater(t, record.Timestamp, int64(0))
	assert.False(t, record.Expirable)
	assert.Zero(t, record.LifeTimeMillis)
}

func TestNewRecord_Options(t *testing.T) {
	record := NewRecord("hello",
		WithSource(SourceCloud),
		WithLifeTime(90*time.Second),
	)

	assert.Equal(t, SourceCloud, record.Source)
	assert.True(t, record.Expirable)
	assert.Equal(t, int64(90_000), record.LifeTimeMillis)
}

func TestJSONCodec_EnvelopeRoundTrip(t *testing.T) {
	c := NewJSONCodec()

	original := &Record{
		Data:                  map[string]any{"id": float64(42), "name": "Ana"},
		DataTypeName:          "User",
		DataContainerTypeName: "map",
		DataKeyTypeName:       "string",
		Source:                SourcePersistence,
		Timestamp:             1719043200000,
	}

	encoded, err := c.Encode(original)
	require.NoError(t, err)

	var decoded Record
	require.NoError(t, c.Decode(encoded, &decoded))

	assert.Equal(t, original.Data, decoded.Data)
	assert.Equal(t, original.DataTypeName, decoded.DataTypeName)
	assert.Equal(t, original.DataContainerTypeName, decoded.DataContainerTypeName)
	assert.Equal(t, original.DataKeyTypeName, decoded.DataKeyTypeName)
	assert.Equal(t, original.Timestamp, decoded.Timestamp)
}

func TestRecord_ScalarOmitsContainerFields(t *testing.T) {
	c := NewJSONCodec()

	encoded, err := c.Encode(&Record{Data: "plain", DataTypeName: "string"})
	require.NoError(t, err)

	// Scalars must not carry container or key type names on the wire
	assert.NotContains(t, string(encoded), "dataContainerTypeName")
	assert.NotContains(t, string(encoded), "dataKeyTypeName")
	assert.Contains(t, string(encoded), "dataTypeName")
}

func TestJSONCodec_DecodeMalformed(t *testing.T) {
	c := NewJSONCodec()

	var record Record
	assert.Error(t, c.Decode([]byte("{not json"), &record))
	assert.Error(t, c.Decode([]byte(`"a bare string"`), &record))
}

func TestJSONCodec_DecodeIntoSeededPointer(t *testing.T) {
	c := NewJSONCodec()

	type user struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}

	encoded, err := c.Encode(&Record{
		Data:         []user{{ID: 1, Name: "Ana"}, {ID: 2, Name: "Bo"}},
		DataTypeName: "User",
	})
	require.NoError(t, err)

	// The typed decode pass seeds Data with a pointer to the resolved
	// container; the codec must fill it in rather than replace it with
	// a generic map.
	target := &Record{Data: &[]user{}}
	require.NoError(t, c.Decode(encoded, target))

	users, ok := target.Data.(*[]user)
	require.True(t, ok)
	assert.Equal(t, []user{{ID: 1, Name: "Ana"}, {ID: 2, Name: "Bo"}}, *users)
}
