package codec

import "testing"

type benchUser struct {
	ID    int      `json:"id"`
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Tags  []string `json:"tags"`
}

func benchRecord() *Record {
	users := make([]benchUser, 0, 100)
	for i := 0; i < 100; i++ {
		users = append(users, benchUser{
			ID:    i,
			Name:  "user",
			Email: "user@example.com",
			Tags:  []string{"a", "b", "c"},
		})
	}

	record := NewRecord(users)
	record.DataTypeName = "BenchUser"
	record.DataContainerTypeName = "collection"
	return record
}

func BenchmarkJSONCodec_Encode(b *testing.B) {
	c := NewJSONCodec()
	record := benchRecord()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := c.Encode(record); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkJSONCodec_Decode(b *testing.B) {
	c := NewJSONCodec()

	encoded, err := c.Encode(benchRecord())
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var record Record
		if err := c.Decode(encoded, &record); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkJSONCodec_TwoPassDecode(b *testing.B) {
	c := NewJSONCodec()

	encoded, err := c.Encode(benchRecord())
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		// Envelope pass
		var envelope Record
		if err := c.Decode(encoded, &envelope); err != nil {
			b.Fatal(err)
		}

		// Typed pass
		typed := &Record{Data: &[]benchUser{}}
		if err := c.Decode(encoded, typed); err != nil {
			b.Fatal(err)
		}
	}
}
