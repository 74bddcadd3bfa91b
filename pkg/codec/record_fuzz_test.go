package codec

import "testing"

// FuzzJSONCodec_Decode exercises envelope decoding with arbitrary
// input. Decode may reject the input but must never panic, and any
// envelope it accepts must re-encode cleanly.
func FuzzJSONCodec_Decode(f *testing.F) {
	f.Add([]byte(`{"data":"hello","dataTypeName":"string"}`))
	f.Add([]byte(`{"data":[1,2,3],"dataTypeName":"int","dataContainerTypeName":"collection"}`))
	f.Add([]byte(`{"data":{"a":1},"dataTypeName":"int","dataContainerTypeName":"map","dataKeyTypeName":"string"}`))
	f.Add([]byte(`{}`))
	f.Add([]byte(`null`))
	f.Add([]byte(`{"dataTypeName":`))

	c := NewJSONCodec()

	f.Fuzz(func(t *testing.T, data []byte) {
		var record Record
		if err := c.Decode(data, &record); err != nil {
			return
		}

		if _, err := c.Encode(&record); err != nil {
			t.Errorf("accepted envelope failed to re-encode: %v", err)
		}
	})
}
