package disk

import (
	"os"
	"path/filepath"
)

// Retrieve reads back the content stored under key, decoding it
// directly into T. This bypasses the record envelope entirely: the
// stored content must already match the requested shape. Any failure
// reports absence. If encrypted, the decrypted working file is deleted
// on every exit path.
func Retrieve[T any](d *Disk, key string, encrypted bool, encryptKey string) (T, bool) {
	var zero T

	path := filepath.Join(d.dir, key)

	if encrypted {
		working, err := d.encryptor.Decrypt(encryptKey, path)
		if err != nil {
			return zero, false
		}
		defer os.Remove(working)
		path = working
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return zero, false
	}

	var out T
	if err := d.codec.Decode(raw, &out); err != nil {
		return zero, false
	}

	return out, true
}

// RetrieveCollection decodes the content stored under key as a slice of
// T, for callers that already know the stored shape. Absence on any
// failure.
func RetrieveCollection[T any](d *Disk, key string) ([]T, bool) {
	return decodeFile[[]T](d, key)
}

// RetrieveMap decodes the content stored under key as a map from K to
// V. Absence on any failure.
func RetrieveMap[K comparable, V any](d *Disk, key string) (map[K]V, bool) {
	return decodeFile[map[K]V](d, key)
}

// RetrieveArray decodes the content stored under key as a slice of T.
// Absence on any failure.
func RetrieveArray[T any](d *Disk, key string) ([]T, bool) {
	return decodeFile[[]T](d, key)
}

func decodeFile[T any](d *Disk, key string) (T, bool) {
	var zero T

	raw, err := os.ReadFile(filepath.Join(d.dir, key))
	if err != nil {
		return zero, false
	}

	var out T
	if err := d.codec.Decode(raw, &out); err != nil {
		return zero, false
	}

	return out, true
}
