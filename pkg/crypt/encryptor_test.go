package crypt

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSealOpen_RoundTrip(t *testing.T) {
	plaintext := []byte(`{"data":"secret","dataTypeName":"string"}`)

	sealed, err := Seal("passphrase", plaintext)
	require.NoError(t, err)
	assert.NotEqual(t, plaintext, sealed)

	opened, err := Open("passphrase", sealed)
	require.NoError(t, err)
	assert.Equal(t, plaintext, opened)
}

func TestOpen_WrongKey(t *testing.T) {
	sealed, err := Seal("right key", []byte("content"))
	require.NoError(t, err)

	_, err = Open("wrong key", sealed)
	assert.Error(t, err)
}

func TestOpen_Tampered(t *testing.T) {
	sealed, err := Seal("key", []byte("content"))
	require.NoError(t, err)

	sealed[len(sealed)-1] ^= 0xFF

	_, err = Open("key", sealed)
	assert.Error(t, err)
}

func TestOpen_TooShort(t *testing.T) {
	_, err := Open("key", []byte{0x01})
	assert.Error(t, err)
}

func TestFileEncryptor_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	workDir := t.TempDir()
	encryptor := NewFileEncryptor(WithWorkDir(workDir))

	path := filepath.Join(dir, "record")
	content := []byte(`{"data":42,"dataTypeName":"int"}`)
	require.NoError(t, os.WriteFile(path, content, 0600))

	require.NoError(t, encryptor.Encrypt("key", path))

	onDisk, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotEqual(t, content, onDisk)

	working, err := encryptor.Decrypt("key", path)
	require.NoError(t, err)
	defer os.Remove(working)

	// The working file is a separate plaintext copy outside the store dir
	assert.NotEqual(t, path, working)
	assert.Equal(t, workDir, filepath.Dir(working))

	plaintext, err := os.ReadFile(working)
	require.NoError(t, err)
	assert.Equal(t, content, plaintext)

	// The original stays sealed
	stillSealed, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, onDisk, stillSealed)
}

func TestFileEncryptor_DecryptWrongKey(t *testing.T) {
	dir := t.TempDir()
	encryptor := NewFileEncryptor(WithWorkDir(t.TempDir()))

	path := filepath.Join(dir, "record")
	require.NoError(t, os.WriteFile(path, []byte("content"), 0600))
	require.NoError(t, encryptor.Encrypt("key", path))

	_, err := encryptor.Decrypt("other key", path)
	assert.Error(t, err)
}

func TestFileEncryptor_MissingFile(t *testing.T) {
	encryptor := NewFileEncryptor()

	assert.Error(t, encryptor.Encrypt("key", filepath.Join(t.TempDir(), "absent")))

	_, err := encryptor.Decrypt("key", filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)
}

func TestSeal_UniqueNonces(t *testing.T) {
	first, err := Seal("key", []byte("content"))
	require.NoError(t, err)

	second, err := Seal("key", []byte("content"))
	require.NoError(t, err)

	// Same key and plaintext must never produce identical ciphertext
	assert.NotEqual(t, first, second)
}
