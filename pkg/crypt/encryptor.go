// Package crypt implements the file encryption collaborator used by the
// persistence layer. Content is sealed with AES-256-GCM; the cipher key
// is derived from the caller's passphrase with SHA-256.
package crypt

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"

	"github.com/segmentio/ksuid"
)

// FileEncryptor encrypts record files in place and decrypts them into
// throwaway working files. Working files live outside the store
// directory and are owned by the caller, which must delete them after
// use; leaving one behind is a correctness bug, not litter.
type FileEncryptor struct {
	workDir string
}

// Option configures a FileEncryptor
type Option func(*FileEncryptor)

// WithWorkDir overrides the directory decrypted working files are
// written to. Defaults to the system temp directory.
func WithWorkDir(dir string) Option {
	return func(e *FileEncryptor) {
		e.workDir = dir
	}
}

// NewFileEncryptor creates a new file encryptor
func NewFileEncryptor(opts ...Option) *FileEncryptor {
	e := &FileEncryptor{workDir: os.TempDir()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Encrypt seals the file at path in place using the given key
func (e *FileEncryptor) Encrypt(key, path string) error {
	plaintext, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file for encryption: %w", err)
	}

	sealed, err := Seal(key, plaintext)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, sealed, 0600); err != nil {
		return fmt.Errorf("failed to write encrypted file: %w", err)
	}

	return nil
}

// Decrypt opens the sealed file at path and writes the plaintext to a
// fresh working file, returning its path. The caller must delete the
// working file when done, on every exit path.
func (e *FileEncryptor) Decrypt(key, path string) (string, error) {
	sealed, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file for decryption: %w", err)
	}

	plaintext, err := Open(key, sealed)
	if err != nil {
		return "", err
	}

	working := filepath.Join(e.workDir, filepath.Base(path)+"."+ksuid.New().String())
	if err := os.WriteFile(working, plaintext, 0600); err != nil {
		return "", fmt.Errorf("failed to write working file: %w", err)
	}

	return working, nil
}

// Seal encrypts plaintext with the given key. The output is the GCM
// nonce followed by the ciphertext.
func Seal(key string, plaintext []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

// Open decrypts content produced by Seal. A wrong key or tampered
// content fails authentication and returns an error.
func Open(key string, sealed []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	if len(sealed) < gcm.NonceSize() {
		return nil, fmt.Errorf("sealed content too short")
	}

	nonce, ciphertext := sealed[:gcm.NonceSize()], sealed[gcm.NonceSize():]

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt content: %w", err)
	}

	return plaintext, nil
}

func newGCM(key string) (cipher.AEAD, error) {
	sum := sha256.Sum256([]byte(key))

	block, err := aes.NewCipher(sum[:])
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return gcm, nil
}
