package credentials

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/nacl/secretbox"
)

const (
	// KeySize is the secretbox key length in bytes.
	KeySize   = 32
	nonceSize = 24
)

var (
	// ErrDecrypt indicates a stored token could not be opened with the current key.
	ErrDecrypt = errors.New("failed to decrypt stored password")

	// ErrInvalidKeyLength indicates the key is not KeySize bytes.
	ErrInvalidKeyLength = errors.New("invalid symmetric key length")
)

// Cipher converts a password to and from its at-rest form.
type Cipher interface {
	Seal(plaintext string) (string, error)
	Open(token string) (string, error)
}

// PlainCipher stores passwords unchanged.
type PlainCipher struct{}

func (PlainCipher) Seal(plaintext string) (string, error) { return plaintext, nil }

func (PlainCipher) Open(token string) (string, error) { return token, nil }

// SecretboxCipher seals passwords with NaCl secretbox.
type SecretboxCipher struct {
	key [KeySize]byte
}

func NewSecretboxCipher(key []byte) (*SecretboxCipher, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d bytes", ErrInvalidKeyLength, KeySize, len(key))
	}
	c := &SecretboxCipher{}
	copy(c.key[:], key)
	return c, nil
}

func (c *SecretboxCipher) Seal(plaintext string) (string, error) {
	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	sealed := secretbox.Seal(nonce[:], []byte(plaintext), &nonce, &c.key)
	return base64.URLEncoding.EncodeToString(sealed), nil
}

func (c *SecretboxCipher) Open(token string) (string, error) {
	raw, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return "", fmt.Errorf("%w: malformed token: %v", ErrDecrypt, err)
	}
	if len(raw) < nonceSize+secretbox.Overhead {
		return "", fmt.Errorf("%w: token too short", ErrDecrypt)
	}

	var nonce [nonceSize]byte
	copy(nonce[:], raw[:nonceSize])

	plaintext, ok := secretbox.Open(nil, raw[nonceSize:], &nonce, &c.key)
	if !ok {
		return "", fmt.Errorf("%w: wrong key or corrupted token", ErrDecrypt)
	}
	return string(plaintext), nil
}
