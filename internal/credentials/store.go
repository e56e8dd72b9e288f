package credentials

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Credentials are kept in plaintext in memory only.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Store reads and writes one credentials file.
type Store struct {
	path   string
	cipher Cipher
}

// NewStore returns a store for path. A nil cipher stores passwords in plaintext.
func NewStore(path string, cipher Cipher) *Store {
	if cipher == nil {
		cipher = PlainCipher{}
	}
	return &Store{path: path, cipher: cipher}
}

// NewEncryptedStore returns a store whose passwords are sealed with the key at
// keyPath, generating that key if it does not exist yet.
func NewEncryptedStore(path, keyPath string) (*Store, error) {
	key, err := LoadOrCreateKey(keyPath)
	if err != nil {
		return nil, err
	}
	cipher, err := NewSecretboxCipher(key)
	if err != nil {
		return nil, err
	}
	return NewStore(path, cipher), nil
}

func (s *Store) Path() string {
	return s.path
}

// Load returns the stored credentials, or empty credentials if the file does
// not exist.
func (s *Store) Load() (Credentials, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return Credentials{}, nil
	}
	if err != nil {
		return Credentials{}, fmt.Errorf("failed to read credentials file: %w", err)
	}

	var stored Credentials
	if err := json.Unmarshal(data, &stored); err != nil {
		return Credentials{}, fmt.Errorf("failed to parse credentials file %s: %w", s.path, err)
	}

	if stored.Password == "" {
		return stored, nil
	}

	password, err := s.cipher.Open(stored.Password)
	if err != nil {
		return Credentials{}, fmt.Errorf("credentials file %s: %w", s.path, err)
	}
	stored.Password = password

	return stored, nil
}

// Save writes creds, creating parent directories as needed. The file is
// always left with 0600 permissions.
func (s *Store) Save(creds Credentials) error {
	token, err := s.cipher.Seal(creds.Password)
	if err != nil {
		return fmt.Errorf("failed to encrypt password: %w", err)
	}

	data, err := json.MarshalIndent(Credentials{Username: creds.Username, Password: token}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal credentials: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create credentials dir: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write credentials: %w", err)
	}
	// WriteFile keeps the mode of a pre-existing file.
	if err := os.Chmod(s.path, 0600); err != nil {
		return fmt.Errorf("failed to restrict credentials file permissions: %w", err)
	}

	return nil
}
