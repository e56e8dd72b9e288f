package credentials

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func checkMode(t *testing.T, path string, want os.FileMode) {
	t.Helper()
	if runtime.GOOS == "windows" {
		return
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat %s: %v", path, err)
	}
	if got := info.Mode().Perm(); got != want {
		t.Errorf("Expected %s to have mode %o, got %o", path, want, got)
	}
}

func TestLoadMissingFileIsEmpty(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "credentials.json"), nil)

	creds, err := store.Load()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if creds != (Credentials{}) {
		t.Errorf("Expected empty credentials, got %+v", creds)
	}
}

func TestPlainStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "credentials.json")
	store := NewStore(path, nil)

	want := Credentials{Username: "alice@example.com", Password: "hunter2"}
	if err := store.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	checkMode(t, path, 0600)

	data, _ := os.ReadFile(path)
	var onDisk map[string]string
	if err := json.Unmarshal(data, &onDisk); err != nil {
		t.Fatalf("credentials file is not JSON: %v", err)
	}
	if onDisk["password"] != "hunter2" {
		t.Errorf("Expected plaintext password on disk, got %q", onDisk["password"])
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != want {
		t.Errorf("Expected %+v, got %+v", want, got)
	}
}

func TestEncryptedStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "credentials.json")
	keyPath := filepath.Join(dir, "credentials.key")

	store, err := NewEncryptedStore(path, keyPath)
	if err != nil {
		t.Fatalf("NewEncryptedStore: %v", err)
	}
	checkMode(t, keyPath, 0600)

	want := Credentials{Username: "bob", Password: "s3cr3t-ü"}
	if err := store.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, _ := os.ReadFile(path)
	if bytes.Contains(data, []byte("s3cr3t")) {
		t.Errorf("Expected password to be encrypted at rest, file: %s", data)
	}

	// A fresh store over the same key file must read it back.
	reopened, err := NewEncryptedStore(path, keyPath)
	if err != nil {
		t.Fatalf("NewEncryptedStore: %v", err)
	}
	got, err := reopened.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != want {
		t.Errorf("Expected %+v, got %+v", want, got)
	}
}

func TestEncryptedStoreWrongKey(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "credentials.json")

	store, err := NewEncryptedStore(path, filepath.Join(dir, "a.key"))
	if err != nil {
		t.Fatalf("NewEncryptedStore: %v", err)
	}
	if err := store.Save(Credentials{Username: "bob", Password: "secret"}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	other, err := NewEncryptedStore(path, filepath.Join(dir, "b.key"))
	if err != nil {
		t.Fatalf("NewEncryptedStore: %v", err)
	}
	_, err = other.Load()
	if !errors.Is(err, ErrDecrypt) {
		t.Fatalf("Expected ErrDecrypt, got %v", err)
	}
}

func TestLoadEmptyStoredPasswordSkipsDecryption(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "credentials.json")
	if err := os.WriteFile(path, []byte(`{"username": "carol", "password": ""}`), 0600); err != nil {
		t.Fatal(err)
	}

	store, err := NewEncryptedStore(path, filepath.Join(dir, "k"))
	if err != nil {
		t.Fatalf("NewEncryptedStore: %v", err)
	}
	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Username != "carol" || got.Password != "" {
		t.Errorf("Unexpected credentials %+v", got)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := NewStore(path, nil).Load(); err == nil {
		t.Fatal("Expected parse error")
	}
}

func TestSaveTightensExistingPermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	if err := os.WriteFile(path, []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := NewStore(path, nil).Save(Credentials{Username: "u", Password: "p"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	checkMode(t, path, 0600)
}

func TestLoadOrCreateKeyReusesExistingKey(t *testing.T) {
	keyPath := filepath.Join(t.TempDir(), "cfg", "credentials.key")

	first, err := LoadOrCreateKey(keyPath)
	if err != nil {
		t.Fatalf("LoadOrCreateKey: %v", err)
	}
	if len(first) != KeySize {
		t.Fatalf("Expected %d byte key, got %d", KeySize, len(first))
	}
	checkMode(t, keyPath, 0600)

	second, err := LoadOrCreateKey(keyPath)
	if err != nil {
		t.Fatalf("LoadOrCreateKey: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("Expected existing key to be reused unchanged")
	}
}

func TestLoadOrCreateKeyRejectsBadLength(t *testing.T) {
	keyPath := filepath.Join(t.TempDir(), "credentials.key")
	if err := os.WriteFile(keyPath, []byte("short"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadOrCreateKey(keyPath); !errors.Is(err, ErrInvalidKeyLength) {
		t.Errorf("Expected ErrInvalidKeyLength, got %v", err)
	}
}
