package config

import "path/filepath"

const (
	// DefaultSettingsFile is resolved against the working directory.
	DefaultSettingsFile = "settings.json"

	appDirName          = "2026-tv"
	credentialsFileName = "credentials.json"
	keyFileName         = "credentials.key"
)

// Paths holds the on-disk locations a run reads and writes.
type Paths struct {
	Settings    string
	Credentials string
	KeyFile     string
}

// Dir returns the per-user configuration directory under home.
func Dir(home string) string {
	return filepath.Join(home, ".config", appDirName)
}

// DefaultPaths returns the default locations for the given home directory.
// The credential file and key file live side by side; losing the key file
// makes a stored encrypted password unrecoverable.
func DefaultPaths(home string) Paths {
	dir := Dir(home)
	return Paths{
		Settings:    DefaultSettingsFile,
		Credentials: filepath.Join(dir, credentialsFileName),
		KeyFile:     filepath.Join(dir, keyFileName),
	}
}
