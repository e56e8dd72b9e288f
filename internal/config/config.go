package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidSettings is returned when a settings key is present but unusable.
var ErrInvalidSettings = errors.New("invalid settings")

var requiredKeys = []string{"page_id", "before", "after"}

// Settings describes a single replacement run. It is built once by Load and
// never mutated afterwards.
type Settings struct {
	PageID  string
	Before  string
	After   string
	BaseURL string // optional
}

// MissingKeysError lists every required key absent from the settings file.
type MissingKeysError struct {
	Keys []string
}

func (e *MissingKeysError) Error() string {
	return fmt.Sprintf("settings missing required keys: %s", strings.Join(e.Keys, ", "))
}

// Load reads settings from a JSON file, or YAML when the extension is .yaml/.yml.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	raw, err := decode(path, data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse settings %s: %w", path, err)
	}

	return fromMap(raw)
}

func decode(path string, data []byte) (map[string]interface{}, error) {
	raw := map[string]interface{}{}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}
	}

	return raw, nil
}

func fromMap(raw map[string]interface{}) (*Settings, error) {
	var missing []string
	for _, key := range requiredKeys {
		if _, ok := raw[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingKeysError{Keys: missing}
	}

	pageID, err := scalar(raw, "page_id")
	if err != nil {
		return nil, err
	}
	before, err := scalar(raw, "before")
	if err != nil {
		return nil, err
	}
	after, err := scalar(raw, "after")
	if err != nil {
		return nil, err
	}

	s := &Settings{
		PageID: strings.TrimSpace(pageID),
		Before: before,
		After:  after,
	}

	if v, ok := raw["base_url"]; ok && v != nil {
		baseURL, err := scalar(raw, "base_url")
		if err != nil {
			return nil, err
		}
		s.BaseURL = strings.TrimSpace(baseURL)
	}

	if err := s.validate(); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Settings) validate() error {
	if s.PageID == "" {
		return fmt.Errorf("%w: page_id must not be empty", ErrInvalidSettings)
	}
	// An empty search string matches everywhere and would splice the
	// replacement between every character of the body.
	if s.Before == "" {
		return fmt.Errorf("%w: before must not be empty", ErrInvalidSettings)
	}
	return nil
}

// scalar renders a string, number or boolean settings value as a string.
func scalar(raw map[string]interface{}, key string) (string, error) {
	switch v := raw[key].(type) {
	case string:
		return v, nil
	case json.Number:
		return v.String(), nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case uint64:
		return strconv.FormatUint(v, 10), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(v), nil
	case nil:
		return "", fmt.Errorf("%w: %s must not be null", ErrInvalidSettings, key)
	default:
		return "", fmt.Errorf("%w: %s must be a string or number, got %T", ErrInvalidSettings, key, v)
	}
}
