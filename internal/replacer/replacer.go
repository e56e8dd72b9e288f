// Package replacer runs one find-and-replace pass over a Confluence page.
//
// A run resolves its inputs (settings, base URL, credentials), persists the
// credentials, then fetches the page, substitutes the search string and
// writes the body back as the next version. Every failure aborts the run.
// Credentials are saved before the first network call, so they survive a
// failed fetch or update; that write is never rolled back.
package replacer

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"confreplace/internal/config"
	"confreplace/internal/confluence"
	"confreplace/internal/credentials"
	"confreplace/internal/prompt"
	"confreplace/pkg/logger"
)

var (
	// ErrBaseURLRequired indicates no base URL was given by flag, settings or prompt.
	ErrBaseURLRequired = errors.New("confluence base URL is required")

	// ErrPasswordRequired indicates neither the prompt nor the store supplied a password.
	ErrPasswordRequired = errors.New("password required")
)

// CredentialStore loads and persists the operator's credentials.
type CredentialStore interface {
	Load() (credentials.Credentials, error)
	Save(credentials.Credentials) error
}

// ClientFactory builds a Confluence client once credentials are known.
type ClientFactory func(baseURL, username, password string, log *logger.Logger) confluence.ConfluenceClient

// DefaultClientFactory returns the HTTP client.
func DefaultClientFactory(baseURL, username, password string, log *logger.Logger) confluence.ConfluenceClient {
	return confluence.NewClient(baseURL, username, password, log)
}

type Options struct {
	SettingsPath string
	BaseURL      string // overrides the settings file value

	Store     CredentialStore
	Prompter  prompt.Prompter
	NewClient ClientFactory
	Logger    *logger.Logger
	Out       io.Writer // confirmation line; defaults to stdout
}

// Result summarizes a successful run.
type Result struct {
	PageID       string
	Title        string
	Replacements int
	Version      int // version written
}

func Run(opts Options) (*Result, error) {
	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	newClient := opts.NewClient
	if newClient == nil {
		newClient = DefaultClientFactory
	}
	if opts.Store == nil || opts.Prompter == nil {
		return nil, errors.New("replacer: credential store and prompter are required")
	}

	settings, err := config.Load(opts.SettingsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	log.Debug("Loaded settings from %s (page %s)", opts.SettingsPath, settings.PageID)

	baseURL, err := resolveBaseURL(opts.BaseURL, settings, opts.Prompter)
	if err != nil {
		return nil, err
	}
	log.Debug("Using Confluence at %s", baseURL)

	creds, err := resolveCredentials(opts.Store, opts.Prompter)
	if err != nil {
		return nil, err
	}

	if err := opts.Store.Save(creds); err != nil {
		return nil, fmt.Errorf("failed to save credentials: %w", err)
	}
	log.Debug("Saved credentials for %s", creds.Username)

	client := newClient(baseURL, creds.Username, creds.Password, log)

	page, err := client.GetPage(settings.PageID)
	if err != nil {
		switch {
		case confluence.IsUnauthorized(err):
			return nil, fmt.Errorf("failed to fetch page %s (check username and password): %w", settings.PageID, err)
		case confluence.IsNotFound(err):
			return nil, fmt.Errorf("page %s does not exist or is not visible to %s: %w", settings.PageID, creds.Username, err)
		}
		return nil, fmt.Errorf("failed to fetch page %s: %w", settings.PageID, err)
	}
	log.Info("Fetched page '%s' (ID: %s, version %d)", page.Title, page.ID, page.Version)

	newBody, count, err := ReplaceAll(page.Body, settings.Before, settings.After)
	if err != nil {
		return nil, fmt.Errorf("page %s: %w", page.ID, err)
	}
	log.Info("Replacing %d occurrence(s) of %q with %q", count, settings.Before, settings.After)
	if log.Verbose() {
		log.Debug("Updated body preview:\n%s", markdownPreview(newBody))
	}

	if err := client.UpdatePage(page, newBody); err != nil {
		if confluence.IsConflict(err) {
			return nil, fmt.Errorf("page %s changed since version %d was fetched: %w", page.ID, page.Version, err)
		}
		return nil, fmt.Errorf("failed to update page %s: %w", page.ID, err)
	}

	result := &Result{
		PageID:       page.ID,
		Title:        page.Title,
		Replacements: count,
		Version:      page.Version + 1,
	}

	p := message.NewPrinter(language.English)
	if _, err := p.Fprintf(out, "Page updated successfully. Replaced %d occurrence(s) in '%s' (now version %d).\n",
		result.Replacements, result.Title, result.Version); err != nil {
		return result, fmt.Errorf("failed to write confirmation: %w", err)
	}

	return result, nil
}

func resolveBaseURL(override string, settings *config.Settings, p prompt.Prompter) (string, error) {
	baseURL := strings.TrimSpace(override)
	if baseURL == "" {
		baseURL = settings.BaseURL
	}
	if baseURL == "" {
		answer, err := p.Input("Confluence base URL", "")
		if err != nil {
			return "", fmt.Errorf("failed to read base URL: %w", err)
		}
		baseURL = strings.TrimSpace(answer)
	}
	if baseURL == "" {
		return "", ErrBaseURLRequired
	}
	return baseURL, nil
}

func resolveCredentials(store CredentialStore, p prompt.Prompter) (credentials.Credentials, error) {
	stored, err := store.Load()
	if err != nil {
		return credentials.Credentials{}, fmt.Errorf("failed to load credentials: %w", err)
	}

	username, err := p.Input("Confluence username", stored.Username)
	if err != nil {
		return credentials.Credentials{}, fmt.Errorf("failed to read username: %w", err)
	}

	label := "Confluence password"
	if stored.Password != "" {
		label = "Confluence password (leave blank to use stored)"
	}
	password, err := p.Password(label)
	if err != nil {
		return credentials.Credentials{}, fmt.Errorf("failed to read password: %w", err)
	}
	if password == "" {
		password = stored.Password
	}
	if password == "" {
		return credentials.Credentials{}, ErrPasswordRequired
	}

	return credentials.Credentials{Username: username, Password: password}, nil
}
