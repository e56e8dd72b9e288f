package confluence

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"confreplace/pkg/logger"
)

// DefaultTimeout bounds each request. A timeout is reported as an error and
// is not retried.
const DefaultTimeout = 30 * time.Second

// maxErrorBody caps how much of a failed response is kept in an APIError.
const maxErrorBody = 4096

type Client struct {
	baseURL  string
	username string
	password string
	client   *http.Client
	logger   *logger.Logger
}

// Page is a Confluence page as fetched for editing. Version is the number
// read at fetch time; the next update must send Version+1.
type Page struct {
	ID      string
	Title   string
	Version int
	Body    string // storage representation
}

// pagePayload mirrors the fields of GET /rest/api/content/{id} we depend on.
// Pointers distinguish a missing field from a zero value.
type pagePayload struct {
	Title   *string `json:"title"`
	Version *struct {
		Number *int `json:"number"`
	} `json:"version"`
	Body *struct {
		Storage *struct {
			Value *string `json:"value"`
		} `json:"storage"`
	} `json:"body"`
}

func NewClient(baseURL, username, password string, log *logger.Logger) *Client {
	if log == nil {
		log = logger.Discard()
	}
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		username: username,
		password: password,
		client:   &http.Client{Timeout: DefaultTimeout},
		logger:   log,
	}
}

func (c *Client) contentURL(pageID string) string {
	return c.baseURL + "/rest/api/content/" + url.PathEscape(pageID)
}

// GetPage fetches a page with its storage body and current version.
func (c *Client) GetPage(pageID string) (*Page, error) {
	req, err := http.NewRequest(http.MethodGet, c.contentURL(pageID)+"?expand=body.storage,version", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload pagePayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrMalformedResponse, err)
	}

	switch {
	case payload.Title == nil:
		return nil, fmt.Errorf("%w: missing title", ErrMalformedResponse)
	case payload.Version == nil || payload.Version.Number == nil:
		return nil, fmt.Errorf("%w: missing version.number", ErrMalformedResponse)
	case payload.Body == nil || payload.Body.Storage == nil || payload.Body.Storage.Value == nil:
		return nil, fmt.Errorf("%w: missing body.storage.value", ErrMalformedResponse)
	}

	page := &Page{
		ID:      pageID,
		Title:   *payload.Title,
		Version: *payload.Version.Number,
		Body:    *payload.Body.Storage.Value,
	}
	c.logger.Debug("Fetched page %s '%s' at version %d (%d bytes)", page.ID, page.Title, page.Version, len(page.Body))

	return page, nil
}

// UpdatePage replaces the page body, keeping its title. The request carries
// page.Version+1; Confluence rejects it with 409 if the page moved on since
// it was fetched.
func (c *Client) UpdatePage(page *Page, newBody string) error {
	newVersion := page.Version + 1

	payload := map[string]interface{}{
		"id":    page.ID,
		"type":  "page",
		"title": page.Title,
		"version": map[string]interface{}{
			"number": newVersion,
		},
		"body": map[string]interface{}{
			"storage": map[string]interface{}{
				"value":          newBody,
				"representation": "storage",
			},
		},
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal page data: %w", err)
	}

	req, err := http.NewRequest(http.MethodPut, c.contentURL(page.ID), bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	c.logger.Debug("Updated page %s '%s' to version %d", page.ID, page.Title, newVersion)
	return nil
}

// do sends an authenticated request and turns any non-2xx status into an
// *APIError. On success the caller owns resp.Body.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	req.SetBasicAuth(c.username, c.password)
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("%s %s", req.Method, req.URL.Redacted())

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &APIError{
			Method:     req.Method,
			URL:        req.URL.Redacted(),
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	return resp, nil
}
