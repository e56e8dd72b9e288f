package confluence

import "net/http"

// Update records one UpdatePage call made against a MockClient.
type Update struct {
	PageID  string
	Title   string
	Version int // version number sent
	Body    string
}

// MockClient is an in-memory implementation of ConfluenceClient for tests.
// It enforces the same version check as Confluence: an update must carry the
// stored version plus one.
type MockClient struct {
	Pages     map[string]*Page // pageID -> Page
	GetCalls  []string
	Updates   []Update
	GetErr    error
	UpdateErr error
}

func NewMockClient() *MockClient {
	return &MockClient{Pages: make(map[string]*Page)}
}

// AddPage stores a page and returns it for further tweaking.
func (m *MockClient) AddPage(id, title string, version int, body string) *Page {
	p := &Page{ID: id, Title: title, Version: version, Body: body}
	m.Pages[id] = p
	return p
}

func (m *MockClient) GetPage(pageID string) (*Page, error) {
	m.GetCalls = append(m.GetCalls, pageID)
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	p, ok := m.Pages[pageID]
	if !ok {
		return nil, &APIError{Method: http.MethodGet, StatusCode: http.StatusNotFound}
	}
	cp := *p
	return &cp, nil
}

func (m *MockClient) UpdatePage(page *Page, newBody string) error {
	m.Updates = append(m.Updates, Update{
		PageID:  page.ID,
		Title:   page.Title,
		Version: page.Version + 1,
		Body:    newBody,
	})
	if m.UpdateErr != nil {
		return m.UpdateErr
	}

	stored, ok := m.Pages[page.ID]
	if !ok {
		return &APIError{Method: http.MethodPut, StatusCode: http.StatusNotFound}
	}
	if stored.Version != page.Version {
		return &APIError{Method: http.MethodPut, StatusCode: http.StatusConflict, Body: "version conflict"}
	}
	stored.Version++
	stored.Body = newBody
	return nil
}

var _ ConfluenceClient = (*MockClient)(nil)
