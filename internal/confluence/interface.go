package confluence

// ConfluenceClient defines the page operations a replacement run needs.
type ConfluenceClient interface {
	GetPage(pageID string) (*Page, error)
	UpdatePage(page *Page, newBody string) error
}

// Ensure Client implements the interface
var _ ConfluenceClient = (*Client)(nil)
