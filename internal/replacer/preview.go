package replacer

import (
	"strings"

	htmldoc "github.com/JohannesKaufmann/html-to-markdown/v2"
)

const maxPreviewRunes = 2000

// markdownPreview renders a storage-format body as markdown for debug output.
// Confluence macros are not understood by the converter; when conversion
// fails the raw body is used.
func markdownPreview(body string) string {
	out := body
	if md, err := htmldoc.ConvertString(body); err == nil {
		out = md
	}
	out = strings.TrimSpace(out)

	runes := []rune(out)
	if len(runes) > maxPreviewRunes {
		out = string(runes[:maxPreviewRunes]) + "\n…"
	}
	return out
}
