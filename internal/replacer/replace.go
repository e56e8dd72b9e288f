package replacer

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound indicates the search string does not occur in the page body.
	ErrNotFound = errors.New("the target word was not found in the page body")

	// ErrEmptySearch indicates an empty search string.
	ErrEmptySearch = errors.New("search string must not be empty")
)

// ReplaceAll substitutes every occurrence of before with after, matching
// bytes exactly. It reports how many occurrences were replaced and fails with
// ErrNotFound if there were none.
func ReplaceAll(body, before, after string) (string, int, error) {
	if before == "" {
		return "", 0, ErrEmptySearch
	}
	n := strings.Count(body, before)
	if n == 0 {
		return "", 0, ErrNotFound
	}
	return strings.ReplaceAll(body, before, after), n, nil
}
