// Package xhs handles Xiaohongshu share-text: extracting the short link
// from pasted text and, eventually, parsing note content. Only the URL
// extraction is implemented; the note parser is an intentionally
// incomplete feature.
package xhs

import (
	"errors"
	"regexp"
)

// ErrURLNotFound is returned when the share-text contains no xhslink URL.
var ErrURLNotFound = errors.New("xhs: url not found")

var urlPattern = regexp.MustCompile(`http[s]?://xhslink\.com/o/[a-zA-Z0-9]+`)

// ExtractURL pulls the first xhslink.com short URL out of mixed share-text.
func ExtractURL(text string) (string, error) {
	match := urlPattern.FindString(text)
	if match == "" {
		return "", ErrURLNotFound
	}
	return match, nil
}
