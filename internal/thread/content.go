package thread

import (
	"html"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

// MaxContentLength is the longest comment accepted, counted in characters.
const MaxContentLength = 500

var strict = bluemonday.StrictPolicy()

// NormalizeContent strips markup and surrounding space from a comment body.
// Comments are stored as plain text, so the entities the sanitizer emits are
// decoded again and the limit applies to the text as stored.
func NormalizeContent(raw string) (string, error) {
	content := strings.TrimSpace(html.UnescapeString(strict.Sanitize(strings.TrimSpace(raw))))
	if content == "" || utf8.RuneCountInString(content) > MaxContentLength {
		return "", ErrInvalidContent
	}
	return content, nil
}
