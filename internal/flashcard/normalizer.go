package flashcard

import (
	"strings"
	"unicode/utf8"

	"flashgen/internal/domain"
)

// MinContentLength is the minimum trimmed length, in characters, of usable content.
const MinContentLength = 100

// Normalize trims surrounding whitespace and rejects text shorter than
// MinContentLength characters.
func Normalize(text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if n := utf8.RuneCountInString(trimmed); n < MinContentLength {
		return "", domain.NewInsufficientContentError(n, MinContentLength)
	}
	return trimmed, nil
}
