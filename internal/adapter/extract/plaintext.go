package extract

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"flashgen/internal/domain"
)

// PlainTextExtractor decodes UTF-8 text as is.
type PlainTextExtractor struct{}

func (PlainTextExtractor) Extract(_ context.Context, doc domain.Document) (string, error) {
	if !utf8.Valid(doc.Data) {
		return "", domain.NewExtractionFailureError(string(domain.DocumentPlainText),
			errors.New("text file is not valid UTF-8"))
	}
	text := string(doc.Data)
	if strings.TrimSpace(text) == "" {
		return "", domain.NewExtractionFailureError(string(domain.DocumentPlainText),
			errors.New("text file is empty"))
	}
	return text, nil
}
