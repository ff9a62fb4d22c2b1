package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"flashgen/internal/domain"

	"github.com/ledongthuc/pdf"
)

// PDFExtractor concatenates the plain text of every page that has any.
type PDFExtractor struct{}

func (PDFExtractor) Extract(ctx context.Context, doc domain.Document) (text string, err error) {
	failure := func(cause error) error {
		return domain.NewExtractionFailureError(string(domain.DocumentPDF), cause)
	}
	// The pdf reader panics on some malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = failure(fmt.Errorf("malformed pdf: %v", r))
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(doc.Data), int64(len(doc.Data)))
	if err != nil {
		return "", failure(fmt.Errorf("open pdf: %w", err))
	}

	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return "", failure(err)
		}
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		b.WriteString(content)
	}

	if strings.TrimSpace(b.String()) == "" {
		return "", failure(errors.New("no extractable text found in pdf"))
	}
	return b.String(), nil
}
