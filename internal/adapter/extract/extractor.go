// Package extract turns uploaded documents into source text.
package extract

import (
	"context"
	"fmt"
	"mime"
	"path/filepath"
	"strings"

	"flashgen/internal/domain"
	"flashgen/internal/logger"

	"go.uber.org/zap"
)

// Extractor dispatches a document to the decoder registered for its type.
type Extractor struct {
	decoders map[domain.DocumentType]domain.TextExtractor
}

// NewExtractor returns an Extractor for PDF and UTF-8 plain-text documents.
func NewExtractor() *Extractor {
	return &Extractor{decoders: map[domain.DocumentType]domain.TextExtractor{
		domain.DocumentPDF:       PDFExtractor{},
		domain.DocumentPlainText: PlainTextExtractor{},
	}}
}

// Extract implements domain.TextExtractor.
func (e *Extractor) Extract(ctx context.Context, doc domain.Document) (string, error) {
	decoder, ok := e.decoders[doc.Type]
	if !ok {
		return "", domain.NewExtractionFailureError(string(doc.Type),
			fmt.Errorf("unsupported document type %q", doc.Type))
	}
	if err := ctx.Err(); err != nil {
		return "", domain.NewExtractionFailureError(string(doc.Type), err)
	}

	text, err := decoder.Extract(ctx, doc)
	if err != nil {
		logger.Get().Warn("Text extraction failed",
			zap.String("document", doc.Name),
			zap.String("type", string(doc.Type)),
			zap.Int("bytes", len(doc.Data)),
			zap.Error(err))
		return "", err
	}
	logger.Get().Debug("Text extracted",
		zap.String("document", doc.Name),
		zap.String("type", string(doc.Type)),
		zap.Int("chars", len([]rune(text))))
	return text, nil
}

// DetectType resolves the document type from a declared MIME type, falling
// back to the file extension. Unknown types are an ExtractionFailure.
func DetectType(contentType, filename string) (domain.DocumentType, error) {
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
		switch mediaType {
		case "application/pdf":
			return domain.DocumentPDF, nil
		case "text/plain":
			return domain.DocumentPlainText, nil
		}
	}
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return domain.DocumentPDF, nil
	case ".txt":
		return domain.DocumentPlainText, nil
	}
	return "", domain.NewExtractionFailureError(contentType,
		fmt.Errorf("unsupported file type %q (%s)", contentType, filename))
}

var _ domain.TextExtractor = (*Extractor)(nil)
