package domain

import "context"

// TextGenerator is the port for the external generation capability.
type TextGenerator interface {
	// Ready reports whether the underlying model resource initialized.
	// It returns a ModelUnavailable error when it did not.
	Ready() error

	// Generate produces the raw continuation for prompt. Failures are
	// returned as GenerationError or ModelUnavailable domain errors.
	Generate(ctx context.Context, prompt string) (string, error)
}

// DocumentType is the declared type of an uploaded document.
type DocumentType string

const (
	DocumentPDF       DocumentType = "pdf"
	DocumentPlainText DocumentType = "plain-text"
)

// Document is an uploaded byte stream with its declared type.
type Document struct {
	Name string
	Type DocumentType
	Data []byte
}

// TextExtractor decodes a document into text.
type TextExtractor interface {
	// Extract returns the decoded text or an ExtractionFailure error.
	Extract(ctx context.Context, doc Document) (string, error)
}
