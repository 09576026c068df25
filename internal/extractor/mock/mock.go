package mock

import (
	"context"
	"unicode/utf8"

	"github.com/saturnino-fabrica-de-software/fides/internal/domain"
	"github.com/saturnino-fabrica-de-software/fides/internal/extractor"
)

const minDocumentSize = 16

// Extractor implements extractor.TextExtractor for development and tests.
// Documents that are plain UTF-8 text are "recognized" verbatim, which lets
// fixtures drive the matcher without a real OCR engine. Binary payloads are
// rejected the way a real engine rejects corrupt files.
type Extractor struct{}

// New creates a new mock extractor instance
func New() *Extractor {
	return &Extractor{}
}

// ExtractText returns the document bytes as text when they are valid UTF-8.
func (e *Extractor) ExtractText(ctx context.Context, document []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if len(document) < minDocumentSize {
		return "", domain.ErrInvalidDocument
	}

	if !utf8.Valid(document) {
		return "", domain.ErrInvalidDocument.WithError(nil)
	}

	return string(document), nil
}

var _ extractor.TextExtractor = (*Extractor)(nil)
