// Package extractor defines the pluggable text-extraction capability used to
// read identity and license documents. The trust pipeline never depends on a
// specific engine: the matcher and scorer are testable with fixture text.
package extractor

import "context"

// TextExtractor recognizes text in a document image.
type TextExtractor interface {
	// ExtractText returns the unstructured text recognized in the document.
	// Implementations must honor ctx cancellation; callers bound the call
	// with a timeout and downgrade failures to an unscored result.
	ExtractText(ctx context.Context, document []byte) (string, error)
}
