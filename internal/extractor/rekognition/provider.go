package rekognition

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
	"github.com/aws/smithy-go"

	"github.com/saturnino-fabrica-de-software/fides/internal/audit"
	"github.com/saturnino-fabrica-de-software/fides/internal/extractor"
)

const (
	// maxDocumentSize is the maximum image size supported by the Rekognition
	// DetectText API when passing bytes directly (5MB)
	maxDocumentSize = 5 * 1024 * 1024
	// minDocumentSize is the minimum size for valid processing
	minDocumentSize = 100
)

const (
	errCodeAccessDenied       = "AccessDeniedException"
	errCodeInvalidImageFormat = "InvalidImageFormatException"
	errCodeImageTooLarge      = "ImageTooLargeException"
	errCodeThrottling         = "ThrottlingException"
)

// Extractor implements extractor.TextExtractor using the AWS Rekognition
// DetectText API.
type Extractor struct {
	client      *Client
	auditLogger audit.Logger
}

// Option defines optional configuration for Extractor
type Option func(*Extractor)

// WithAuditLogger sets the audit logger for the extractor
func WithAuditLogger(logger audit.Logger) Option {
	return func(e *Extractor) {
		e.auditLogger = logger
	}
}

var _ extractor.TextExtractor = (*Extractor)(nil)

// New creates a Rekognition-backed text extractor
func New(ctx context.Context, cfg Config, opts ...Option) (*Extractor, error) {
	client, err := NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create rekognition client: %w", err)
	}

	e := &Extractor{client: client}
	for _, opt := range opts {
		opt(e)
	}

	return e, nil
}

// logAudit logs an audit event if an audit logger is configured.
// Audit failure does not affect the operation (fire-and-forget).
func (e *Extractor) logAudit(ctx context.Context, success bool, err error, metadata map[string]string) {
	if e.auditLogger == nil {
		return
	}

	event := audit.Event{
		EventType: audit.EventTextExtracted,
		Engine:    "rekognition",
		Success:   success,
		Metadata:  metadata,
	}
	if err != nil {
		event.Error = err.Error()
	}

	_ = e.auditLogger.Log(ctx, event)
}

func validateDocument(document []byte) error {
	if len(document) < minDocumentSize {
		return fmt.Errorf("%w: document too small (%d bytes, minimum %d)", ErrInvalidDocument, len(document), minDocumentSize)
	}
	if len(document) > maxDocumentSize {
		return fmt.Errorf("%w: document too large (%d bytes, maximum %d)", ErrInvalidDocument, len(document), maxDocumentSize)
	}
	return nil
}

// ExtractText runs DetectText over the document image and returns the
// recognized lines top-to-bottom, one per line.
func (e *Extractor) ExtractText(ctx context.Context, document []byte) (string, error) {
	if err := validateDocument(document); err != nil {
		e.logAudit(ctx, false, err, map[string]string{
			"document_size": strconv.Itoa(len(document)),
		})
		return "", err
	}

	input := &rekognition.DetectTextInput{
		Image: &types.Image{
			Bytes: document,
		},
	}

	output, err := e.client.rekognition.DetectText(ctx, input)
	if err != nil {
		mapped := mapAPIError(err)
		e.logAudit(ctx, false, mapped, map[string]string{
			"document_size": strconv.Itoa(len(document)),
		})
		return "", fmt.Errorf("detect text: %w", mapped)
	}

	text := joinLines(output.TextDetections)

	e.logAudit(ctx, true, nil, map[string]string{
		"document_size": strconv.Itoa(len(document)),
		"lines":         strconv.Itoa(strings.Count(text, "\n") + 1),
	})

	return text, nil
}

// joinLines keeps LINE detections only (WORD detections duplicate their
// parent line) and orders them top-to-bottom, left-to-right.
func joinLines(detections []types.TextDetection) string {
	type line struct {
		text string
		top  float32
		left float32
	}

	var lines []line
	for _, d := range detections {
		if d.Type != types.TextTypesLine || d.DetectedText == nil {
			continue
		}

		l := line{text: *d.DetectedText}
		if d.Geometry != nil && d.Geometry.BoundingBox != nil {
			if d.Geometry.BoundingBox.Top != nil {
				l.top = *d.Geometry.BoundingBox.Top
			}
			if d.Geometry.BoundingBox.Left != nil {
				l.left = *d.Geometry.BoundingBox.Left
			}
		}
		lines = append(lines, l)
	}

	sort.SliceStable(lines, func(i, j int) bool {
		if lines[i].top != lines[j].top {
			return lines[i].top < lines[j].top
		}
		return lines[i].left < lines[j].left
	})

	parts := make([]string, 0, len(lines))
	for _, l := range lines {
		parts = append(parts, l.text)
	}

	return strings.Join(parts, "\n")
}

func mapAPIError(err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case errCodeInvalidImageFormat, errCodeImageTooLarge:
			return fmt.Errorf("%w: %s", ErrInvalidDocument, apiErr.ErrorCode())
		case errCodeAccessDenied:
			return ErrInvalidCredentials
		case errCodeThrottling:
			return ErrThrottled
		}
	}
	return err
}
