package scoring

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/saturnino-fabrica-de-software/fides/internal/domain"
	"github.com/saturnino-fabrica-de-software/fides/internal/extractor"
	"github.com/saturnino-fabrica-de-software/fides/internal/ocr"
)

// Stage is a discrete step of the document scoring task. Stages are reported
// in order; callers may display them but must not assume timing guarantees
// beyond ordering.
type Stage string

const (
	StageExtracting Stage = "extracting_text"
	StageMatching   Stage = "matching_fields"
	StageDone       Stage = "done"
)

// Progress is one observed step of a scoring task.
type Progress struct {
	Kind  domain.DocumentKind `json:"kind"`
	Stage Stage               `json:"stage"`
}

// ProgressFunc receives ordered progress updates for one document. A nil
// ProgressFunc disables reporting.
type ProgressFunc func(Progress)

const defaultExtractionTimeout = 30 * time.Second

// Service scores credential documents against an identity expectation. All
// extraction failures (corrupt file, engine error, timeout) are absorbed into
// an unscored OCRResult so the submission flow can always proceed to manual
// review.
type Service struct {
	extractor extractor.TextExtractor
	matcher   *ocr.Matcher
	timeout   time.Duration
	logger    *slog.Logger
}

func NewService(ext extractor.TextExtractor, logger *slog.Logger) *Service {
	return &Service{
		extractor: ext,
		matcher:   ocr.NewMatcher(),
		timeout:   defaultExtractionTimeout,
		logger:    logger,
	}
}

func (s *Service) WithTimeout(timeout time.Duration) *Service {
	if timeout > 0 {
		s.timeout = timeout
	}
	return s
}

// ScoreDocument extracts text from one document and matches it against the
// expectation. The extraction call is bounded by the service timeout.
func (s *Service) ScoreDocument(ctx context.Context, kind domain.DocumentKind, document []byte, expected domain.IdentityExpectation, report ProgressFunc) *domain.OCRResult {
	notify := func(stage Stage) {
		if report != nil {
			report(Progress{Kind: kind, Stage: stage})
		}
	}

	notify(StageExtracting)

	extractCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	text, err := s.extractor.ExtractText(extractCtx, document)
	if err != nil {
		level := slog.LevelWarn
		if errors.Is(err, context.Canceled) {
			level = slog.LevelDebug
		}
		s.logger.Log(ctx, level, "text extraction failed, downgrading to unscored result",
			slog.String("document_kind", string(kind)),
			slog.Any("error", err),
		)
		notify(StageDone)
		return domain.FailedOCRResult()
	}

	notify(StageMatching)

	fields := s.matcher.Match(expected, text)
	result := ocr.Score(fields, expected.RequiredFields(kind))

	notify(StageDone)
	return result
}
