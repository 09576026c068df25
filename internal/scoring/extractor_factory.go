package scoring

import (
	"context"
	"fmt"

	"github.com/saturnino-fabrica-de-software/fides/internal/audit"
	"github.com/saturnino-fabrica-de-software/fides/internal/config"
	"github.com/saturnino-fabrica-de-software/fides/internal/extractor"
	"github.com/saturnino-fabrica-de-software/fides/internal/extractor/mock"
	"github.com/saturnino-fabrica-de-software/fides/internal/extractor/rekognition"
)

// ExtractorType defines supported text-extraction engine types
type ExtractorType string

const (
	// ExtractorTypeMock is the deterministic extractor (local, for dev/test)
	ExtractorTypeMock ExtractorType = "mock"
	// ExtractorTypeRekognition is the AWS Rekognition DetectText engine (cloud, for prod)
	ExtractorTypeRekognition ExtractorType = "rekognition"
)

// NewExtractor creates a TextExtractor instance based on configuration.
//
// Environment variables:
//   - TEXT_EXTRACTOR: "mock" or "rekognition" (default: "mock")
//   - AWS_REGION: AWS region for Rekognition (default: "us-east-1")
//   - AWS_ACCESS_KEY_ID / AWS_SECRET_ACCESS_KEY: via AWS SDK credential chain
func NewExtractor(ctx context.Context, cfg *config.Config, auditLogger audit.Logger) (extractor.TextExtractor, error) {
	switch ExtractorType(cfg.TextExtractor) {
	case ExtractorTypeRekognition:
		rekogConfig := rekognition.Config{
			Region: cfg.AWSRegion,
		}
		if rekogConfig.Region == "" {
			rekogConfig = rekognition.DefaultConfig()
		}

		ext, err := rekognition.New(ctx, rekogConfig, rekognition.WithAuditLogger(auditLogger))
		if err != nil {
			return nil, fmt.Errorf("create rekognition extractor: %w", err)
		}
		return ext, nil

	case ExtractorTypeMock, "":
		// Default to the deterministic extractor for dev/test environments
		return mock.New(), nil

	default:
		return nil, fmt.Errorf("unknown extractor type: %s (supported: %s, %s)",
			cfg.TextExtractor, ExtractorTypeMock, ExtractorTypeRekognition)
	}
}
