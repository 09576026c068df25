package ocr

import (
	"github.com/saturnino-fabrica-de-software/fides/internal/domain"
)

// Score aggregates per-field results into a document-level OCR result.
//
// OverallScore is the plain similarity average scaled to [0,100]. Success is
// deliberately stricter: every required field must have been found, so a
// document can average high and still fail when a single required field is
// missing. The average is advisory (queue sorting, confidence display); the
// boolean is the signal badged on the request.
func Score(fields map[domain.FieldKey]domain.FieldResult, required []domain.FieldKey) *domain.OCRResult {
	result := &domain.OCRResult{
		Fields: fields,
	}
	if result.Fields == nil {
		result.Fields = map[domain.FieldKey]domain.FieldResult{}
	}

	if len(result.Fields) > 0 {
		var sum float64
		for _, f := range result.Fields {
			sum += f.Similarity
		}
		result.OverallScore = 100 * sum / float64(len(result.Fields))
	}

	result.Success = true
	for _, key := range required {
		f, ok := result.Fields[key]
		if !ok || !f.Found {
			result.Success = false
			break
		}
	}

	return result
}
