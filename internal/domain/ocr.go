package domain

// FieldResult is the outcome of matching one expected identity field against
// the recognized text of a document.
type FieldResult struct {
	FieldKey         FieldKey `json:"field_key"`
	ExpectedValue    string   `json:"expected_value"`
	Found            bool     `json:"found"`
	Similarity       float64  `json:"similarity"`
	MatchedSubstring string   `json:"matched_substring,omitempty"`
}

// OCRResult is the automated scoring outcome for one document.
//
// Success is true only when every required field was found. OverallScore is
// advisory: it drives queue ordering and the operator confidence display but
// never gates a submission or approves one by itself.
type OCRResult struct {
	Success      bool                     `json:"success"`
	OverallScore float64                  `json:"overall_score"`
	Fields       map[FieldKey]FieldResult `json:"fields"`
}

// FailedOCRResult is the downgrade value used when text extraction could not
// run at all (corrupt file, unsupported format, timeout). Submissions carry
// it forward to manual review instead of failing.
func FailedOCRResult() *OCRResult {
	return &OCRResult{
		Success:      false,
		OverallScore: 0,
		Fields:       map[FieldKey]FieldResult{},
	}
}
