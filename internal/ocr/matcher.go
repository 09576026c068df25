package ocr

import (
	"strings"

	"github.com/saturnino-fabrica-de-software/fides/internal/domain"
)

// Acceptance thresholds per field class. Name fields tolerate more noise
// because OCR transliteration errors concentrate on proper names; numeric
// identifiers must match near-exactly.
const (
	DefaultThreshold      = 0.75
	NameThreshold         = 0.70
	RegistrationThreshold = 0.85
)

var fieldThresholds = map[domain.FieldKey]float64{
	domain.FieldFullName:           NameThreshold,
	domain.FieldFirstName:          NameThreshold,
	domain.FieldLastName:           NameThreshold,
	domain.FieldFacilityName:       NameThreshold,
	domain.FieldRegistrationNumber: RegistrationThreshold,
}

// ThresholdFor returns the acceptance threshold for a field.
func ThresholdFor(key domain.FieldKey) float64 {
	if t, ok := fieldThresholds[key]; ok {
		return t
	}
	return DefaultThreshold
}

// Matcher compares expected identity fields against recognized document text.
// It is a pure function over its inputs; matching the same text twice yields
// identical results.
type Matcher struct{}

func NewMatcher() *Matcher {
	return &Matcher{}
}

// Match scores every declared expected field against the recognized text.
// For each field it slides a token window over the text, takes the maximum
// similarity found and the substring achieving it, and marks the field found
// when that similarity crosses the field threshold. Empty recognized text
// yields found=false, similarity=0 for every field.
func (m *Matcher) Match(expected domain.IdentityExpectation, recognizedText string) map[domain.FieldKey]domain.FieldResult {
	results := make(map[domain.FieldKey]domain.FieldResult)

	rawTokens, normTokens := Tokenize(recognizedText)

	for key, value := range expected.DeclaredFields() {
		result := domain.FieldResult{
			FieldKey:      key,
			ExpectedValue: value,
		}

		if best, substring := bestWindowMatch(value, rawTokens, normTokens); best > 0 {
			result.Similarity = best
			result.MatchedSubstring = substring
			result.Found = best >= ThresholdFor(key)
		}

		results[key] = result
	}

	return results
}

// bestWindowMatch finds the token window of the text most similar to the
// expected value. Window sizes one below and one above the expected token
// count are also tried to tolerate OCR splitting or merging words.
func bestWindowMatch(expected string, rawTokens, normTokens []string) (float64, string) {
	normExpected := NormalizeValue(expected)
	if normExpected == "" || len(normTokens) == 0 {
		return 0, ""
	}

	expectedWidth := len(strings.Fields(normExpected))

	var best float64
	var bestSubstring string

	for _, width := range windowWidths(expectedWidth, len(normTokens)) {
		for start := 0; start+width <= len(normTokens); start++ {
			candidate := strings.Join(normTokens[start:start+width], " ")
			if sim := Similarity(normExpected, candidate); sim > best {
				best = sim
				bestSubstring = strings.Join(rawTokens[start:start+width], " ")
			}
		}
	}

	return best, bestSubstring
}

func windowWidths(expectedWidth, tokenCount int) []int {
	var widths []int
	for _, w := range []int{expectedWidth, expectedWidth - 1, expectedWidth + 1} {
		if w >= 1 && w <= tokenCount {
			widths = append(widths, w)
		}
	}
	return widths
}
