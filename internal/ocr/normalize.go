package ocr

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldTransformer strips combining marks so that "Benali" and "Bénali"
// normalize identically. OCR engines frequently drop or invent diacritics.
var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeValue lowercases a string, strips diacritics and punctuation and
// collapses whitespace. The matcher compares only normalized forms.
func NormalizeValue(s string) string {
	_, norms := Tokenize(s)
	return strings.Join(norms, " ")
}

// Tokenize splits text on whitespace and returns parallel slices of the raw
// tokens and their normalized forms. Tokens that normalize to nothing (pure
// punctuation) are dropped from both slices so the indexes stay aligned.
func Tokenize(text string) (raw []string, normalized []string) {
	for _, tok := range strings.Fields(text) {
		n := normalizeToken(tok)
		if n == "" {
			continue
		}
		raw = append(raw, tok)
		normalized = append(normalized, n)
	}
	return raw, normalized
}

func normalizeToken(tok string) string {
	folded, _, err := transform.String(foldTransformer, tok)
	if err != nil {
		folded = tok
	}

	var b strings.Builder
	for _, r := range strings.ToLower(folded) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
