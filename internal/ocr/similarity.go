package ocr

// Similarity calculates normalized edit-distance similarity between two
// strings. Returns a value between 0.0 (unrelated) and 1.0 (identical).
// Inputs are expected to be normalized already; the function itself is
// byte-agnostic and operates on runes.
func Similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	if a == "" || b == "" {
		return 0.0
	}

	ra := []rune(a)
	rb := []rune(b)

	longest := len(ra)
	if len(rb) > longest {
		longest = len(rb)
	}

	dist := levenshtein(ra, rb)
	return 1.0 - float64(dist)/float64(longest)
}

// levenshtein computes edit distance with a two-row rolling buffer.
func levenshtein(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)

	for j := 0; j <= len(b); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}

			deletion := prev[j] + 1
			insertion := curr[j-1] + 1
			substitution := prev[j-1] + cost

			min := deletion
			if insertion < min {
				min = insertion
			}
			if substitution < min {
				min = substitution
			}
			curr[j] = min
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}
