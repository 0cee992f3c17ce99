package align

import (
	"slices"
	"strings"
)

// Similarity returns the token-sort ratio of a and b in the range 0..100.
//
// The score is 100 * (1 - indel / (len(a') + len(b'))), where a' and b' are
// the sorted-token forms and indel counts the insertions and deletions needed
// to turn one into the other. Lengths are measured in runes.
func Similarity(a, b string) float64 {
	sa := []rune(sortTokens(a))
	sb := []rune(sortTokens(b))

	total := len(sa) + len(sb)
	if total == 0 {
		return 100
	}
	lcs := longestCommonSubsequence(sa, sb)
	return 100 * float64(2*lcs) / float64(total)
}

func sortTokens(s string) string {
	tokens := strings.Fields(s)
	slices.Sort(tokens)
	return strings.Join(tokens, " ")
}

// longestCommonSubsequence returns the LCS length of a and b using two rows
// of the dynamic-programming table.
func longestCommonSubsequence(a, b []rune) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	if len(b) > len(a) {
		a, b = b, a
	}
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			switch {
			case a[i-1] == b[j-1]:
				curr[j] = prev[j-1] + 1
			case prev[j] >= curr[j-1]:
				curr[j] = prev[j]
			default:
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
