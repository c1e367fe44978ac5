package cli

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
)

// suggest returns the candidate closest to s when it is close enough to be a
// plausible typo: within two edits, or one edit per three characters for
// longer input. Ties go to the earlier candidate.
func suggest(s string, candidates []string) (string, bool) {
	best, bestDist := "", -1
	needle := strings.ToLower(s)
	for _, c := range candidates {
		d := levenshtein.ComputeDistance(needle, strings.ToLower(c))
		if bestDist < 0 || d < bestDist {
			best, bestDist = c, d
		}
	}
	if bestDist < 0 || bestDist > max(2, len(s)/3) {
		return "", false
	}
	return best, true
}

// didYouMean formats a suggestion as an error message suffix, or "".
func didYouMean(s string, candidates []string) string {
	if best, ok := suggest(s, candidates); ok {
		return fmt.Sprintf(" (did you mean %q?)", best)
	}
	return ""
}
