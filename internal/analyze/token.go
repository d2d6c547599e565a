package analyze

import (
	"regexp"
	"strings"
)

var sentenceBoundaryRe = regexp.MustCompile(`[.!?]+`)

// SplitSentences splits text into sentences at runs of '.', '!' and '?'.
// Results are trimmed and empty fragments dropped. Abbreviations and decimal
// points are not special-cased; the boundary rule is deliberately naive and
// downstream thresholds are tuned against it.
func SplitSentences(text string) []string {
	parts := sentenceBoundaryRe.Split(text, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// SplitWords splits text on whitespace runs, dropping empty tokens.
func SplitWords(text string) []string {
	return strings.Fields(text)
}
