package extract

import (
	"regexp"
	"strings"
)

var (
	reDegree = regexp.MustCompile(`(?i)\b(?:b\.?\s?tech|m\.?\s?tech|b\.?\s?sc|m\.?\s?sc|b\.?\s?e\b|b\.?\s?a\b|m\.?\s?a\b|bca|mca|mba|ph\.?\s?d|bachelor(?:'s)?|master(?:'s)?|doctorate|diploma|undergraduate|postgraduate)\b`)
	reEduHdr = regexp.MustCompile(`(?i)^\s*(?:education|academic|qualification)`)
)

// ExtractEducation returns the most informative education line found:
// a line containing a degree keyword, preferring lines inside an
// education section. Returns "" when nothing matches.
func ExtractEducation(text string) string {
	lines := strings.Split(text, "\n")

	inSection := false
	var fallback string
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if reEduHdr.MatchString(trimmed) {
			inSection = true
			continue
		}
		if !reDegree.MatchString(trimmed) {
			continue
		}
		if inSection {
			return trimmed
		}
		if fallback == "" {
			fallback = trimmed
		}
	}
	return fallback
}
