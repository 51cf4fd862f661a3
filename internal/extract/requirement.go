package extract

import (
	"regexp"
	"strings"
)

var (
	reTitleLabel = regexp.MustCompile(`(?i)\b(?:job\s+title|position|role|title)\s*[:\-]\s*(.+)`)
	reRespHdr    = regexp.MustCompile(`(?i)^\s*(?:responsibilities|duties|what you(?:'ll| will) do|key responsibilities)\b`)
	reSectionHdr = regexp.MustCompile(`(?i)^\s*(?:requirements?|qualifications?|skills?|about|benefits|perks|who you are|nice to have)\b`)
)

// ExtractTitle pulls the job title from a requirement document: an
// explicit "Title:"/"Position:" label wins, otherwise the first
// non-empty line, truncated at a sensible length.
func ExtractTitle(text string) string {
	if m := reTitleLabel.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if len(line) > 80 {
			line = strings.TrimSpace(line[:80])
		}
		return line
	}
	return ""
}

// ExtractResponsibilities collects the bullet or plain lines under a
// responsibilities/duties header, stopping at the next section header.
func ExtractResponsibilities(text string) []string {
	lines := strings.Split(text, "\n")

	var out []string
	in := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if reRespHdr.MatchString(trimmed) {
			in = true
			continue
		}
		if !in {
			continue
		}
		if reSectionHdr.MatchString(trimmed) {
			break
		}
		if bm := reBulletLine.FindStringSubmatch(line); bm != nil {
			trimmed = strings.TrimSpace(bm[1])
		}
		out = append(out, trimmed)
	}
	return out
}
