package extract

import (
	"path/filepath"
	"regexp"
	"strings"
)

var (
	// Case-insensitivity covers the label only; the captured value must
	// be capitalized words.
	reNameLabel   = regexp.MustCompile(`\b(?i:name)\s*[:\-]\s*([A-Z][A-Za-z.'-]+(?:\s+[A-Z][A-Za-z.'-]+){0,3})`)
	reNameLine    = regexp.MustCompile(`^[A-Z][A-Za-z.'-]+(?:\s+[A-Z][A-Za-z.'-]+)+$`)
	reNameWords   = regexp.MustCompile(`^[A-Z][A-Za-z.'-]+(?:\s+[A-Z][A-Za-z.'-]+){1,3}$`)
	reHeaderToken = regexp.MustCompile(`(?i)^\s*(?:curriculum\s+vitae|resume|cv)\s*$`)
	reContactLine = regexp.MustCompile(`[A-Za-z0-9._%-]+@[A-Za-z0-9.-]+|\+?\d[\d\s().-]{8,}`)
	reFileToken   = regexp.MustCompile(`(?i)^(?:cv|resume)$`)
)

// ExtractName finds the candidate's name using a pattern cascade; the
// first pattern that matches wins. Returns "" when nothing matches, in
// which case the caller falls back to NameFromFilename.
func ExtractName(text string) string {
	lines := strings.Split(text, "\n")

	// (a) explicit "Name:" label anywhere.
	if m := reNameLabel.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}

	// (b) a line of 2+ capitalized words at the very start.
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if reNameLine.MatchString(line) {
			return line
		}
		break
	}

	// (c) capitalized words immediately above a "Curriculum Vitae" or
	// "Resume" header.
	for i := 1; i < len(lines); i++ {
		if !reHeaderToken.MatchString(lines[i]) {
			continue
		}
		prev := strings.TrimSpace(lines[i-1])
		if reNameWords.MatchString(prev) {
			return prev
		}
	}

	// (d) a 2-4 word capitalized sequence with contact info on the
	// next line.
	for i := 0; i+1 < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if !reNameWords.MatchString(line) {
			continue
		}
		if reContactLine.MatchString(lines[i+1]) {
			return line
		}
	}

	return ""
}

// NameFromFilename derives a display name from the document filename:
// "rahul_sharma_resume.pdf" becomes "Rahul Sharma". Used only when
// every text pattern fails.
func NameFromFilename(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.NewReplacer("_", " ", "-", " ").Replace(base)

	words := strings.Fields(base)
	var kept []string
	for i, w := range words {
		// A leading or trailing "cv"/"resume" token is the document
		// type, not part of the name.
		if reFileToken.MatchString(w) && (i == 0 || i == len(words)-1) {
			continue
		}
		kept = append(kept, titleCaseWord(w))
	}
	return strings.Join(kept, " ")
}

func titleCaseWord(w string) string {
	if w == "" {
		return w
	}
	return strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
}
