package extract

import (
	"regexp"
	"strings"
)

var (
	reSpaceRun   = regexp.MustCompile(`[ \t\r\f\v]+`)
	reNewlineRun = regexp.MustCompile(`\n{3,}`)
	reAnySpace   = regexp.MustCompile(`\s+`)
)

// Unicode dash variants folded to ASCII '-'. PDF extraction in
// particular produces en/em dashes inside date ranges.
var dashReplacer = strings.NewReplacer(
	"‐", "-", // hyphen
	"‑", "-", // non-breaking hyphen
	"‒", "-", // figure dash
	"–", "-", // en dash
	"—", "-", // em dash
	"―", "-", // horizontal bar
	"−", "-", // minus sign
)

// Zero-width characters that survive copy/paste from PDFs and word
// processors and break token matching.
var zeroWidthReplacer = strings.NewReplacer(
	"​", "", // zero-width space
	"‌", "", // zero-width non-joiner
	"‍", "", // zero-width joiner
	"\ufeff", "", // BOM
	"­", "", // soft hyphen
)

// Normalize cleans raw document text while preserving line structure:
// zero-width characters are stripped, dash variants become ASCII '-',
// non-breaking spaces become plain spaces, horizontal whitespace runs
// collapse to a single space, and blank-line runs collapse to one blank
// line. Idempotent: Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	s = zeroWidthReplacer.Replace(s)
	s = dashReplacer.Replace(s)
	s = strings.ReplaceAll(s, " ", " ")
	s = reSpaceRun.ReplaceAllString(s, " ")
	s = reNewlineRun.ReplaceAllString(s, "\n\n")

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// Flatten is the single-line view of Normalize: all whitespace,
// newlines included, collapses to single spaces. Also idempotent.
func Flatten(s string) string {
	s = Normalize(s)
	return strings.TrimSpace(reAnySpace.ReplaceAllString(s, " "))
}
