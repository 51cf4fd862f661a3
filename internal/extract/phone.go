package extract

import (
	"regexp"
	"strings"
)

var (
	// Strong full-text patterns, scanned in order.
	rePhoneIntl    = regexp.MustCompile(`\+\d{1,3}[-.\s]?\(?\d{2,4}\)?(?:[-.\s]?\d{2,5}){1,4}`)
	rePhoneIndia   = regexp.MustCompile(`\+91[-.\s]?[6-9]\d{4}[-.\s]?\d{5}`)
	rePhoneBare10  = regexp.MustCompile(`\b[6-9]\d{9}\b`)
	rePhoneUS      = regexp.MustCompile(`\(\d{3}\)[-.\s]?\d{3}[-.\s]?\d{4}`)
	rePhoneGeneric = regexp.MustCompile(`\b\d{3}[-.]\d{3}[-.]\d{4}\b`)
	rePhoneUSFull  = regexp.MustCompile(`\+1[-.\s]?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)
	// Label-anchored digit blob: whatever follows "Phone:", "Mobile -"
	// and friends on the same line.
	rePhoneLabeled = regexp.MustCompile(`(?i)\b(?:phone|mobile|cell|tel|telephone|contact|call|whatsapp)\b\s*(?:no\.?|number)?\s*[:\-]?\s*([+(]?[\d][\d\s().\-+]{8,20})`)
	// Spaced-out international numbers: "+91 98765 43210".
	rePhoneSpaced = regexp.MustCompile(`\+\d{1,3}(?:\s\d{2,5}){2,4}`)

	rePhoneKeyword   = regexp.MustCompile(`(?i)\b(?:phone|mobile|cell|tel|call|contact|reach)\b`)
	rePhoneLabelWord = regexp.MustCompile(`(?i)\b(?:phone|mobile|cell|tel|telephone|contact|call|whatsapp|no|number|ph|mob)\b`)
	rePhoneNonDigit  = regexp.MustCompile(`[^\d+]`)
	reRepeatedDigit  = regexp.MustCompile(`^(?:00+|11+|22+|33+|44+|55+|66+|77+|88+|99+)$`)
)

// Sequences that show up in templates and throwaway test data. The list
// is intentionally short; see IsValidPhone.
var fakePhoneSequences = map[string]bool{
	"1234567890": true,
	"0123456789": true,
	"9876543210": true,
	"1111111111": true,
	"0000000000": true,
}

// usShaped marks candidates matched by a US area-code pattern that
// carries no country code, so cleaning can reconstruct the leading 1.
type phoneCandidate struct {
	raw      string
	usShaped bool
}

// ExtractPhones returns all valid phone numbers found in text,
// normalized to a leading-"+" form and deduplicated, in strategy scan
// order. The validation rules are tuned for a mixed India/US applicant
// pool and are not a general E.164 validator.
func ExtractPhones(text string) []string {
	var found []string
	seen := make(map[string]bool)

	add := func(c phoneCandidate) {
		digits := cleanPhone(c.raw)
		if digits == "" {
			return
		}
		// Fake sequences are rejected before any country-code
		// reconstruction, so "123-456-7890" cannot come back to life
		// as "+11234567890".
		if fakePhoneSequences[strings.TrimPrefix(digits, "+")] {
			return
		}
		if c.usShaped && len(digits) == 10 && !strings.HasPrefix(digits, "+") {
			digits = "1" + digits
		}
		if !IsValidPhone(digits) {
			return
		}
		formatted := FormatPhone(digits)
		if formatted == "" || seen[formatted] {
			return
		}
		seen[formatted] = true
		found = append(found, formatted)
	}

	scan := func(segment string) {
		for _, m := range rePhoneIntl.FindAllString(segment, -1) {
			add(phoneCandidate{raw: m})
		}
		for _, m := range rePhoneIndia.FindAllString(segment, -1) {
			add(phoneCandidate{raw: m})
		}
		for _, m := range rePhoneBare10.FindAllString(segment, -1) {
			add(phoneCandidate{raw: m})
		}
		for _, m := range rePhoneUS.FindAllString(segment, -1) {
			add(phoneCandidate{raw: m, usShaped: true})
		}
		for _, m := range rePhoneGeneric.FindAllString(segment, -1) {
			add(phoneCandidate{raw: m, usShaped: true})
		}
		for _, m := range rePhoneLabeled.FindAllStringSubmatch(segment, -1) {
			add(phoneCandidate{raw: m[1]})
		}
		for _, m := range rePhoneSpaced.FindAllString(segment, -1) {
			add(phoneCandidate{raw: m})
		}
		for _, m := range rePhoneUSFull.FindAllString(segment, -1) {
			add(phoneCandidate{raw: m})
		}
	}

	scan(text)

	lines := strings.Split(text, "\n")

	// Keyword proximity: a contact keyword pulls in that line and the
	// next two, same window as the email extractor.
	for i, line := range lines {
		if !rePhoneKeyword.MatchString(line) {
			continue
		}
		end := i + keywordWindowLines + 1
		if end > len(lines) {
			end = len(lines)
		}
		scan(strings.Join(lines[i:end], "\n"))
	}

	// Header area: first 30 lines unconditionally.
	header := lines
	if len(header) > headerScanLines {
		header = header[:headerScanLines]
	}
	scan(strings.Join(header, "\n"))

	return found
}

// cleanPhone strips labels and separators from a raw candidate and
// returns the bare digit string (possibly "+"-prefixed), or "" when the
// digit count falls outside [10,15].
func cleanPhone(raw string) string {
	s := rePhoneLabelWord.ReplaceAllString(raw, " ")
	s = rePhoneNonDigit.ReplaceAllString(s, "")
	if strings.HasPrefix(s, "00") {
		s = "+" + s[2:]
	}
	digits := strings.TrimPrefix(s, "+")
	if strings.Contains(digits, "+") {
		// A '+' anywhere but the front means the candidate glued two
		// numbers together; drop it.
		return ""
	}
	if len(digits) < 10 || len(digits) > 15 {
		return ""
	}
	return s
}

// IsValidPhone reports whether a cleaned candidate (digits with an
// optional leading "+") looks like a real number for the India/US
// applicant pool this extractor is tuned for.
func IsValidPhone(s string) bool {
	if s == "" {
		return false
	}
	if s[0] != '+' && (s[0] < '0' || s[0] > '9') {
		return false
	}
	if strings.Count(s, "+") > 1 {
		return false
	}
	digits := strings.TrimPrefix(s, "+")
	if len(digits) < 10 || len(digits) > 15 {
		return false
	}
	if reRepeatedDigit.MatchString(digits) {
		return false
	}
	if fakePhoneSequences[digits] {
		return false
	}
	switch {
	case len(digits) == 12 && strings.HasPrefix(digits, "91"):
		return digits[2] >= '6' && digits[2] <= '9'
	case len(digits) == 10:
		return digits[0] >= '6' && digits[0] <= '9'
	case len(digits) == 11:
		return digits[0] == '1'
	}
	return true
}

// FormatPhone normalizes a validated digit string to a leading-"+"
// form. An empty result means the candidate cannot be formatted and is
// silently dropped, not an error.
func FormatPhone(s string) string {
	if strings.HasPrefix(s, "+") {
		return s
	}
	switch {
	case len(s) == 10 && s[0] >= '6' && s[0] <= '9':
		return "+91" + s
	case len(s) == 12 && strings.HasPrefix(s, "91"):
		return "+" + s
	case len(s) == 11 && s[0] == '1':
		return "+" + s
	case len(s) >= 11 && len(s) <= 15:
		return "+" + s
	}
	return ""
}
