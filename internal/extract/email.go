package extract

import (
	"regexp"
	"strings"
)

const (
	// headerScanLines is how many leading lines are scanned
	// unconditionally; contact blocks live at the top of cover
	// letters and resumes.
	headerScanLines = 30
	// keywordWindowLines is how many lines after a contact keyword
	// are included in the proximity scan.
	keywordWindowLines = 2
)

var (
	reEmail          = regexp.MustCompile(`\b[A-Za-z0-9._%-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	reEmailLabel     = regexp.MustCompile(`(?i)(?:e-?mail|mail|contact|id)\s*[:\-]?\s*([A-Za-z0-9._%-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,})`)
	reEmailBracketed = regexp.MustCompile(`[(\[<{]\s*([A-Za-z0-9._%-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,})\s*[)\]>}]`)
	// OCR and PDF extraction tend to shove spaces around '@' and the
	// final dot: "john smith @ gmail . com".
	reEmailSpaced  = regexp.MustCompile(`\b([A-Za-z0-9._%-]+)\s*@\s*([A-Za-z0-9.-]+)\s*\.\s*([A-Za-z]{2,})\b`)
	reEmailKeyword = regexp.MustCompile(`(?i)\b(?:e-?mail|mail|contact|reach|write)\b`)
)

// Domains used in templates and sample resumes. A hit only rejects the
// address when the local part is shorter than 3 characters; real short
// addresses at these domains are rare, real templates are not.
var placeholderDomains = map[string]bool{
	"example.com": true,
	"example.org": true,
	"test.com":    true,
	"email.com":   true,
	"domain.com":  true,
}

// ExtractEmails returns all valid email addresses found in text,
// lowercased and deduplicated, in strategy scan order: direct regex
// hits first, then label-anchored, bracketed, spaced-out,
// keyword-proximity and header-area hits. The first element is the best
// guess by convention only.
func ExtractEmails(text string) []string {
	var found []string
	seen := make(map[string]bool)

	add := func(candidate string) {
		email := strings.ToLower(strings.TrimSpace(candidate))
		if seen[email] || !IsValidEmail(email) {
			return
		}
		seen[email] = true
		found = append(found, email)
	}

	// Strategy 1: direct scan over the whole text.
	for _, m := range reEmail.FindAllString(text, -1) {
		add(m)
	}

	// Strategy 2: label-anchored ("Email: ...", "Contact - ...").
	for _, m := range reEmailLabel.FindAllStringSubmatch(text, -1) {
		add(m[1])
	}

	// Strategy 3: bracketed or parenthesized tokens.
	for _, m := range reEmailBracketed.FindAllStringSubmatch(text, -1) {
		add(m[1])
	}

	// Strategy 4: reassemble spaced-out addresses.
	for _, m := range reEmailSpaced.FindAllStringSubmatch(text, -1) {
		add(m[1] + "@" + m[2] + "." + m[3])
	}

	lines := strings.Split(text, "\n")

	// Strategy 5: contact keyword triggers a scan of that line plus
	// the next two.
	for i, line := range lines {
		if !reEmailKeyword.MatchString(line) {
			continue
		}
		end := i + keywordWindowLines + 1
		if end > len(lines) {
			end = len(lines)
		}
		window := strings.Join(lines[i:end], "\n")
		for _, m := range reEmail.FindAllString(window, -1) {
			add(m)
		}
	}

	// Strategy 6: unconditional header-area scan.
	header := lines
	if len(header) > headerScanLines {
		header = header[:headerScanLines]
	}
	for _, m := range reEmail.FindAllString(strings.Join(header, "\n"), -1) {
		add(m)
	}

	return found
}

// IsValidEmail reports whether s is an acceptable email address for a
// contact record. The rules are deliberately stricter than RFC 5322:
// resumes contain mangled addresses, and a wrong address is worse than
// a missing one.
func IsValidEmail(s string) bool {
	if len(s) < 5 || len(s) > 100 {
		return false
	}
	if strings.ContainsAny(s, " \t\n\r") {
		return false
	}
	if strings.Count(s, "@") != 1 {
		return false
	}

	at := strings.Index(s, "@")
	local, domain := s[:at], s[at+1:]

	if len(local) < 1 || len(local) > 64 {
		return false
	}
	if strings.HasPrefix(local, ".") || strings.HasSuffix(local, ".") || strings.Contains(local, "..") {
		return false
	}
	for _, r := range local {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '.', r == '_', r == '%', r == '-':
		default:
			return false
		}
	}

	if len(domain) < 1 || len(domain) > 255 {
		return false
	}
	if strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") ||
		strings.HasPrefix(domain, "-") || strings.HasSuffix(domain, "-") {
		return false
	}
	if strings.Contains(domain, "..") {
		return false
	}
	dot := strings.LastIndex(domain, ".")
	if dot < 0 || len(domain)-dot-1 < 2 {
		return false
	}

	// Placeholder heuristic: short local part at a known fake domain.
	if placeholderDomains[strings.ToLower(domain)] && len(local) < 3 {
		return false
	}

	return true
}
