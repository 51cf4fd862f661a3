package extract

import (
	"regexp"
	"strings"
)

const (
	minSkillPhraseLen = 3
	maxSkillPhraseLen = 29
)

// skillPatterns holds one boundary-aware regex per dictionary entry,
// compiled once at startup. Plain \b breaks on terms like "C++" and
// "C#" (\b after '+' never matches), so boundaries are built per term.
var skillPatterns = compileSkillPatterns(skillDictionary)

var (
	reContextual = regexp.MustCompile(`(?i)\b(?:experience in|knowledge of|proficient (?:in|with)|skilled (?:in|with)|expertise (?:in|with)|familiar with|understanding of|using|worked with)\s+([^.\n;:!?]{3,120})`)
	rePhraseSep  = regexp.MustCompile(`(?i)\s*(?:,|/|\band\b|\bor\b)\s*`)
	reBulletLine = regexp.MustCompile(`^\s*[•\-*]\s+(.+)$`)
)

func compileSkillPatterns(dict []string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(dict))
	for i, term := range dict {
		patterns[i] = regexp.MustCompile(`(?i)` + boundaryLead(term) + regexp.QuoteMeta(term) + boundaryTrail(term))
	}
	return patterns
}

func boundaryLead(term string) string {
	c := term[0]
	if isWordChar(c) {
		return `(?:^|[^A-Za-z0-9_])`
	}
	// Terms like ".NET" start on punctuation; only whitespace-ish
	// characters count as a boundary there.
	return `(?:^|[\s,;(])`
}

func boundaryTrail(term string) string {
	c := term[len(term)-1]
	if isWordChar(c) {
		// '+' and '#' excluded so "C" never matches inside "C++" or
		// "C#", and "Go" never matches "Go+".
		return `(?:$|[^A-Za-z0-9_+#])`
	}
	return `(?:$|[^A-Za-z0-9_])`
}

func isWordChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_'
}

// SkillOptions controls the extraction passes.
type SkillOptions struct {
	// Aggressive enables the contextual-pattern and bullet-line
	// passes. Higher recall, lower precision; used for requirement
	// documents and as a fallback when the base pass finds nothing.
	Aggressive bool
}

// ExtractSkills scans text against the canonical skill dictionary.
// Results carry the dictionary's casing, deduplicated by canonical
// term, ordered by dictionary order of first match (not text order).
// Aggressive mode additionally mines contextual phrases ("proficient
// in X", "worked with X") and bullet lines; every hit it contributes is
// still a literal dictionary entry, never the raw matched phrase.
func ExtractSkills(text string, opts SkillOptions) []string {
	var found []string
	seen := make(map[string]bool)

	add := func(canonical string) {
		key := strings.ToLower(canonical)
		if seen[key] {
			return
		}
		seen[key] = true
		found = append(found, canonical)
	}

	// Base pass: dictionary order, word-boundary hits.
	for i, term := range skillDictionary {
		if skillPatterns[i].MatchString(text) {
			add(term)
		}
	}

	if !opts.Aggressive {
		return found
	}

	// Contextual pass: split the tail of each pattern into candidate
	// phrases and resolve them against the dictionary.
	for _, m := range reContextual.FindAllStringSubmatch(text, -1) {
		for _, phrase := range splitSkillPhrases(m[1]) {
			if canonical, ok := lookupSkill(phrase); ok {
				add(canonical)
			}
		}
	}

	// Bullet pass: requirement documents list skills as bullets with
	// no verb to anchor a contextual pattern.
	for _, line := range strings.Split(text, "\n") {
		bm := reBulletLine.FindStringSubmatch(line)
		if bm == nil {
			continue
		}
		for _, phrase := range splitSkillPhrases(bm[1]) {
			if canonical, ok := lookupSkill(phrase); ok {
				add(canonical)
			}
		}
	}

	return found
}

// splitSkillPhrases breaks an "X and Y, Z" tail into candidate phrases
// within the accepted length band.
func splitSkillPhrases(s string) []string {
	var phrases []string
	for _, part := range rePhraseSep.Split(s, -1) {
		part = strings.TrimSpace(strings.Trim(part, ".:;"))
		if len(part) < minSkillPhraseLen || len(part) > maxSkillPhraseLen {
			continue
		}
		phrases = append(phrases, part)
	}
	return phrases
}

// lookupSkill resolves a free-form phrase to its canonical dictionary
// term by bidirectional substring containment, case-insensitive. The
// first dictionary entry that matches wins.
func lookupSkill(phrase string) (string, bool) {
	p := strings.ToLower(phrase)
	for _, term := range skillDictionary {
		if strings.ToLower(term) == p {
			return term, true
		}
	}
	for _, term := range skillDictionary {
		t := strings.ToLower(term)
		// Containment needs a minimum term length: "R" and "C" are
		// substrings of nearly everything.
		if len(t) < minSkillPhraseLen {
			continue
		}
		if strings.Contains(p, t) || strings.Contains(t, p) {
			return term, true
		}
	}
	return "", false
}
