// Package scoring implements the deterministic skill-match scorer: a
// four-tier matching algorithm over normalized skill lists, plus the
// named qualification policies the rest of the system applies to its
// output.
package scoring

import (
	"math"
	"strconv"
	"strings"

	"github.com/talentsift/resume-screener/internal/extract"
	"github.com/talentsift/resume-screener/internal/models"
)

// MatchSkills scores candidateSkills against requiredSkills. Both lists
// are lowercased and trimmed first; blank entries are dropped. An empty
// list on either side is a defined degenerate case scoring 0, not an
// error.
//
// Matching runs in four tiers, each swept across the entire required
// list before the next tier runs, and a required skill is matched at
// most once, by the first tier that claims it:
//
//  1. exact string equality
//  2. compound terms: every word of a multi-word required skill is a
//     substring of one candidate skill
//  3. word-boundary containment in either direction ("lambda" matches
//     "aws lambda", but "java" never matches "javascript")
//  4. technology equivalents from the synonym table ("mysql" satisfies
//     a "sql" requirement)
func MatchSkills(candidateSkills, requiredSkills []string) models.SkillMatchResult {
	candidates := normalizeSkillList(candidateSkills)
	required := normalizeSkillList(requiredSkills)

	if len(candidates) == 0 || len(required) == 0 {
		return models.SkillMatchResult{RequiredCount: len(required)}
	}

	matched := make([]bool, len(required))
	matchedCount := 0

	claim := func(i int) {
		matched[i] = true
		matchedCount++
	}

	// Tier 1: exact.
	for i, req := range required {
		if matched[i] {
			continue
		}
		for _, cand := range candidates {
			if cand == req {
				claim(i)
				break
			}
		}
	}

	// Tier 2: compound required terms, all words contained in one
	// candidate skill.
	for i, req := range required {
		if matched[i] || !strings.Contains(req, " ") {
			continue
		}
		words := strings.Fields(req)
		for _, cand := range candidates {
			if containsAllWords(cand, words) {
				claim(i)
				break
			}
		}
	}

	// Tier 3: word-boundary containment, either direction.
	for i, req := range required {
		if matched[i] {
			continue
		}
		for _, cand := range candidates {
			if containsWord(cand, req) || containsWord(req, cand) {
				claim(i)
				break
			}
		}
	}

	// Tier 4: technology equivalents.
	for i, req := range required {
		if matched[i] {
			continue
		}
		if matchesEquivalent(req, candidates) {
			claim(i)
		}
	}

	return models.SkillMatchResult{
		MatchedCount:  matchedCount,
		RequiredCount: len(required),
		Percentage:    int(math.Round(float64(matchedCount) / float64(len(required)) * 100)),
	}
}

func normalizeSkillList(skills []string) []string {
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func containsAllWords(s string, words []string) bool {
	for _, w := range words {
		if !strings.Contains(s, w) {
			return false
		}
	}
	return true
}

// containsWord reports whether w occurs in s bounded by spaces or the
// string edges. Plain substring containment would let "java" claim
// "javascript".
func containsWord(s, w string) bool {
	if s == w {
		return true
	}
	return strings.HasPrefix(s, w+" ") ||
		strings.HasSuffix(s, " "+w) ||
		strings.Contains(s, " "+w+" ")
}

// matchesEquivalent checks whether req belongs to a synonym group with
// a member some candidate equals or word-boundary-contains.
func matchesEquivalent(req string, candidates []string) bool {
	for _, group := range extract.TechnologyEquivalents() {
		inGroup := false
		for _, member := range group {
			if member == req {
				inGroup = true
				break
			}
		}
		if !inGroup {
			continue
		}
		for _, member := range group {
			for _, cand := range candidates {
				if cand == member || containsWord(cand, member) {
					return true
				}
			}
		}
	}
	return false
}

// SkillBandPolicy names a qualification banding scheme applied to a
// match percentage. The two schemes come from different call sites and
// are intentionally not unified: they use different thresholds and
// different labels.
type SkillBandPolicy string

const (
	// BandQualifiedTiered: >=80 "Highly Qualified", >=50 "Qualified",
	// else "Not Qualified".
	BandQualifiedTiered SkillBandPolicy = "qualified-tiered"
	// BandSelectHoldReject: >=70 "Select", >=40 "Hold", else "Reject".
	BandSelectHoldReject SkillBandPolicy = "select-hold-reject"
)

// Verdict maps a match percentage to the policy's label.
func (p SkillBandPolicy) Verdict(percentage int) string {
	switch p {
	case BandSelectHoldReject:
		switch {
		case percentage >= 70:
			return "Select"
		case percentage >= 40:
			return "Hold"
		default:
			return "Reject"
		}
	default:
		switch {
		case percentage >= 80:
			return "Highly Qualified"
		case percentage >= 50:
			return "Qualified"
		default:
			return "Not Qualified"
		}
	}
}

// ExperiencePolicy names an experience-qualification rule. Two rules
// exist at different call sites; both are preserved.
type ExperiencePolicy string

const (
	// ExperienceAtLeast: candidate years >= required years.
	ExperienceAtLeast ExperiencePolicy = "at-least"
	// ExperienceWithinOneYear: candidate may fall short of the
	// requirement by at most one year.
	ExperienceWithinOneYear ExperiencePolicy = "within-one-year"
)

// QualifiesExperience applies the policy to candidate and required
// year counts given as strings. Non-numeric or negative values default
// to 0 and never produce an error. An empty requirement always
// qualifies.
func (p ExperiencePolicy) QualifiesExperience(candidateYears, requiredYears string) bool {
	required := parseYears(requiredYears)
	if required == 0 {
		return true
	}
	candidate := parseYears(candidateYears)
	if p == ExperienceWithinOneYear {
		return candidate >= required-1
	}
	return candidate >= required
}

func parseYears(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
