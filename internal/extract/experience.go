package extract

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// mergeGapDays is the largest gap between consecutive work periods
// still treated as continuous employment. A job ending in June and the
// next starting in July must not register as a career gap.
const mergeGapDays = 30

const avgDaysPerMonth = 30.44

var (
	// Tier 1: explicit mentions, number-first and experience-first.
	reYearsDirect  = regexp.MustCompile(`(?i)\b(\d{1,2})\s*\+?\s*(?:years?|yrs?)\b(?:\s+of)?(?:\s+(?:total|overall|professional|work(?:ing)?))?\s*(?:experience)?`)
	reYearsReverse = regexp.MustCompile(`(?i)\bexperience\b\s*(?:of|:|-)?\s*(\d{1,2})\s*\+?\s*(?:years?|yrs?)\b`)

	// Tier 2: a single YYYY - YYYY/present range. The leading class
	// keeps the year inside "01/2018" from matching as a bare year.
	reYearSpan = regexp.MustCompile(`(?i)(?:^|[^/\d])((?:19|20)\d{2})\s*(?:-|to)\s*((?:19|20)\d{2}|present|current|now)\b`)

	// Tier 3 range formats.
	reRangeMonthNum = regexp.MustCompile(`(?i)\b(\d{1,2})/((?:19|20)\d{2})\s*(?:-|to)\s*(?:(\d{1,2})/((?:19|20)\d{2})|(present|current|now))`)
	reRangeYears    = regexp.MustCompile(`(?i)(?:^|[^/\d])((?:19|20)\d{2})\s*(?:-|to)\s*((?:19|20)\d{2}|present|current|now)\b`)
	reRangeMonthTxt = regexp.MustCompile(`(?i)\b(January|February|March|April|May|June|July|August|September|October|November|December|Jan|Feb|Mar|Apr|Jun|Jul|Aug|Sep|Sept|Oct|Nov|Dec)\.?,?\s+((?:19|20)\d{2})\s*(?:-|to)\s*(?:(January|February|March|April|May|June|July|August|September|October|November|December|Jan|Feb|Mar|Apr|Jun|Jul|Aug|Sep|Sept|Oct|Nov|Dec)\.?,?\s+((?:19|20)\d{2})|(present|current|now))`)
)

var monthsByName = map[string]time.Month{
	"jan": time.January, "january": time.January,
	"feb": time.February, "february": time.February,
	"mar": time.March, "march": time.March,
	"apr": time.April, "april": time.April,
	"may": time.May,
	"jun": time.June, "june": time.June,
	"jul": time.July, "july": time.July,
	"aug": time.August, "august": time.August,
	"sep": time.September, "sept": time.September, "september": time.September,
	"oct": time.October, "october": time.October,
	"nov": time.November, "november": time.November,
	"dec": time.December, "december": time.December,
}

// workPeriod is one employment interval. Ephemeral: built per call,
// merged, discarded once the year count is computed.
type workPeriod struct {
	start time.Time
	end   time.Time
}

// EstimateExperienceYears returns the candidate's total work experience
// as an integer-valued string, or "" when no signal is found. Three
// tiers, each consulted only when the previous found nothing:
// an explicit "N years" mention, a single YYYY-YYYY span, and finally
// full work-history reconciliation over all date ranges in the text.
func EstimateExperienceYears(text string) string {
	return estimateExperienceYearsAt(text, time.Now())
}

// estimateExperienceYearsAt is EstimateExperienceYears with an
// injectable clock for open-ended ("present") ranges.
func estimateExperienceYearsAt(text string, now time.Time) string {
	// Tier 1: the author stated it outright; first match wins.
	if m := reYearsDirect.FindStringSubmatch(text); m != nil {
		return trimYearCount(m[1])
	}
	if m := reYearsReverse.FindStringSubmatch(text); m != nil {
		return trimYearCount(m[1])
	}

	// Tier 2: one overall span.
	if m := reYearSpan.FindStringSubmatch(text); m != nil {
		start, _ := strconv.Atoi(m[1])
		end := now.Year()
		if y, err := strconv.Atoi(m[2]); err == nil {
			end = y
		}
		if end >= start {
			return strconv.Itoa(end - start)
		}
	}

	// Tier 3: reconcile the whole work history.
	periods := collectWorkPeriods(text, now)
	if len(periods) == 0 {
		return ""
	}
	merged := mergePeriods(periods)

	var months float64
	for _, p := range merged {
		days := p.end.Sub(p.start).Hours() / 24
		months += days / avgDaysPerMonth
	}
	years := int(math.Round(months / 12))
	return strconv.Itoa(years)
}

// trimYearCount drops leading zeros from a captured year count while
// keeping a literal "0" intact.
func trimYearCount(s string) string {
	t := strings.TrimLeft(s, "0")
	if t == "" {
		return "0"
	}
	return t
}

// collectWorkPeriods parses every recognized date-range format into
// periods, dropping any where start is after end. Bare years span
// Jan 1 to Dec 31; month/year dates snap to the first of the month.
func collectWorkPeriods(text string, now time.Time) []workPeriod {
	var periods []workPeriod

	appendPeriod := func(start, end time.Time) {
		if start.After(end) {
			return
		}
		periods = append(periods, workPeriod{start: start, end: end})
	}

	for _, m := range reRangeMonthNum.FindAllStringSubmatch(text, -1) {
		sm, _ := strconv.Atoi(m[1])
		sy, _ := strconv.Atoi(m[2])
		if sm < 1 || sm > 12 {
			continue
		}
		start := time.Date(sy, time.Month(sm), 1, 0, 0, 0, 0, time.UTC)
		var end time.Time
		if m[5] != "" {
			end = now
		} else {
			em, _ := strconv.Atoi(m[3])
			ey, _ := strconv.Atoi(m[4])
			if em < 1 || em > 12 {
				continue
			}
			end = time.Date(ey, time.Month(em), 1, 0, 0, 0, 0, time.UTC)
		}
		appendPeriod(start, end)
	}

	for _, m := range reRangeMonthTxt.FindAllStringSubmatch(text, -1) {
		sy, _ := strconv.Atoi(m[2])
		start := time.Date(sy, monthsByName[strings.ToLower(m[1])], 1, 0, 0, 0, 0, time.UTC)
		var end time.Time
		if m[5] != "" {
			end = now
		} else {
			ey, _ := strconv.Atoi(m[4])
			end = time.Date(ey, monthsByName[strings.ToLower(m[3])], 1, 0, 0, 0, 0, time.UTC)
		}
		appendPeriod(start, end)
	}

	// Bare-year ranges last, and only on lines that produced no
	// month-level period, so "01/2018 - 06/2020" does not also count
	// as "2018 - 2020".
	monthCovered := make(map[int]bool)
	for _, p := range periods {
		for y := p.start.Year(); y <= p.end.Year(); y++ {
			monthCovered[y] = true
		}
	}
	for _, m := range reRangeYears.FindAllStringSubmatch(text, -1) {
		sy, _ := strconv.Atoi(m[1])
		if monthCovered[sy] {
			continue
		}
		start := time.Date(sy, time.January, 1, 0, 0, 0, 0, time.UTC)
		var end time.Time
		if ey, err := strconv.Atoi(m[2]); err == nil {
			end = time.Date(ey, time.December, 31, 0, 0, 0, 0, time.UTC)
			if end.After(now) {
				end = now
			}
		} else {
			end = now
		}
		appendPeriod(start, end)
	}

	return periods
}

// mergePeriods is an interval merge with a tolerance window: periods
// sorted by start are folded together whenever the gap to the next
// start is at most mergeGapDays. Overlapping job entries therefore
// count once, not twice.
func mergePeriods(periods []workPeriod) []workPeriod {
	sort.Slice(periods, func(i, j int) bool {
		return periods[i].start.Before(periods[j].start)
	})

	merged := []workPeriod{periods[0]}
	for _, p := range periods[1:] {
		last := &merged[len(merged)-1]
		gap := p.start.Sub(last.end).Hours() / 24
		if gap <= mergeGapDays {
			if p.end.After(last.end) {
				last.end = p.end
			}
			continue
		}
		merged = append(merged, p)
	}
	return merged
}
