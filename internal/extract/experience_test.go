package extract

import (
	"testing"
	"time"
)

// A fixed clock keeps open-ended ("Present") ranges deterministic.
var testNow = time.Date(2026, time.August, 30, 0, 0, 0, 0, time.UTC)

func TestEstimateExperienceYearsExplicit(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "number first",
			input: "Software engineer with 5 years of experience",
			want:  "5",
		},
		{
			name:  "abbreviated unit",
			input: "Experience: 7 yrs in backend development",
			want:  "7",
		},
		{
			name:  "plus suffix",
			input: "10+ years of professional experience",
			want:  "10",
		},
		{
			name:  "experience first",
			input: "Total experience of 3 years",
			want:  "3",
		},
		{
			name:  "leading zero trimmed",
			input: "05 years of experience",
			want:  "5",
		},
		{
			name:  "zero kept",
			input: "0 years of experience",
			want:  "0",
		},
		{
			name:  "explicit mention wins over date ranges",
			input: "5 years of experience\nAcme Corp 01/2010 - 01/2024",
			want:  "5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := estimateExperienceYearsAt(tt.input, testNow); got != tt.want {
				t.Errorf("estimateExperienceYearsAt(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestEstimateExperienceYearsSpan(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "closed year span",
			input: "Worked from 2018 to 2022 in various roles",
			want:  "4",
		},
		{
			name:  "open year span uses current year",
			input: "Acme Corp, 2019 - Present",
			want:  "7",
		},
		{
			name:  "reversed span is ignored",
			input: "Dates listed as 2022 - 2018 by mistake",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := estimateExperienceYearsAt(tt.input, testNow); got != tt.want {
				t.Errorf("estimateExperienceYearsAt(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestEstimateExperienceYearsHistory(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			// One month between jobs is continuous employment, so the
			// total is the full 2018-to-now stretch, not two fragments.
			name:  "adjacent periods merge across a small gap",
			input: "Software Engineer 01/2018 - 06/2020\nSenior Engineer 07/2020 - Present",
			want:  "9",
		},
		{
			// A two-year gap is a real gap: the answer is the sum of the
			// periods, not the span from first start to last end.
			name:  "distant periods sum without the gap",
			input: "Developer 01/2015 - 12/2016\nAnalyst 01/2019 - 12/2020",
			want:  "4",
		},
		{
			name:  "overlapping periods count once",
			input: "Engineer 01/2019 - 06/2021\nTeam Lead 01/2020 - 01/2022",
			want:  "3",
		},
		{
			name:  "month name ranges",
			input: "Acme Corp, March 2019 to May 2021",
			want:  "2",
		},
		{
			name:  "open month range",
			input: "Consultant 06/2024 - Present",
			want:  "2",
		},
		{
			name:  "no signal",
			input: "John Doe\njohn@acme.io\nPython, SQL",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := estimateExperienceYearsAt(tt.input, testNow); got != tt.want {
				t.Errorf("estimateExperienceYearsAt(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// TestCollectWorkPeriodsYearDedup verifies a bare-year restatement of a
// month-level range does not produce a second period.
func TestCollectWorkPeriodsYearDedup(t *testing.T) {
	text := "01/2018 - 06/2020 at Acme, also listed as 2018 - 2020"
	periods := collectWorkPeriods(text, testNow)
	if len(periods) != 1 {
		t.Fatalf("collectWorkPeriods() returned %d periods, want 1: %+v", len(periods), periods)
	}
	want := workPeriod{
		start: time.Date(2018, time.January, 1, 0, 0, 0, 0, time.UTC),
		end:   time.Date(2020, time.June, 1, 0, 0, 0, 0, time.UTC),
	}
	if !periods[0].start.Equal(want.start) || !periods[0].end.Equal(want.end) {
		t.Errorf("collectWorkPeriods()[0] = %+v, want %+v", periods[0], want)
	}
}

func TestMergePeriods(t *testing.T) {
	day := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}

	periods := []workPeriod{
		{start: day(2021, time.January, 1), end: day(2021, time.June, 1)},
		{start: day(2019, time.January, 1), end: day(2019, time.December, 1)},
		{start: day(2019, time.December, 15), end: day(2020, time.March, 1)},
	}
	merged := mergePeriods(periods)

	if len(merged) != 2 {
		t.Fatalf("mergePeriods() returned %d periods, want 2: %+v", len(merged), merged)
	}
	if !merged[0].start.Equal(day(2019, time.January, 1)) || !merged[0].end.Equal(day(2020, time.March, 1)) {
		t.Errorf("merged[0] = %+v, want 2019-01-01 through 2020-03-01", merged[0])
	}
	if !merged[1].start.Equal(day(2021, time.January, 1)) {
		t.Errorf("merged[1] = %+v, want the 2021 period untouched", merged[1])
	}
}
