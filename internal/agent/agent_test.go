package agent

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/talentsift/resume-screener/internal/models"
	"github.com/talentsift/resume-screener/internal/parser"
)

const testJobDescription = "Position: Backend Developer\nRequirements:\n• 4 years of experience\n• Python, Django and PostgreSQL"

// newTestAgent builds an agent over a temp uploads directory populated
// with the given files, running on heuristics only.
func newTestAgent(t *testing.T, files map[string][]byte) *ScreeningAgent {
	t.Helper()

	dir := t.TempDir()
	for name, data := range files {
		if err := os.WriteFile(filepath.Join(dir, name), data, 0644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
	return New(parser.New(nil, 0), dir, 2)
}

func TestScreenUploads(t *testing.T) {
	a := newTestAgent(t, map[string][]byte{
		"alice_young_resume.txt": []byte("Alice Young\nalice@acme.io\n5 years of experience\nPython, Django, PostgreSQL"),
		"bob_stone_resume.txt":   []byte("Bob Stone\nbob@acme.io\n2 years of experience\nPython"),
		"broken.pdf":             []byte("this is not a pdf"),
	})

	if err := a.ScreenUploads(context.Background(), testJobDescription); err != nil {
		t.Fatalf("ScreenUploads() failed: %v", err)
	}

	report, err := a.GetReport()
	if err != nil {
		t.Fatalf("GetReport() failed: %v", err)
	}
	if report.BatchID == "" {
		t.Error("report has no batch ID")
	}
	if report.JobTitle != "Backend Developer" {
		t.Errorf("JobTitle = %q, want %q", report.JobTitle, "Backend Developer")
	}
	if len(report.Candidates) != 3 {
		t.Fatalf("got %d candidates, want 3 (every file accounted for)", len(report.Candidates))
	}

	first := report.Candidates[0]
	if first.Resume.Name != "Alice Young" || first.Rank != 1 {
		t.Errorf("first candidate = %q rank %d, want Alice Young rank 1", first.Resume.Name, first.Rank)
	}
	if first.Match.Percentage != 100 {
		t.Errorf("first candidate percentage = %d, want 100", first.Match.Percentage)
	}
	if first.SkillVerdict != "Highly Qualified" {
		t.Errorf("first candidate skill verdict = %q, want %q", first.SkillVerdict, "Highly Qualified")
	}
	if first.ExperienceVerdict != "Qualified" {
		t.Errorf("first candidate experience verdict = %q, want %q", first.ExperienceVerdict, "Qualified")
	}

	second := report.Candidates[1]
	if second.Resume.Name != "Bob Stone" || second.Rank != 2 {
		t.Errorf("second candidate = %q rank %d, want Bob Stone rank 2", second.Resume.Name, second.Rank)
	}
	if second.Match.Percentage != 33 {
		t.Errorf("second candidate percentage = %d, want 33", second.Match.Percentage)
	}
	if second.ExperienceVerdict != "Not Qualified" {
		t.Errorf("second candidate experience verdict = %q, want %q", second.ExperienceVerdict, "Not Qualified")
	}

	// The undecodable PDF lands last, carrying its error, without
	// failing the batch.
	last := report.Candidates[2]
	if last.Error == "" {
		t.Errorf("last candidate has no error, want the decode failure: %+v", last)
	}
	if last.Resume.Name != "broken.pdf" {
		t.Errorf("failed candidate name = %q, want the filename", last.Resume.Name)
	}
}

func TestScreenUploadsProgress(t *testing.T) {
	a := newTestAgent(t, map[string][]byte{
		"a.txt": []byte("Alice Young\nPython"),
		"b.txt": []byte("Bob Stone\nDjango"),
	})

	var mu sync.Mutex
	var percents []int
	a.SetProgressCallback(func(current, total int, message string) {
		mu.Lock()
		defer mu.Unlock()
		percents = append(percents, current)
	})

	if err := a.ScreenUploads(context.Background(), testJobDescription); err != nil {
		t.Fatalf("ScreenUploads() failed: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(percents) < 4 {
		t.Fatalf("got %d progress reports, want at least 4", len(percents))
	}
	if percents[0] != 0 {
		t.Errorf("first progress report = %d, want 0", percents[0])
	}
	if last := percents[len(percents)-1]; last != 100 {
		t.Errorf("last progress report = %d, want 100", last)
	}
}

func TestScreenUploadsEmptyJobDescription(t *testing.T) {
	a := newTestAgent(t, map[string][]byte{"a.txt": []byte("Alice")})
	if err := a.ScreenUploads(context.Background(), ""); err == nil {
		t.Error("ScreenUploads succeeded with an empty job description")
	}
}

func TestScreenUploadsNoDocuments(t *testing.T) {
	a := newTestAgent(t, nil)
	if err := a.ScreenUploads(context.Background(), testJobDescription); err == nil {
		t.Error("ScreenUploads succeeded with an empty uploads directory")
	}
}

// TestScreenUploadsCancelled verifies cancellation is all-or-nothing:
// the error propagates and no partial report is published.
func TestScreenUploadsCancelled(t *testing.T) {
	a := newTestAgent(t, map[string][]byte{
		"a.txt": []byte("Alice Young\nPython"),
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := a.ScreenUploads(ctx, testJobDescription); err != context.Canceled {
		t.Fatalf("ScreenUploads() = %v, want context.Canceled", err)
	}
	if _, err := a.GetReport(); err == nil {
		t.Error("GetReport succeeded after a cancelled batch, want no partial report")
	}
}

func TestRankResults(t *testing.T) {
	results := []models.CandidateResult{
		{Resume: models.ParsedResume{Name: "Carol"}, Match: models.SkillMatchResult{Percentage: 50}},
		{Resume: models.ParsedResume{Name: "broken.pdf"}, Error: "decode failed"},
		{Resume: models.ParsedResume{Name: "Alice"}, Match: models.SkillMatchResult{Percentage: 80}},
		{Resume: models.ParsedResume{Name: "Bob"}, Match: models.SkillMatchResult{Percentage: 50}},
	}

	rankResults(results)

	wantOrder := []string{"Alice", "Bob", "Carol", "broken.pdf"}
	for i, want := range wantOrder {
		if results[i].Resume.Name != want {
			t.Errorf("results[%d] = %q, want %q", i, results[i].Resume.Name, want)
		}
		if results[i].Rank != i+1 {
			t.Errorf("results[%d].Rank = %d, want %d", i, results[i].Rank, i+1)
		}
	}
}

func TestGetReportBeforeScreening(t *testing.T) {
	a := newTestAgent(t, nil)
	if _, err := a.GetReport(); err == nil {
		t.Error("GetReport succeeded before any screening run")
	}
}

func TestGetResultsReturnsCopy(t *testing.T) {
	a := newTestAgent(t, map[string][]byte{
		"a.txt": []byte("Alice Young\nalice@acme.io\nPython"),
	})
	if err := a.ScreenUploads(context.Background(), testJobDescription); err != nil {
		t.Fatalf("ScreenUploads() failed: %v", err)
	}

	results := a.GetResults()
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	results[0].Resume.Name = "mutated"

	if again := a.GetResults(); again[0].Resume.Name == "mutated" {
		t.Error("GetResults exposed internal state to the caller")
	}
}
