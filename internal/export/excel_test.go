package export

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/talentsift/resume-screener/internal/models"
)

func testReport() models.ReportResponse {
	return models.ReportResponse{
		BatchID:  "batch-123",
		JobTitle: "Backend Developer",
		Requirement: models.ParsedJobRequirement{
			Title:      "Backend Developer",
			Skills:     []string{"Python", "Django", "PostgreSQL"},
			Experience: "4",
		},
		Candidates: []models.CandidateResult{
			{
				Resume: models.ParsedResume{
					Name:       "Alice Young",
					Email:      "alice@acme.io",
					Phone:      "+919123456780",
					Skills:     []string{"Python", "Django", "PostgreSQL"},
					Experience: "5",
					SourcePath: "uploads/alice_young_resume.txt",
				},
				Match:             models.SkillMatchResult{MatchedCount: 3, RequiredCount: 3, Percentage: 100},
				SkillVerdict:      "Highly Qualified",
				ExperienceVerdict: "Qualified",
				Rank:              1,
			},
			{
				Resume: models.ParsedResume{
					Name:       "broken.pdf",
					SourcePath: "uploads/broken.pdf",
				},
				Error: "decode broken.pdf: document could not be decoded",
				Rank:  2,
			},
		},
	}
}

func TestWriteExcel(t *testing.T) {
	data, err := WriteExcel(testReport())
	if err != nil {
		t.Fatalf("WriteExcel() failed: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not a readable workbook: %v", err)
	}
	defer f.Close()

	for _, sheet := range []string{"Summary", "Ranked Candidates", "Detailed Analysis"} {
		if idx, _ := f.GetSheetIndex(sheet); idx < 0 {
			t.Errorf("workbook is missing sheet %q", sheet)
		}
	}

	name, err := f.GetCellValue("Ranked Candidates", "B2")
	if err != nil {
		t.Fatalf("GetCellValue failed: %v", err)
	}
	if name != "Alice Young" {
		t.Errorf("Ranked Candidates B2 = %q, want %q", name, "Alice Young")
	}

	status, err := f.GetCellValue("Detailed Analysis", "E3")
	if err != nil {
		t.Fatalf("GetCellValue failed: %v", err)
	}
	if status != "Failed: decode broken.pdf: document could not be decoded" {
		t.Errorf("Detailed Analysis E3 = %q, want the decode failure status", status)
	}
}

func TestExportToExcel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report")

	if err := ExportToExcel(testReport(), path); err != nil {
		t.Fatalf("ExportToExcel() failed: %v", err)
	}

	// The .xlsx suffix is appended when missing.
	if _, err := os.Stat(path + ".xlsx"); err != nil {
		t.Errorf("expected %s.xlsx to exist: %v", path, err)
	}
}
