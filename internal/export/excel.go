package export

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/talentsift/resume-screener/internal/models"
	"github.com/talentsift/resume-screener/internal/scoring"
)

// ExportToExcel generates an Excel workbook with the screening report
// and saves it to outputPath.
func ExportToExcel(report models.ReportResponse, outputPath string) error {
	data, err := WriteExcel(report)
	if err != nil {
		return err
	}

	if !strings.HasSuffix(strings.ToLower(outputPath), ".xlsx") {
		outputPath = outputPath + ".xlsx"
	}
	outputPath = filepath.Clean(outputPath)

	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("failed to save Excel file: %w", err)
	}
	return nil
}

// WriteExcel renders the report workbook to bytes, for HTTP download
// without touching disk.
func WriteExcel(report models.ReportResponse) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	summarySheet := "Summary"
	candidatesSheet := "Ranked Candidates"
	detailsSheet := "Detailed Analysis"

	f.SetSheetName("Sheet1", summarySheet)
	f.NewSheet(candidatesSheet)
	f.NewSheet(detailsSheet)

	if err := createSummarySheet(f, summarySheet, report); err != nil {
		return nil, fmt.Errorf("failed to create summary sheet: %w", err)
	}
	if err := createRankedCandidatesSheet(f, candidatesSheet, report); err != nil {
		return nil, fmt.Errorf("failed to create ranked candidates sheet: %w", err)
	}
	if err := createDetailedAnalysisSheet(f, detailsSheet, report.Candidates); err != nil {
		return nil, fmt.Errorf("failed to create detailed analysis sheet: %w", err)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to render Excel file: %w", err)
	}
	return buf.Bytes(), nil
}

// createSummarySheet writes job details and aggregate statistics.
func createSummarySheet(f *excelize.File, sheetName string, report models.ReportResponse) error {
	f.SetColWidth(sheetName, "A", "A", 28)
	f.SetColWidth(sheetName, "B", "B", 60)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
	if err != nil {
		return err
	}
	labelStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return err
	}

	row := 1

	f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), "Resume Screening Report")
	f.SetCellStyle(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row), headerStyle)
	f.MergeCell(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row))
	row += 2

	setLabeled := func(label string, value interface{}) {
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), label)
		f.SetCellStyle(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), labelStyle)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), value)
		row++
	}

	setLabeled("Job Title:", report.JobTitle)
	setLabeled("Batch ID:", report.BatchID)
	setLabeled("Generated:", time.Now().Format("2006-01-02 15:04:05"))
	setLabeled("Required Skills:", strings.Join(report.Requirement.Skills, ", "))
	setLabeled("Required Experience (years):", report.Requirement.Experience)
	setLabeled("Total Candidates:", len(report.Candidates))
	row++

	f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), "Qualification Bands")
	f.SetCellStyle(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row), headerStyle)
	f.MergeCell(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row))
	row++

	bands := map[string]int{}
	shortlist := map[string]int{}
	var totalPct int
	for _, c := range report.Candidates {
		bands[c.SkillVerdict]++
		// Shortlisting view uses the select/hold/reject bands with the
		// one-year experience tolerance.
		verdict := scoring.BandSelectHoldReject.Verdict(c.Match.Percentage)
		if verdict == "Select" && !scoring.ExperienceWithinOneYear.QualifiesExperience(c.Resume.Experience, report.Requirement.Experience) {
			verdict = "Hold"
		}
		shortlist[verdict]++
		totalPct += c.Match.Percentage
	}

	setLabeled("Highly Qualified (>=80%):", bands["Highly Qualified"])
	setLabeled("Qualified (>=50%):", bands["Qualified"])
	setLabeled("Not Qualified (<50%):", bands["Not Qualified"])
	row++

	setLabeled("Select (>=70%):", shortlist["Select"])
	setLabeled("Hold (>=40%):", shortlist["Hold"])
	setLabeled("Reject (<40%):", shortlist["Reject"])
	row++

	if len(report.Candidates) > 0 {
		setLabeled("Average Match:", fmt.Sprintf("%.1f%%", float64(totalPct)/float64(len(report.Candidates))))
	}

	return nil
}

// createRankedCandidatesSheet writes one row per candidate in rank
// order.
func createRankedCandidatesSheet(f *excelize.File, sheetName string, report models.ReportResponse) error {
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return err
	}

	headers := []string{"Rank", "Name", "Email", "Phone", "Match %", "Matched / Required", "Skill Verdict", "Experience (yrs)", "Experience Verdict"}
	widths := []float64{8, 24, 30, 18, 10, 18, 18, 16, 18}
	for i, h := range headers {
		col := string(rune('A' + i))
		f.SetCellValue(sheetName, fmt.Sprintf("%s1", col), h)
		f.SetColWidth(sheetName, col, col, widths[i])
	}
	f.SetCellStyle(sheetName, "A1", fmt.Sprintf("%c1", 'A'+len(headers)-1), headerStyle)

	for i, c := range report.Candidates {
		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), c.Rank)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), c.Resume.Name)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), c.Resume.Email)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), c.Resume.Phone)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), c.Match.Percentage)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), fmt.Sprintf("%d / %d", c.Match.MatchedCount, c.Match.RequiredCount))
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), c.SkillVerdict)
		f.SetCellValue(sheetName, fmt.Sprintf("H%d", row), c.Resume.Experience)
		f.SetCellValue(sheetName, fmt.Sprintf("I%d", row), c.ExperienceVerdict)
	}

	return nil
}

// createDetailedAnalysisSheet writes extracted fields per candidate,
// including decode errors, so every uploaded file is accounted for.
func createDetailedAnalysisSheet(f *excelize.File, sheetName string, candidates []models.CandidateResult) error {
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return err
	}

	headers := []string{"Name", "Skills", "Education", "Source File", "Status"}
	widths := []float64{24, 70, 40, 36, 40}
	for i, h := range headers {
		col := string(rune('A' + i))
		f.SetCellValue(sheetName, fmt.Sprintf("%s1", col), h)
		f.SetColWidth(sheetName, col, col, widths[i])
	}
	f.SetCellStyle(sheetName, "A1", fmt.Sprintf("%c1", 'A'+len(headers)-1), headerStyle)

	for i, c := range candidates {
		row := i + 2
		status := "OK"
		switch {
		case c.Error != "":
			status = "Failed: " + c.Error
		case c.Resume.Incomplete:
			status = "Processed with incomplete data"
		}
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), c.Resume.Name)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), strings.Join(c.Resume.Skills, ", "))
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), c.Resume.Education)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), filepath.Base(c.Resume.SourcePath))
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), status)
	}

	return nil
}
