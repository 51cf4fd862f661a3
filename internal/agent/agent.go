// Package agent orchestrates batch screening: it parses the job
// requirement, fans resume documents out to the parsing pipeline under
// a fixed concurrency limit, scores each candidate and ranks the
// results.
package agent

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/talentsift/resume-screener/internal/ingestion"
	"github.com/talentsift/resume-screener/internal/models"
	"github.com/talentsift/resume-screener/internal/parser"
	"github.com/talentsift/resume-screener/internal/scoring"
)

// DefaultMaxConcurrent is the default number of documents processed at
// once. Extraction is CPU-bound, but each document may also hold an
// oracle call in flight.
const DefaultMaxConcurrent = 4

// ProgressCallback is called to report progress during processing.
type ProgressCallback func(current, total int, message string)

// ScreeningAgent runs the resume screening process.
type ScreeningAgent struct {
	FileHandler *ingestion.FileHandler

	parser        *parser.Parser
	maxConcurrent int

	mu          sync.RWMutex
	progressCb  ProgressCallback
	requirement models.ParsedJobRequirement
	results     []models.CandidateResult
	batchID     string
}

// New creates a screening agent. maxConcurrent <= 0 selects the
// default.
func New(p *parser.Parser, uploadsDir string, maxConcurrent int) *ScreeningAgent {
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrent
	}
	return &ScreeningAgent{
		FileHandler:   ingestion.NewFileHandler(uploadsDir),
		parser:        p,
		maxConcurrent: maxConcurrent,
	}
}

// SetProgressCallback sets the progress callback function.
func (a *ScreeningAgent) SetProgressCallback(cb ProgressCallback) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.progressCb = cb
}

// reportProgress calls the progress callback if set.
func (a *ScreeningAgent) reportProgress(current, total int, message string) {
	a.mu.RLock()
	cb := a.progressCb
	a.mu.RUnlock()

	if cb != nil {
		cb(current, total, message)
	}
}

// ScreenUploads parses the job description text, then screens every
// document in the uploads directory against it.
func (a *ScreeningAgent) ScreenUploads(ctx context.Context, jobDescription string) error {
	if jobDescription == "" {
		return fmt.Errorf("job description is required")
	}

	a.reportProgress(0, 100, "Parsing job description...")
	requirement := a.parser.ParseJobRequirementText(ctx, jobDescription)
	if len(requirement.Skills) == 0 {
		log.Printf("No skills extracted from job description %q; all candidates will score 0", requirement.Title)
	}

	a.reportProgress(10, 100, "Loading documents...")
	documents, err := a.FileHandler.LoadDocuments()
	if err != nil {
		return fmt.Errorf("failed to load documents: %w", err)
	}
	if len(documents) == 0 {
		return fmt.Errorf("no documents found in uploads directory")
	}

	log.Printf("Found %d resumes to screen", len(documents))
	a.reportProgress(15, 100, fmt.Sprintf("Screening %d resumes...", len(documents)))

	results := a.processBatch(ctx, documents, requirement)
	if ctx.Err() != nil {
		// Cancellation is all-or-nothing: no partial report.
		return ctx.Err()
	}

	a.reportProgress(95, 100, "Ranking candidates...")
	rankResults(results)

	a.mu.Lock()
	a.requirement = requirement
	a.results = results
	a.batchID = uuid.NewString()
	a.mu.Unlock()

	a.reportProgress(100, 100, "Screening complete")
	return nil
}

// processBatch runs the parse+match pipeline over documents with at
// most maxConcurrent in flight, dispatched FIFO. One document's
// failure never cancels its siblings; a decode failure becomes an
// error entry in the results. Progress is reported as documents
// complete.
func (a *ScreeningAgent) processBatch(ctx context.Context, documents []ingestion.DocumentFile, requirement models.ParsedJobRequirement) []models.CandidateResult {
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		results   = make([]models.CandidateResult, 0, len(documents))
		completed = 0
	)
	sem := make(chan struct{}, a.maxConcurrent)

	for _, doc := range documents {
		// FIFO dispatch: acquire in submission order.
		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			return results
		}

		wg.Add(1)
		go func(doc ingestion.DocumentFile) {
			defer wg.Done()
			defer func() { <-sem }()

			result, ok := a.screenDocument(ctx, doc, requirement)

			mu.Lock()
			defer mu.Unlock()
			completed++
			if ok {
				results = append(results, result)
			}
			a.reportProgress(15+80*completed/len(documents), 100,
				fmt.Sprintf("Screened %s (%d/%d)", doc.Name, completed, len(documents)))
		}(doc)
	}

	wg.Wait()
	return results
}

// screenDocument parses and scores a single resume. Returns ok=false
// only on cancellation; decode failures produce an error-carrying
// result so the report accounts for every file.
func (a *ScreeningAgent) screenDocument(ctx context.Context, doc ingestion.DocumentFile, requirement models.ParsedJobRequirement) (models.CandidateResult, bool) {
	if ctx.Err() != nil {
		return models.CandidateResult{}, false
	}

	resume, err := a.parser.ParseResume(ctx, doc)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return models.CandidateResult{}, false
		}
		log.Printf("Failed to process %s: %v", doc.Name, err)
		return models.CandidateResult{
			Resume: models.ParsedResume{Name: doc.Name, SourcePath: doc.Path},
			Error:  err.Error(),
		}, true
	}

	if resume.Incomplete {
		log.Printf("File %s processed with incomplete data", doc.Name)
	}

	match := scoring.MatchSkills(resume.Skills, requirement.Skills)
	return models.CandidateResult{
		Resume:            resume,
		Match:             match,
		SkillVerdict:      scoring.BandQualifiedTiered.Verdict(match.Percentage),
		ExperienceVerdict: experienceVerdict(resume.Experience, requirement.Experience),
		Rank:              0, // assigned after ranking
	}, true
}

func experienceVerdict(candidateYears, requiredYears string) string {
	if scoring.ExperienceAtLeast.QualifiesExperience(candidateYears, requiredYears) {
		return "Qualified"
	}
	return "Not Qualified"
}

// rankResults orders by match percentage descending (errors last, name
// as tiebreak for determinism) and assigns ranks.
func rankResults(results []models.CandidateResult) {
	sort.SliceStable(results, func(i, j int) bool {
		if (results[i].Error == "") != (results[j].Error == "") {
			return results[i].Error == ""
		}
		if results[i].Match.Percentage != results[j].Match.Percentage {
			return results[i].Match.Percentage > results[j].Match.Percentage
		}
		return results[i].Resume.Name < results[j].Resume.Name
	})
	for i := range results {
		results[i].Rank = i + 1
	}
}

// GetReport returns the ranked screening report.
func (a *ScreeningAgent) GetReport() (models.ReportResponse, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if len(a.results) == 0 {
		return models.ReportResponse{}, fmt.Errorf("no results available, run screening first")
	}

	candidates := make([]models.CandidateResult, len(a.results))
	copy(candidates, a.results)

	return models.ReportResponse{
		BatchID:     a.batchID,
		JobTitle:    a.requirement.Title,
		Requirement: a.requirement,
		Candidates:  candidates,
		Timestamp:   time.Now().Format(time.RFC3339),
	}, nil
}

// GetResults returns a copy of the current results.
func (a *ScreeningAgent) GetResults() []models.CandidateResult {
	a.mu.RLock()
	defer a.mu.RUnlock()

	results := make([]models.CandidateResult, len(a.results))
	copy(results, a.results)
	return results
}

// GetRequirement returns the current parsed job requirement.
func (a *ScreeningAgent) GetRequirement() models.ParsedJobRequirement {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.requirement
}
