// Package parser runs the per-document extraction pipeline: decode,
// normalize, run the local heuristics, then merge in the optional
// extraction oracle's output. Heuristic misses are empty fields, never
// errors; only an undecodable document fails.
package parser

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/talentsift/resume-screener/internal/extract"
	"github.com/talentsift/resume-screener/internal/ingestion"
	"github.com/talentsift/resume-screener/internal/models"
)

// DefaultOracleTimeout bounds a single oracle call.
const DefaultOracleTimeout = 30 * time.Second

// Oracle is the optional external extraction service. Implementations
// are treated as best-effort and untrusted; any error falls back to
// heuristics alone.
type Oracle interface {
	Extract(ctx context.Context, text string, kind models.DocumentKind) (*models.OracleExtraction, error)
}

// Parser is the document parsing pipeline. The zero value is unusable;
// use New.
type Parser struct {
	oracle        Oracle // nil disables oracle enrichment
	oracleTimeout time.Duration
}

// New creates a parser. A nil oracle is valid and means the pipeline
// runs on local heuristics only.
func New(oracle Oracle, oracleTimeout time.Duration) *Parser {
	if oracleTimeout <= 0 {
		oracleTimeout = DefaultOracleTimeout
	}
	return &Parser{
		oracle:        oracle,
		oracleTimeout: oracleTimeout,
	}
}

// ParseResume decodes and parses one resume document. Decode failures
// are returned as errors; everything past decoding degrades gracefully
// down the fallback chain (heuristics, aggressive skill pass, oracle,
// filename-derived name).
func (p *Parser) ParseResume(ctx context.Context, doc ingestion.DocumentFile) (models.ParsedResume, error) {
	text, err := ingestion.ExtractText(doc.Name, doc.Data)
	if err != nil {
		return models.ParsedResume{}, fmt.Errorf("decode %s: %w", doc.Name, err)
	}

	resume := p.ParseResumeText(ctx, text, doc.Name)
	resume.SourcePath = doc.Path
	return resume, nil
}

// ParseResumeText parses already-decoded resume text. filename feeds
// the name fallback and may be empty.
func (p *Parser) ParseResumeText(ctx context.Context, text, filename string) models.ParsedResume {
	text = extract.Normalize(text)

	resume := models.ParsedResume{
		Name:       extract.ExtractName(text),
		Skills:     extract.ExtractSkills(text, extract.SkillOptions{}),
		Experience: extract.EstimateExperienceYears(text),
		Education:  extract.ExtractEducation(text),
	}

	if emails := extract.ExtractEmails(text); len(emails) > 0 {
		resume.Email = emails[0]
	}
	if phones := extract.ExtractPhones(text); len(phones) > 0 {
		resume.Phone = phones[0]
	}

	// Fallback: the base pass found no skills, so trade precision for
	// recall before asking the oracle.
	if len(resume.Skills) == 0 {
		resume.Skills = extract.ExtractSkills(text, extract.SkillOptions{Aggressive: true})
	}

	if oracle := p.queryOracle(ctx, text, models.KindResume); oracle != nil {
		mergeResumeOracle(&resume, oracle)
	}

	// Last fallback for the name: the filename.
	if resume.Name == "" && filename != "" {
		resume.Name = extract.NameFromFilename(filename)
	}

	resume.Incomplete = resume.Name == "" && resume.Email == "" && resume.Phone == "" &&
		len(resume.Skills) == 0 && resume.Experience == "" && resume.Education == ""

	return resume
}

// ParseJobRequirement decodes and parses one job description.
func (p *Parser) ParseJobRequirement(ctx context.Context, doc ingestion.DocumentFile) (models.ParsedJobRequirement, error) {
	text, err := ingestion.ExtractText(doc.Name, doc.Data)
	if err != nil {
		return models.ParsedJobRequirement{}, fmt.Errorf("decode %s: %w", doc.Name, err)
	}
	return p.ParseJobRequirementText(ctx, text), nil
}

// ParseJobRequirementText parses already-decoded job description text.
// Requirement documents always get the aggressive skill pass: they
// phrase skills as prose ("experience in X") more often than resumes
// do.
func (p *Parser) ParseJobRequirementText(ctx context.Context, text string) models.ParsedJobRequirement {
	text = extract.Normalize(text)

	req := models.ParsedJobRequirement{
		Title:            extract.ExtractTitle(text),
		Skills:           extract.ExtractSkills(text, extract.SkillOptions{Aggressive: true}),
		Experience:       extract.EstimateExperienceYears(text),
		Responsibilities: extract.ExtractResponsibilities(text),
	}

	if oracle := p.queryOracle(ctx, text, models.KindJobRequirement); oracle != nil {
		mergeRequirementOracle(&req, oracle)
	}

	return req
}

// queryOracle runs the oracle with a timeout. Failure is degradation,
// not error: the pipeline logs and carries on with local results.
func (p *Parser) queryOracle(ctx context.Context, text string, kind models.DocumentKind) *models.OracleExtraction {
	if p.oracle == nil {
		return nil
	}

	octx, cancel := context.WithTimeout(ctx, p.oracleTimeout)
	defer cancel()

	extraction, err := p.oracle.Extract(octx, text, kind)
	if err != nil {
		log.Printf("Oracle extraction degraded to heuristics only (%s): %v", kind, err)
		return nil
	}
	return extraction
}

// mergeResumeOracle folds oracle output into a locally extracted
// resume. Local contact fields always win; the oracle fills gaps and
// contributes additional skills.
func mergeResumeOracle(resume *models.ParsedResume, oracle *models.OracleExtraction) {
	if resume.Name == "" {
		resume.Name = oracle.Name
	}
	if resume.Email == "" && extract.IsValidEmail(strings.ToLower(oracle.Email)) {
		resume.Email = strings.ToLower(oracle.Email)
	}
	if resume.Phone == "" {
		// Oracle phone numbers go through the same clean/validate
		// pipeline as local candidates.
		if phones := extract.ExtractPhones(oracle.Phone); len(phones) > 0 {
			resume.Phone = phones[0]
		}
	}
	if resume.Experience == "" {
		resume.Experience = oracle.Experience
	}
	if resume.Education == "" {
		resume.Education = oracle.Education
	}
	resume.Skills = unionSkills(resume.Skills, oracle.Skills)
}

// mergeRequirementOracle fills requirement gaps and unions skills.
func mergeRequirementOracle(req *models.ParsedJobRequirement, oracle *models.OracleExtraction) {
	if req.Title == "" {
		req.Title = oracle.Title
	}
	if req.Experience == "" {
		req.Experience = oracle.Experience
	}
	if len(req.Responsibilities) == 0 {
		req.Responsibilities = oracle.Responsibilities
	}
	req.Skills = unionSkills(req.Skills, oracle.Skills)
}

// unionSkills appends additions not already present, case-insensitive,
// preserving the order and casing of first occurrence.
func unionSkills(base, additions []string) []string {
	seen := make(map[string]bool, len(base))
	for _, s := range base {
		seen[strings.ToLower(s)] = true
	}
	for _, s := range additions {
		s = strings.TrimSpace(s)
		key := strings.ToLower(s)
		if s == "" || seen[key] {
			continue
		}
		seen[key] = true
		base = append(base, s)
	}
	return base
}
