package models

// DocumentKind tags a document for the parsing pipeline and the
// extraction oracle.
type DocumentKind string

const (
	KindResume         DocumentKind = "resume"
	KindJobRequirement DocumentKind = "job_requirement"
)

// ParsedResume is the structured record extracted from a single resume.
// Empty fields mean the corresponding heuristic found nothing; that is
// not an error.
type ParsedResume struct {
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Phone      string   `json:"phone"`
	Skills     []string `json:"skills"`
	Experience string   `json:"experience"` // integer year count as string, or empty
	Education  string   `json:"education"`
	SourcePath string   `json:"source_path,omitempty"`
	Incomplete bool     `json:"incomplete,omitempty"` // heuristics and oracle all came up empty
}

// ParsedJobRequirement is the structured record extracted from a job
// description.
type ParsedJobRequirement struct {
	Title            string   `json:"title"`
	Skills           []string `json:"skills"`
	Experience       string   `json:"experience"` // required years as string, or empty
	Responsibilities []string `json:"responsibilities"`
}

// SkillMatchResult is the outcome of matching a candidate skill set
// against a required skill set. Derived data: recomputed on demand,
// never cached across skill-set changes.
type SkillMatchResult struct {
	MatchedCount  int `json:"matched_count"`
	RequiredCount int `json:"required_count"`
	Percentage    int `json:"percentage"` // 0-100
}

// CandidateResult is one screened resume together with its match outcome.
type CandidateResult struct {
	Resume            ParsedResume     `json:"resume"`
	Match             SkillMatchResult `json:"match"`
	SkillVerdict      string           `json:"skill_verdict"`
	ExperienceVerdict string           `json:"experience_verdict"`
	Rank              int              `json:"rank"`
	Error             string           `json:"error,omitempty"` // decode failure for this document
}

// ReportResponse is the ranked screening report returned by the API.
type ReportResponse struct {
	BatchID     string               `json:"batch_id"`
	JobTitle    string               `json:"job_title"`
	Requirement ParsedJobRequirement `json:"requirement"`
	Candidates  []CandidateResult    `json:"candidates"`
	Timestamp   string               `json:"timestamp"`
}

// OracleExtraction is the best-effort structured result returned by the
// external extraction oracle. All fields are optional; the pipeline
// never trusts them over local contact extraction.
type OracleExtraction struct {
	Name             string   `json:"name"`
	Email            string   `json:"email"`
	Phone            string   `json:"phone"`
	Title            string   `json:"title"`
	Skills           []string `json:"skills"`
	Experience       string   `json:"experience"`
	Education        string   `json:"education"`
	Responsibilities []string `json:"responsibilities"`
}
