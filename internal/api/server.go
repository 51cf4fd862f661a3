package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/talentsift/resume-screener/internal/agent"
	"github.com/talentsift/resume-screener/internal/export"
	"github.com/talentsift/resume-screener/internal/ingestion"
)

// maxUploadBytes caps a multipart screening request.
const maxUploadBytes = 32 << 20 // 32 MB

// Server handles HTTP requests.
type Server struct {
	agent      *agent.ScreeningAgent
	gmail      *ingestion.GmailHandler // nil when Gmail intake is not configured
	reportsDir string                  // empty disables on-disk report archiving
}

// NewServer creates a new API server. gmail may be nil; a non-empty
// reportsDir archives every batch report as an Excel workbook there.
func NewServer(a *agent.ScreeningAgent, gmail *ingestion.GmailHandler, reportsDir string) *Server {
	return &Server{
		agent:      a,
		gmail:      gmail,
		reportsDir: reportsDir,
	}
}

// Router returns the HTTP router.
func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /screen", s.handleScreen)
	mux.HandleFunc("GET /report", s.handleReport)
	mux.HandleFunc("GET /export", s.handleExport)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /", s.handleRoot)

	return s.loggingMiddleware(mux)
}

// handleRoot provides API information.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"service": "Resume Screener",
		"version": "1.0.0",
		"endpoints": map[string]string{
			"POST /screen": "Upload resumes (or fetch from Gmail) and screen against a job description",
			"GET /report":  "Get ranked screening results",
			"GET /export":  "Download the screening report as an Excel workbook",
			"GET /health":  "Health check",
		},
	})
}

// handleHealth provides a health check endpoint.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status": "healthy",
	})
}

// handleScreen ingests documents and runs the screening batch.
func (s *Server) handleScreen(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.respondError(w, http.StatusBadRequest, fmt.Sprintf("Failed to parse form: %v", err))
		return
	}

	method := r.FormValue("method")
	jobDescription := r.FormValue("job_description")

	if jobDescription == "" {
		s.respondError(w, http.StatusBadRequest, "job_description is required")
		return
	}

	switch method {
	case "", "upload":
		if err := s.handleUploadMethod(r); err != nil {
			s.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
	case "gmail":
		if s.gmail == nil {
			s.respondError(w, http.StatusBadRequest, "gmail intake is not configured")
			return
		}
		subject := r.FormValue("gmail_subject")
		if subject == "" {
			s.respondError(w, http.StatusBadRequest, "gmail_subject is required for gmail method")
			return
		}
		if err := s.agent.FileHandler.ClearUploads(); err != nil {
			s.respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		fetched, err := s.gmail.FetchAttachments(r.Context(), subject)
		if err != nil {
			s.respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		log.Printf("Fetched %d attachments from Gmail", fetched)
	default:
		s.respondError(w, http.StatusBadRequest, "method must be 'upload' or 'gmail'")
		return
	}

	if err := s.agent.ScreenUploads(r.Context(), jobDescription); err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.archiveReport()

	s.respondJSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": "Documents screened successfully",
	})
}

// handleUploadMethod saves uploaded files into the uploads directory.
func (s *Server) handleUploadMethod(r *http.Request) error {
	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		return fmt.Errorf("no files uploaded")
	}

	fileHandler := s.agent.FileHandler

	for _, fileHeader := range files {
		if !ingestion.SupportedExt(fileHeader.Filename) {
			log.Printf("Skipping unsupported file type: %s", fileHeader.Filename)
			continue
		}

		file, err := fileHeader.Open()
		if err != nil {
			return fmt.Errorf("failed to open uploaded file: %w", err)
		}

		data, err := ingestion.ReadAll(file, maxUploadBytes)
		file.Close()
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", fileHeader.Filename, err)
		}

		if _, err := fileHandler.SaveUploadedFile(fileHeader.Filename, bytes.NewReader(data)); err != nil {
			return fmt.Errorf("failed to save file %s: %w", fileHeader.Filename, err)
		}
		log.Printf("Saved file: %s", fileHeader.Filename)
	}

	return nil
}

// archiveReport writes the current batch report to the reports
// directory. Archiving failures are logged, never surfaced: the report
// is still available over HTTP.
func (s *Server) archiveReport() {
	if s.reportsDir == "" {
		return
	}

	report, err := s.agent.GetReport()
	if err != nil {
		return
	}

	if err := os.MkdirAll(s.reportsDir, 0755); err != nil {
		log.Printf("Failed to create reports directory: %v", err)
		return
	}

	path := filepath.Join(s.reportsDir, "screening-"+report.BatchID)
	if err := export.ExportToExcel(report, path); err != nil {
		log.Printf("Failed to archive report: %v", err)
		return
	}
	log.Printf("Archived report: %s.xlsx", path)
}

// handleReport returns the screening report.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	report, err := s.agent.GetReport()
	if err != nil {
		s.respondError(w, http.StatusNotFound, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, report)
}

// handleExport streams the report as an Excel workbook.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	report, err := s.agent.GetReport()
	if err != nil {
		s.respondError(w, http.StatusNotFound, err.Error())
		return
	}

	data, err := export.WriteExcel(report)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=screening-%s.xlsx", report.BatchID))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		log.Printf("Failed to write Excel response: %v", err)
	}
}

// respondJSON sends a JSON response.
func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Failed to encode JSON response: %v", err)
	}
}

// respondError sends an error response.
func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{
		"error": message,
	})
}

// loggingMiddleware logs HTTP requests.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Printf("%s %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
	})
}
