package llm

import (
	"context"
	"fmt"
	"os"
	"strings"

	"cloud.google.com/go/vertexai/genai"

	"github.com/talentsift/resume-screener/internal/models"
)

// VertexAIClient wraps the Vertex AI Gemini API as the extraction
// oracle. The oracle is best-effort and untrusted: the pipeline merges
// its output with local heuristics and never lets it override locally
// extracted contact fields.
type VertexAIClient struct {
	client    *genai.Client
	model     *genai.GenerativeModel
	projectID string
	location  string
}

// NewVertexAIClient creates a new Vertex AI oracle client.
func NewVertexAIClient() (*VertexAIClient, error) {
	projectID := os.Getenv("GOOGLE_CLOUD_PROJECT")
	if projectID == "" {
		return nil, fmt.Errorf("GOOGLE_CLOUD_PROJECT environment variable not set")
	}

	location := os.Getenv("GOOGLE_CLOUD_LOCATION")
	if location == "" {
		location = "us-central1" // Default location
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, projectID, location)
	if err != nil {
		return nil, fmt.Errorf("failed to create Vertex AI client: %w", err)
	}

	model := client.GenerativeModel("gemini-1.5-flash")

	// Low temperature keeps extraction output stable across runs.
	model.SetTemperature(0.1)
	model.SetTopK(40)
	model.SetTopP(0.95)
	model.SetMaxOutputTokens(2048)

	return &VertexAIClient{
		client:    client,
		model:     model,
		projectID: projectID,
		location:  location,
	}, nil
}

// Extract asks the model for a structured extraction of text. The
// response passes through the relaxed decoder, so nested arrays and
// comma-joined skill strings are tolerated.
func (v *VertexAIClient) Extract(ctx context.Context, text string, kind models.DocumentKind) (*models.OracleExtraction, error) {
	prompt := buildExtractionPrompt(text, kind)

	resp, err := v.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("no response candidates returned")
	}

	var raw string
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			raw += string(t)
		}
	}

	extraction, err := DecodeExtraction(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to decode oracle response: %w", err)
	}

	return extraction, nil
}

// Close closes the Vertex AI client.
func (v *VertexAIClient) Close() error {
	return v.client.Close()
}

// buildExtractionPrompt creates the structured-extraction prompt for
// the model.
func buildExtractionPrompt(text string, kind models.DocumentKind) string {
	var sb strings.Builder

	sb.WriteString("You are a precise information extraction system. Extract structured fields from the document below.\n\n")

	if kind == models.KindJobRequirement {
		sb.WriteString("The document is a JOB DESCRIPTION. Return ONLY a JSON object in this exact shape:\n")
		sb.WriteString("{\n")
		sb.WriteString(`  "title": "<job title>",` + "\n")
		sb.WriteString(`  "skills": ["<skill>", "..."],` + "\n")
		sb.WriteString(`  "experience": "<required years as an integer, or empty string>",` + "\n")
		sb.WriteString(`  "responsibilities": ["<responsibility>", "..."]` + "\n")
		sb.WriteString("}\n\n")
	} else {
		sb.WriteString("The document is a RESUME. Return ONLY a JSON object in this exact shape:\n")
		sb.WriteString("{\n")
		sb.WriteString(`  "name": "<candidate name>",` + "\n")
		sb.WriteString(`  "email": "<email address>",` + "\n")
		sb.WriteString(`  "phone": "<phone number>",` + "\n")
		sb.WriteString(`  "skills": ["<skill>", "..."],` + "\n")
		sb.WriteString(`  "experience": "<total years as an integer, or empty string>",` + "\n")
		sb.WriteString(`  "education": "<highest education>"` + "\n")
		sb.WriteString("}\n\n")
	}

	sb.WriteString("Use empty strings or empty arrays for anything not present. Do not invent values.\n")
	sb.WriteString("Return ONLY the JSON object, no additional text.\n\n")

	sb.WriteString("## DOCUMENT\n")
	sb.WriteString(text)

	return sb.String()
}
