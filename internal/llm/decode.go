package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/talentsift/resume-screener/internal/models"
)

// DecodeExtraction parses a model response into an OracleExtraction
// using relaxed rules: markdown code fences are stripped, the JSON
// object is located inside any surrounding prose, one level of array
// nesting is flattened, and list fields given as a single delimited
// string are split on commas, semicolons, pipes and newlines.
func DecodeExtraction(raw string) (*models.OracleExtraction, error) {
	jsonStr := extractJSONObject(stripCodeFences(raw))
	if jsonStr == "" {
		return nil, fmt.Errorf("no JSON object found in response")
	}

	var fields map[string]any
	if err := json.Unmarshal([]byte(jsonStr), &fields); err != nil {
		return nil, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}

	return &models.OracleExtraction{
		Name:             stringField(fields, "name"),
		Email:            stringField(fields, "email"),
		Phone:            stringField(fields, "phone"),
		Title:            stringField(fields, "title"),
		Skills:           listField(fields, "skills"),
		Experience:       stringField(fields, "experience"),
		Education:        stringField(fields, "education"),
		Responsibilities: listField(fields, "responsibilities"),
	}, nil
}

// stripCodeFences removes a ```json ... ``` wrapper if present.
func stripCodeFences(s string) string {
	clean := strings.TrimSpace(s)
	if strings.HasPrefix(clean, "```json") {
		clean = strings.TrimPrefix(clean, "```json")
	} else if strings.HasPrefix(clean, "```") {
		clean = strings.TrimPrefix(clean, "```")
	}
	clean = strings.TrimSuffix(strings.TrimSpace(clean), "```")
	return strings.TrimSpace(clean)
}

// extractJSONObject returns the outermost {...} span, tolerating prose
// around it.
func extractJSONObject(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end <= start {
		return ""
	}
	return s[start : end+1]
}

// stringField coerces a field to a string. Numbers are formatted
// without a decimal point when integral, since models emit
// "experience": 5 as often as "5".
func stringField(fields map[string]any, key string) string {
	switch v := fields[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%v", v)
	default:
		return ""
	}
}

// listField coerces a field to a flat string list. Accepts a plain
// array, an array nested one level ([[...]]), or a single delimited
// string.
func listField(fields map[string]any, key string) []string {
	var out []string

	appendValue := func(v string) {
		v = strings.TrimSpace(v)
		if v != "" {
			out = append(out, v)
		}
	}

	var walk func(v any, depth int)
	walk = func(v any, depth int) {
		switch t := v.(type) {
		case string:
			for _, piece := range splitDelimited(t) {
				appendValue(piece)
			}
		case float64:
			appendValue(stringField(map[string]any{"v": t}, "v"))
		case []any:
			if depth > 1 {
				return
			}
			for _, item := range t {
				walk(item, depth+1)
			}
		}
	}
	walk(fields[key], 0)

	return out
}

func splitDelimited(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';' || r == '|' || r == '\n'
	})
}
