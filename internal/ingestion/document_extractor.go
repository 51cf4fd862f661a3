package ingestion

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

const (
	// BinarySampleSize is the number of bytes sampled for binary
	// detection.
	BinarySampleSize = 1000
	// BinaryThreshold is the proportion of non-printable characters
	// that indicates binary data.
	BinaryThreshold = 0.3
)

// Decoder failure modes. Callers distinguish these from "empty but
// valid" text with errors.Is.
var (
	ErrUnsupportedFormat = errors.New("unsupported document format")
	ErrCorruptDocument   = errors.New("document could not be decoded")
)

// ExtractText decodes PDF, DOCX or TXT bytes into plain text. The
// returned text may legitimately be empty; decode failures come back
// as errors wrapping ErrUnsupportedFormat or ErrCorruptDocument.
func ExtractText(filename string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".txt":
		if IsBinaryData(string(data)) {
			return "", fmt.Errorf("%w: txt file contains binary data", ErrCorruptDocument)
		}
		return string(data), nil
	case ".pdf":
		return extractPDF(data)
	case ".docx":
		return extractDOCX(data)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
}

func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: pdf: %v", ErrCorruptDocument, err)
	}

	var sb strings.Builder
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			// One unreadable page does not invalidate the document.
			continue
		}
		sb.WriteString(content)
		sb.WriteString("\n")
	}

	text := sb.String()
	if strings.TrimSpace(text) == "" && reader.NumPage() > 0 {
		// Pages existed but yielded nothing: scanned images or a
		// certificate-only PDF.
		return "", fmt.Errorf("%w: pdf contains no extractable text", ErrCorruptDocument)
	}

	return text, nil
}

func extractDOCX(data []byte) (string, error) {
	r, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: docx: %v", ErrCorruptDocument, err)
	}
	defer r.Close()

	content := r.Editable().GetContent()
	// The raw document.xml content still carries WordprocessingML
	// tags; paragraph closings become newlines, everything else goes.
	content = strings.ReplaceAll(content, "</w:p>", "\n")
	content = stripXMLTags(content)

	return content, nil
}

func stripXMLTags(s string) string {
	var sb strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// ReadAll buffers a document stream, guarding against unbounded input.
func ReadAll(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("document exceeds %d byte limit", limit)
	}
	return data, nil
}

// IsBinaryData checks if content appears to be binary (PDF/ZIP
// markers, or a high proportion of non-printable bytes). Used to catch
// .txt uploads that are really renamed PDFs.
func IsBinaryData(content string) bool {
	if len(content) == 0 {
		return false
	}

	if strings.HasPrefix(content, "%PDF-") {
		return true
	}
	if len(content) >= 2 && content[:2] == "PK" {
		return true
	}

	sampleSize := min(BinarySampleSize, len(content))
	nonPrintable := 0
	for i := 0; i < sampleSize; i++ {
		ch := content[i]
		if ch < 32 && ch != '\n' && ch != '\r' && ch != '\t' {
			nonPrintable++
		}
	}

	return float64(nonPrintable)/float64(sampleSize) > BinaryThreshold
}
