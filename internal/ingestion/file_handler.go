package ingestion

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// DocumentFile is one raw document picked up from the uploads
// directory, not yet decoded.
type DocumentFile struct {
	Name string // original filename
	Path string
	Data []byte
}

// FileHandler manages the uploads directory for resume and job
// description intake.
type FileHandler struct {
	uploadsDir string
}

// NewFileHandler creates a new file handler.
func NewFileHandler(uploadsDir string) *FileHandler {
	return &FileHandler{
		uploadsDir: uploadsDir,
	}
}

// SupportedExt reports whether a filename has a document extension the
// decoder can handle.
func SupportedExt(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf", ".docx", ".txt":
		return true
	}
	return false
}

// SaveUploadedFile saves an uploaded file to the uploads directory.
func (fh *FileHandler) SaveUploadedFile(filename string, content io.Reader) (string, error) {
	if err := os.MkdirAll(fh.uploadsDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create uploads directory: %w", err)
	}

	// Strip any client-supplied path components.
	filename = filepath.Base(filename)

	filePath := filepath.Join(fh.uploadsDir, filename)
	file, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, content); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return filePath, nil
}

// LoadDocuments returns every supported document in the uploads
// directory in filename order. Files are read whole; decoding is the
// pipeline's job so that one corrupt file cannot fail the load.
func (fh *FileHandler) LoadDocuments() ([]DocumentFile, error) {
	entries, err := os.ReadDir(fh.uploadsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []DocumentFile{}, nil
		}
		return nil, fmt.Errorf("failed to read uploads directory: %w", err)
	}

	documents := make([]DocumentFile, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !SupportedExt(entry.Name()) {
			continue
		}

		path := filepath.Join(fh.uploadsDir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read file %s: %w", entry.Name(), err)
		}

		documents = append(documents, DocumentFile{
			Name: entry.Name(),
			Path: path,
			Data: data,
		})
	}

	return documents, nil
}

// ClearUploads removes all files from the uploads directory.
func (fh *FileHandler) ClearUploads() error {
	if err := os.RemoveAll(fh.uploadsDir); err != nil {
		return fmt.Errorf("failed to clear uploads directory: %w", err)
	}
	return os.MkdirAll(fh.uploadsDir, 0755)
}
