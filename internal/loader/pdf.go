package loader

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hyperjump/kotae/internal/models"
	"github.com/ledongthuc/pdf"
)

// LoadPDF extracts the plain text of a PDF file into a single document.
// The document ID is the file name without extension; the source is the path.
func LoadPDF(path string) (models.Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return models.Document{}, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return models.Document{}, fmt.Errorf("read pdf: %w", err)
	}
	r, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return models.Document{}, fmt.Errorf("open pdf: %w", err)
	}
	var buf bytes.Buffer
	numPages := r.NumPage()
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return models.Document{}, fmt.Errorf("extract page %d: %w", i, err)
		}
		buf.WriteString(text)
		if i < numPages {
			buf.WriteByte('\n')
		}
	}
	return models.Document{
		ID:      docIDFromPath(path),
		Source:  path,
		Content: buf.String(),
	}, nil
}

// LoadFile reads a plain text or markdown file into a single document.
func LoadFile(path string) (models.Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return models.Document{}, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return models.Document{}, fmt.Errorf("read file: %w", err)
	}
	return models.Document{
		ID:      docIDFromPath(path),
		Source:  path,
		Content: string(content),
	}, nil
}

func docIDFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
