// Package ingestion provides document text extraction for resume uploads.
package ingestion

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"
)

// ExtractText extracts the plain text of a PDF file. It fails only on
// unreadable or corrupt input; an empty result is returned as-is and left to
// the caller to reject.
func ExtractText(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open pdf %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to extract text from %s: %w", path, err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", fmt.Errorf("failed to read extracted text from %s: %w", path, err)
	}

	return buf.String(), nil
}
