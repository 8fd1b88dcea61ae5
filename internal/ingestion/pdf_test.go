package ingestion

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTextMissingFile(t *testing.T) {
	_, err := ExtractText("/nonexistent/resume.pdf")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open pdf")
}

func TestExtractTextNotAPDF(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "resume.pdf")
	require.NoError(t, os.WriteFile(tmpFile, []byte("plain text, not a pdf"), 0644))

	_, err := ExtractText(tmpFile)
	assert.Error(t, err)
}
