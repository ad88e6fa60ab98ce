package resume

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribe_PlainTextFileIsAccepted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello resume"), 0o644))

	f, err := Describe(path)
	require.NoError(t, err)

	assert.Equal(t, "notes.txt", f.Name)
	assert.Equal(t, int64(len("hello resume")), f.Size)
	assert.Contains(t, f.MIME, "text/plain")
	assert.Equal(t, 0, f.Pages)
}

func TestDescribe_BrokenPDFHasNoPages(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4\n% truncated"), 0o644))

	f, err := Describe(path)
	require.NoError(t, err)

	assert.Equal(t, "resume.pdf", f.Name)
	assert.Equal(t, "application/pdf", f.MIME)
	assert.Equal(t, 0, f.Pages)
	assert.True(t, filepath.IsAbs(f.Path))
}

func TestDescribe_MissingFile(t *testing.T) {
	_, err := Describe(filepath.Join(t.TempDir(), "nope.pdf"))
	assert.Error(t, err)
}

func TestDescribe_Directory(t *testing.T) {
	_, err := Describe(t.TempDir())
	assert.Error(t, err)
}
