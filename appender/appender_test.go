package appender

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileAppender_CreatesAndAppends(t *testing.T) {
	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "verse-code-database.md")

	app := NewFileAppender(dbPath)

	require.NoError(t, app.AppendLine("# File: /projects/a.verse"))
	require.NoError(t, app.AppendLine("hello := \"world\""))

	content, err := os.ReadFile(dbPath)
	require.NoError(t, err)
	assert.Equal(t, "# File: /projects/a.verse\nhello := \"world\"\n", string(content))
}

func TestFileAppender_PreservesExistingNewline(t *testing.T) {
	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "db.md")

	app := NewFileAppender(dbPath)
	require.NoError(t, app.AppendLine("already terminated\n"))

	content, err := os.ReadFile(dbPath)
	require.NoError(t, err)
	assert.Equal(t, "already terminated\n", string(content))
}

func TestFileAppender_AppendsToExistingContent(t *testing.T) {
	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "db.md")
	require.NoError(t, os.WriteFile(dbPath, []byte("header\n"), 0644))

	app := NewFileAppender(dbPath)
	require.NoError(t, app.AppendLine("appended"))

	content, err := os.ReadFile(dbPath)
	require.NoError(t, err)
	assert.Equal(t, "header\nappended\n", string(content))
}
