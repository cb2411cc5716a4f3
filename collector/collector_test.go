package collector

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uefn-tools/versedb/appender"
	appender_contracts "github.com/uefn-tools/versedb/appender/contracts"
)

func writeFile(t *testing.T, path string, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func newTestCollector(dbPath string, pattern string) *Collector {
	return &Collector{
		DatabasePath: dbPath,
		Pattern:      pattern,
		Appender:     appender.NewResilientAppender(appender.NewFileAppender(dbPath), 3, time.Millisecond),
	}
}

func TestCollect_ConcreteScenario(t *testing.T) {
	// Tree: a/x.ext, a/b/y.ext, c/z.other with pattern *.ext must yield
	// exactly two segments and none for z.other.
	tempDir := t.TempDir()
	tree := filepath.Join(tempDir, "tree")
	writeFile(t, filepath.Join(tree, "a", "x.ext"), "x content")
	writeFile(t, filepath.Join(tree, "a", "b", "y.ext"), "y content")
	writeFile(t, filepath.Join(tree, "c", "z.other"), "z content")

	dbPath := filepath.Join(tempDir, "verse-code-database.md")
	c := newTestCollector(dbPath, "*.ext")

	summary, err := c.Collect(context.Background(), []string{tree})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Projects)
	assert.Equal(t, 2, summary.FilesAggregated)

	content, err := os.ReadFile(dbPath)
	require.NoError(t, err)
	output := string(content)

	assert.Equal(t, 2, strings.Count(output, "# File: "))
	assert.Contains(t, output, "x content")
	assert.Contains(t, output, "y content")
	assert.Contains(t, output, "# End of file: x.ext")
	assert.Contains(t, output, "# End of file: y.ext")
	assert.NotContains(t, output, "z content")
}

func TestCollect_HeaderFormat(t *testing.T) {
	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "db.md")

	c := newTestCollector(dbPath, "*.verse")
	c.now = func() time.Time { return time.Date(2026, 8, 25, 14, 30, 0, 0, time.UTC) }

	_, err := c.Collect(context.Background(), nil)
	require.NoError(t, err)

	content, err := os.ReadFile(dbPath)
	require.NoError(t, err)
	assert.Equal(t,
		"# Verse Code Database - Generated on 2026-08-25 14:30:00\n\n*This file is automatically generated. Do not edit manually.*\n\n",
		string(content))
}

func TestCollect_IdempotentReset(t *testing.T) {
	tempDir := t.TempDir()
	project := filepath.Join(tempDir, "project")
	writeFile(t, filepath.Join(project, "a.verse"), "a")

	dbPath := filepath.Join(tempDir, "db.md")
	c := newTestCollector(dbPath, "*.verse")

	_, err := c.Collect(context.Background(), []string{project})
	require.NoError(t, err)
	_, err = c.Collect(context.Background(), []string{project})
	require.NoError(t, err)

	content, err := os.ReadFile(dbPath)
	require.NoError(t, err)
	output := string(content)

	// Only the second run's header survives the truncation.
	assert.Equal(t, 1, strings.Count(output, "# Verse Code Database"))
	assert.Equal(t, 1, strings.Count(output, "*This file is automatically generated. Do not edit manually.*"))
	assert.Equal(t, 1, strings.Count(output, "# File: "))
}

func TestCollect_SelfExclusion(t *testing.T) {
	// The database lives inside the project and matches the pattern; it must
	// never appear as a segment inside itself.
	tempDir := t.TempDir()
	writeFile(t, filepath.Join(tempDir, "notes.md"), "notes")

	dbPath := filepath.Join(tempDir, "verse-code-database.md")
	c := newTestCollector(dbPath, "*.md")

	_, err := c.Collect(context.Background(), []string{tempDir})
	require.NoError(t, err)

	content, err := os.ReadFile(dbPath)
	require.NoError(t, err)
	output := string(content)

	assert.NotContains(t, output, "# File: "+dbPath)
	assert.Contains(t, output, "# End of file: notes.md")
}

func TestCollect_TraversalIsolation(t *testing.T) {
	// An unreadable project must not stop files from sibling projects.
	tempDir := t.TempDir()
	good := filepath.Join(tempDir, "good")
	writeFile(t, filepath.Join(good, "ok.verse"), "ok content")

	dbPath := filepath.Join(tempDir, "db.md")
	c := newTestCollector(dbPath, "*.verse")

	summary, err := c.Collect(context.Background(), []string{
		filepath.Join(tempDir, "missing"),
		good,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Projects)

	content, err := os.ReadFile(dbPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "ok content")
}

// lockedOnFile delegates to a real appender but reports a permanent lock for
// any unit belonging to one poisoned file.
type lockedOnFile struct {
	inner  appender_contracts.IAppender
	poison string
}

func (l *lockedOnFile) AppendLine(text string) error {
	if strings.Contains(text, l.poison) {
		return appender_contracts.ErrLocked
	}
	return l.inner.AppendLine(text)
}

func TestCollect_RetryExhaustionSkipsOnlyThatFile(t *testing.T) {
	tempDir := t.TempDir()
	project := filepath.Join(tempDir, "project")
	writeFile(t, filepath.Join(project, "first.verse"), "first content")
	writeFile(t, filepath.Join(project, "second.verse"), "second content")

	dbPath := filepath.Join(tempDir, "db.md")
	locked := &lockedOnFile{
		inner:  appender.NewFileAppender(dbPath),
		poison: "first",
	}

	c := &Collector{
		DatabasePath: dbPath,
		Pattern:      "*.verse",
		Appender:     appender.NewResilientAppender(locked, 3, time.Millisecond),
	}

	summary, err := c.Collect(context.Background(), []string{project})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.FilesAggregated)
	assert.Equal(t, 1, summary.FilesSkipped)

	content, err := os.ReadFile(dbPath)
	require.NoError(t, err)
	output := string(content)

	assert.NotContains(t, output, "first content")
	assert.Contains(t, output, "second content")
	assert.Contains(t, output, "# End of file: second.verse")
}

func TestCollect_FatalWhenResetFails(t *testing.T) {
	// Pointing the database at a directory makes the truncation fail.
	tempDir := t.TempDir()
	c := newTestCollector(tempDir, "*.verse")

	_, err := c.Collect(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to reset database")
}

func TestCollect_ZeroProjectsProducesValidArtifact(t *testing.T) {
	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "db.md")
	c := newTestCollector(dbPath, "*.verse")

	summary, err := c.Collect(context.Background(), []string{})
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Projects)

	content, err := os.ReadFile(dbPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "# Verse Code Database")
}

func TestCollect_ContentVerbatimBetweenMarkers(t *testing.T) {
	tempDir := t.TempDir()
	project := filepath.Join(tempDir, "project")
	source := "using { /Fortnite.com/Devices }\n\nhello_device := class(creative_device):\n"
	sourcePath := filepath.Join(project, "hello.verse")
	writeFile(t, sourcePath, source)

	dbPath := filepath.Join(tempDir, "db.md")
	c := newTestCollector(dbPath, "*.verse")

	_, err := c.Collect(context.Background(), []string{project})
	require.NoError(t, err)

	content, err := os.ReadFile(dbPath)
	require.NoError(t, err)
	output := string(content)

	header := "# File: " + sourcePath + "\n"
	footer := "# End of file: hello.verse"

	start := strings.Index(output, header)
	end := strings.Index(output, footer)
	require.GreaterOrEqual(t, start, 0)
	require.Greater(t, end, start)

	segment := output[start+len(header) : end]
	assert.Contains(t, segment, source)
	// The file appears exactly once.
	assert.Equal(t, 1, strings.Count(output, header))
}
