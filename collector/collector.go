package collector

import (
	"context"
	"fmt"
	"os"
	"time"

	appender_contracts "github.com/uefn-tools/versedb/appender/contracts"
	"github.com/uefn-tools/versedb/collector/contracts"
	"github.com/uefn-tools/versedb/collector/models"
	"github.com/uefn-tools/versedb/constants/lipgloss"
)

// Collector orchestrates one full aggregation run: reset the database, walk
// every located project, and append each matching file between its marker
// lines.
type Collector struct {
	DatabasePath   string
	Pattern        string
	Appender       appender_contracts.IAppender
	EnableSnapshot bool

	// now is injectable so tests can pin the generation timestamp.
	now func() time.Time
}

// NewCollector wires a collector against the given database path and
// appender. The appender is expected to already carry the retry policy.
func NewCollector(databasePath string, pattern string, app appender_contracts.IAppender, enableSnapshot bool) contracts.ICollector {
	return &Collector{
		DatabasePath:   databasePath,
		Pattern:        pattern,
		Appender:       app,
		EnableSnapshot: enableSnapshot,
		now:            time.Now,
	}
}

// Collect runs one aggregation pass. The only fatal error is a failed reset
// of the database file; everything after that degrades to per-project or
// per-file warnings.
func (c *Collector) Collect(ctx context.Context, projects []string) (*models.RunSummary, error) {
	previous := c.loadPreviousSnapshot()

	if err := c.reset(); err != nil {
		return nil, fmt.Errorf("failed to reset database %s: %w", c.DatabasePath, err)
	}

	summary := &models.RunSummary{}
	snapshot := &models.ProjectSnapshot{
		Timestamp: c.timestamp(),
		Files:     make(map[string]models.FileSnapshot),
	}

	for _, project := range projects {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		files, err := EnumerateFiles(project, c.Pattern, c.DatabasePath)
		if err != nil {
			fmt.Println(lipgloss.Yellow.Render(fmt.Sprintf("Warning: skipping project %s: %v", project, err)))
			continue
		}

		summary.Projects++

		for _, file := range files {
			if err := c.appendFile(file, snapshot); err != nil {
				fmt.Println(lipgloss.Yellow.Render(fmt.Sprintf("Warning: skipping file %s: %v", file.Path, err)))
				summary.FilesSkipped++
				continue
			}
			summary.FilesAggregated++
		}
	}

	if c.EnableSnapshot {
		c.finishSnapshot(snapshot, previous, summary)
	}

	return summary, nil
}

func (c *Collector) timestamp() time.Time {
	if c.now != nil {
		return c.now()
	}
	return time.Now()
}

// reset truncates the database and writes the generation header. This must
// fully succeed before any aggregation happens.
func (c *Collector) reset() error {
	header := fmt.Sprintf(
		"# Verse Code Database - Generated on %s\n\n*This file is automatically generated. Do not edit manually.*\n\n",
		c.timestamp().Format("2006-01-02 15:04:05"),
	)
	return os.WriteFile(c.DatabasePath, []byte(header), 0644)
}

// appendFile reads one candidate and appends its three units: the path
// header, the raw content, and the end-of-file footer. Failure of any unit
// skips the file as a whole.
func (c *Collector) appendFile(file models.CandidateFile, snapshot *models.ProjectSnapshot) error {
	content, err := os.ReadFile(file.Path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	if err := c.Appender.AppendLine("# File: " + file.Path); err != nil {
		return err
	}
	if err := c.Appender.AppendLine(string(content)); err != nil {
		return err
	}
	if err := c.Appender.AppendLine("\n# End of file: " + file.Name + "\n"); err != nil {
		return err
	}

	if c.EnableSnapshot {
		c.recordFile(snapshot, file, content)
	}

	return nil
}
