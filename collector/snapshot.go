package collector

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/uefn-tools/versedb/collector/models"
	"github.com/uefn-tools/versedb/constants/lipgloss"
	"github.com/zeebo/xxh3"
)

// SnapshotPath returns the snapshot location for a given database path.
func SnapshotPath(databasePath string) string {
	return databasePath + ".snapshot.json"
}

// loadPreviousSnapshot reads the snapshot left by the previous run, if any.
// A missing or corrupt snapshot just means there is nothing to diff against.
func (c *Collector) loadPreviousSnapshot() *models.ProjectSnapshot {
	if !c.EnableSnapshot {
		return nil
	}

	content, err := os.ReadFile(SnapshotPath(c.DatabasePath))
	if err != nil {
		return nil
	}

	var snapshot models.ProjectSnapshot
	if err := json.Unmarshal(content, &snapshot); err != nil {
		return nil
	}
	return &snapshot
}

// recordFile adds one aggregated file to the snapshot being built.
func (c *Collector) recordFile(snapshot *models.ProjectSnapshot, file models.CandidateFile, content []byte) {
	entry := models.FileSnapshot{
		Hash: fmt.Sprintf("%016x", xxh3.Hash(content)),
		Size: int64(len(content)),
	}
	if info, err := os.Stat(file.Path); err == nil {
		entry.ModTime = info.ModTime()
	}
	snapshot.Files[file.Path] = entry
}

// finishSnapshot diffs the new snapshot against the previous run and writes
// it next to the database. The diff is informational only; it never affects
// what was aggregated.
func (c *Collector) finishSnapshot(snapshot *models.ProjectSnapshot, previous *models.ProjectSnapshot, summary *models.RunSummary) {
	if previous != nil {
		for path, entry := range snapshot.Files {
			old, existed := previous.Files[path]
			switch {
			case !existed:
				summary.FilesAdded++
			case old.Hash != entry.Hash:
				summary.FilesChanged++
			}
		}
		for path := range previous.Files {
			if _, still := snapshot.Files[path]; !still {
				summary.FilesRemoved++
			}
		}
	}

	content, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		fmt.Println(lipgloss.Yellow.Render(fmt.Sprintf("Warning: could not encode snapshot: %v", err)))
		return
	}

	if err := os.WriteFile(SnapshotPath(c.DatabasePath), content, 0644); err != nil {
		fmt.Println(lipgloss.Yellow.Render(fmt.Sprintf("Warning: could not write snapshot: %v", err)))
	}
}
