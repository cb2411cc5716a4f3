package models

import "time"

// CandidateFile is one discovered source file queued for aggregation.
type CandidateFile struct {
	// Path is the absolute location of the file.
	Path string
	// Name is the base file name, used in the end-of-file marker.
	Name string
}

// RunSummary reports what a single aggregation run did.
type RunSummary struct {
	Projects        int
	FilesAggregated int
	FilesSkipped    int

	// Snapshot diff against the previous run, when snapshots are enabled.
	FilesAdded   int
	FilesChanged int
	FilesRemoved int
}

// ProjectSnapshot records the state of every aggregated file after a run so
// the next run can report what changed.
type ProjectSnapshot struct {
	Timestamp time.Time               `json:"timestamp"`
	Files     map[string]FileSnapshot `json:"files"`
}

// FileSnapshot is the recorded state of a single aggregated file.
type FileSnapshot struct {
	ModTime time.Time `json:"mod_time"`
	Size    int64     `json:"size"`
	Hash    string    `json:"hash"`
}
