package contracts

// SearchMode selects how project directories are discovered. Chosen once per
// run and immutable for the run's duration.
type SearchMode int

const (
	// ExplicitDirectory asks the user for exactly one root directory.
	ExplicitDirectory SearchMode = iota
	// WholeFilesystemScan checks well-known install locations and then
	// searches every mounted volume for matching files.
	WholeFilesystemScan
)

// ILocator produces the ordered, deduplicated set of project directories to
// aggregate from.
type ILocator interface {
	Locate(mode SearchMode) ([]string, error)
}
