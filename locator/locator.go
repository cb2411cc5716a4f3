package locator

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/uefn-tools/versedb/constants/lipgloss"
	"github.com/uefn-tools/versedb/locator/contracts"
	"github.com/uefn-tools/versedb/utils"
	utils_contracts "github.com/uefn-tools/versedb/utils/contracts"
)

// ProjectLocator discovers the project directories a run will aggregate.
type ProjectLocator struct {
	Picker         utils_contracts.IDirectoryPicker
	WellKnownPaths []string
	Pattern        string

	// ListVolumes enumerates mounted filesystem roots. Injectable so the
	// whole-filesystem scan can be tested against temp directories.
	ListVolumes func() ([]string, error)
}

// NewProjectLocator wires a locator with the default volume lister.
func NewProjectLocator(picker utils_contracts.IDirectoryPicker, wellKnownPaths []string, pattern string) contracts.ILocator {
	return &ProjectLocator{
		Picker:         picker,
		WellKnownPaths: wellKnownPaths,
		Pattern:        pattern,
		ListVolumes:    listMountedVolumes,
	}
}

// Locate returns the ordered set of unique project directories for the given
// search mode. Order is discovery order; duplicates are suppressed by path
// equality.
func (l *ProjectLocator) Locate(mode contracts.SearchMode) ([]string, error) {
	switch mode {
	case contracts.ExplicitDirectory:
		return l.locateExplicit()
	case contracts.WholeFilesystemScan:
		return l.locateByScan()
	default:
		return nil, fmt.Errorf("unknown search mode: %d", mode)
	}
}

func (l *ProjectLocator) locateExplicit() ([]string, error) {
	dir, err := l.Picker.PickDirectory("Project directory to aggregate")
	if err != nil {
		return nil, fmt.Errorf("no project directory chosen: %w", err)
	}
	return []string{dir}, nil
}

func (l *ProjectLocator) locateByScan() ([]string, error) {
	var projects []string
	seen := make(map[string]bool)

	add := func(dir string) {
		if abs, err := filepath.Abs(dir); err == nil {
			dir = abs
		}
		if !seen[dir] {
			seen[dir] = true
			projects = append(projects, dir)
		}
	}

	// Well-known install locations first, keeping only those that exist.
	for _, path := range l.WellKnownPaths {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			add(path)
		}
	}

	volumes, err := l.ListVolumes()
	if err != nil {
		// Best effort: the well-known paths may still have produced results.
		fmt.Println(lipgloss.Yellow.Render(fmt.Sprintf("Warning: could not list mounted volumes: %v", err)))
		return projects, nil
	}

	for _, volume := range volumes {
		if err := l.scanVolume(volume, add); err != nil {
			fmt.Println(lipgloss.Yellow.Render(fmt.Sprintf("Warning: skipping volume %s: %v", volume, err)))
		}
	}

	return projects, nil
}

// scanVolume searches one mounted volume for files matching the pattern and
// records each unique parent directory. Unreadable subtrees are skipped so a
// single permission error never sinks the scan.
func (l *ProjectLocator) scanVolume(root string, add func(string)) error {
	if _, err := os.Stat(root); err != nil {
		return err
	}

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if path != root && utils.IsDefaultIgnored(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		if match, _ := doublestar.Match(l.Pattern, d.Name()); match {
			add(filepath.Dir(path))
		}
		return nil
	})
}
