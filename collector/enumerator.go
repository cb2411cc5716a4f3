package collector

import (
	"io/fs"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/uefn-tools/versedb/collector/models"
	"github.com/uefn-tools/versedb/utils"
)

// EnumerateFiles walks one project directory and returns every regular file
// whose base name matches the pattern, in traversal order. The database file
// itself is always excluded, by name and by resolved absolute path, so a run
// can never ingest its own prior output.
func EnumerateFiles(project string, pattern string, databasePath string) ([]models.CandidateFile, error) {
	var files []models.CandidateFile

	databaseAbs, err := filepath.Abs(databasePath)
	if err != nil {
		databaseAbs = databasePath
	}
	databaseName := filepath.Base(databasePath)

	ignorePatterns, err := utils.GetIgnorePatterns(project)
	if err != nil {
		return nil, err
	}

	err = filepath.WalkDir(project, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		relativePath, relErr := filepath.Rel(project, path)
		if relErr != nil {
			relativePath = path
		}

		if utils.IsDefaultIgnored(relativePath) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}

		if utils.IsIgnored(relativePath, ignorePatterns) {
			return nil
		}

		if match, _ := doublestar.Match(pattern, d.Name()); !match {
			return nil
		}

		abs, absErr := filepath.Abs(path)
		if absErr != nil {
			abs = path
		}
		if d.Name() == databaseName || abs == databaseAbs {
			return nil
		}

		files = append(files, models.CandidateFile{Path: abs, Name: d.Name()})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}
