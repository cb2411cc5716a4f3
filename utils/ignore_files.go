package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
)

// ignoreCacheEntry holds cached ignore patterns with metadata
type ignoreCacheEntry struct {
	patterns []string
	modTime  time.Time
}

// Global cache for ignore patterns
var (
	ignoreCache = make(map[string]*ignoreCacheEntry)
	cacheMutex  sync.RWMutex
)

// GetIgnorePatterns reads and returns the patterns from the .versedb-ignore
// file in the given directory. If the file does not exist, it returns an
// empty pattern list. Patterns are cached keyed by the file's mod time.
func GetIgnorePatterns(root string) ([]string, error) {
	ignorePath := filepath.Join(root, ".versedb-ignore")

	fileInfo, err := os.Stat(ignorePath)
	if os.IsNotExist(err) {
		return []string{}, nil
	} else if err != nil {
		return nil, fmt.Errorf("error checking .versedb-ignore: %w", err)
	}

	cacheMutex.RLock()
	if cached, exists := ignoreCache[ignorePath]; exists {
		if fileInfo.ModTime().Equal(cached.modTime) {
			cacheMutex.RUnlock()
			return cached.patterns, nil
		}
	}
	cacheMutex.RUnlock()

	patterns, err := readIgnoreFile(ignorePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read .versedb-ignore: %w", err)
	}

	cacheMutex.Lock()
	ignoreCache[ignorePath] = &ignoreCacheEntry{
		patterns: patterns,
		modTime:  fileInfo.ModTime(),
	}
	cacheMutex.Unlock()

	return patterns, nil
}

// IsDefaultIgnored reports whether a path falls under the fixed set of
// directories and file kinds that never contain aggregatable Verse source.
// Covers VCS metadata, editor state, and UEFN build output.
func IsDefaultIgnored(path string) bool {
	ignorePatterns := []string{
		".git",
		".svn",
		".idea",
		".vscode",
		".cache",
		"node_modules",
		"Binaries",
		"Intermediate",
		"DerivedDataCache",
		"Saved",
		"*.bak",
		"*.tmp",
		"*.log",
	}

	parts := strings.Split(path, string(filepath.Separator))

	for _, part := range parts {
		for _, pattern := range ignorePatterns {
			if strings.HasPrefix(pattern, "*") {
				suffix := strings.TrimPrefix(pattern, "*")
				if strings.HasSuffix(strings.ToLower(part), suffix) {
					return true
				}
			} else if part == pattern {
				return true
			}
		}
	}
	return false
}

// readIgnoreFile reads the ignore file and returns the list of patterns.
func readIgnoreFile(path string) ([]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	lines := strings.Split(string(content), "\n")
	var patterns []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" && !strings.HasPrefix(line, "#") {
			patterns = append(patterns, line)
		}
	}
	return patterns, nil
}

// IsIgnored checks if a relative path matches any of the ignore patterns.
// Patterns use doublestar glob syntax, so "Content/**/generated" works.
func IsIgnored(path string, patterns []string) bool {
	path = filepath.ToSlash(path)
	for _, pattern := range patterns {
		if match, _ := doublestar.Match(pattern, path); match {
			return true
		}
		// Patterns like "dir/" ignore the whole directory subtree.
		if strings.HasSuffix(pattern, "/") && strings.HasPrefix(path, pattern) {
			return true
		}
	}
	return false
}

// ClearIgnoreCache clears all cached ignore patterns.
func ClearIgnoreCache() {
	cacheMutex.Lock()
	defer cacheMutex.Unlock()
	ignoreCache = make(map[string]*ignoreCacheEntry)
}
