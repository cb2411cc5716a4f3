package appender

import (
	"fmt"
	"os"
	"strings"

	"github.com/gofrs/flock"
	"github.com/uefn-tools/versedb/appender/contracts"
)

// FileAppender writes single units of text to the database file, taking an
// exclusive lock for the duration of each write. The handle is released
// between writes so an external reader is never starved for long.
type FileAppender struct {
	Path string
}

// NewFileAppender creates an appender bound to the given database path.
func NewFileAppender(path string) *FileAppender {
	return &FileAppender{Path: path}
}

// AppendLine opens the database exclusively, appends text and releases the
// handle. A newline is added when text does not already end with one, so the
// file stays line-oriented. Returns contracts.ErrLocked when another process
// currently holds the file.
func (a *FileAppender) AppendLine(text string) error {
	lock := flock.New(a.Path)

	acquired, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("failed to lock %s: %w", a.Path, err)
	}
	if !acquired {
		return contracts.ErrLocked
	}
	defer lock.Unlock()

	file, err := os.OpenFile(a.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open %s for append: %w", a.Path, err)
	}
	defer file.Close()

	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}

	if _, err := file.WriteString(text); err != nil {
		return fmt.Errorf("failed to append to %s: %w", a.Path, err)
	}

	return nil
}
