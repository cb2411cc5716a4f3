package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pterm/pterm"
)

// TerminalDirectoryPicker prompts for a directory path on the terminal. It is
// the portable stand-in for a native folder-choose dialog.
type TerminalDirectoryPicker struct{}

// NewTerminalDirectoryPicker creates the default directory picker.
func NewTerminalDirectoryPicker() *TerminalDirectoryPicker {
	return &TerminalDirectoryPicker{}
}

// PickDirectory asks for one existing directory and returns its absolute
// path. An empty answer or a path that is not a directory is an error; the
// caller treats that as terminal for the run.
func (p *TerminalDirectoryPicker) PickDirectory(prompt string) (string, error) {
	input, err := pterm.DefaultInteractiveTextInput.
		WithDefaultText(prompt).
		Show()
	if err != nil {
		return "", fmt.Errorf("failed to read directory path: %w", err)
	}

	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("no directory selected")
	}

	if strings.HasPrefix(input, "~") {
		home, err := os.UserHomeDir()
		if err == nil {
			input = filepath.Join(home, strings.TrimPrefix(input, "~"))
		}
	}

	abs, err := filepath.Abs(input)
	if err != nil {
		return "", fmt.Errorf("invalid directory path %q: %w", input, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("directory %s does not exist: %w", abs, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s is not a directory", abs)
	}

	return abs, nil
}
