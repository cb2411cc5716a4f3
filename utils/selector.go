package utils

import (
	"fmt"

	"github.com/pterm/pterm"
)

// PtermSelector renders an arrow-key navigable menu on the terminal. Up/down
// wraps at both ends; Enter confirms.
type PtermSelector struct{}

// NewPtermSelector creates the default interactive selector.
func NewPtermSelector() *PtermSelector {
	return &PtermSelector{}
}

// Select shows the options and returns the zero-based index of the confirmed
// one. Blocks until the user confirms.
func (s *PtermSelector) Select(title string, options []string) (int, error) {
	if len(options) == 0 {
		return 0, fmt.Errorf("no options to select from")
	}

	selected, err := pterm.DefaultInteractiveSelect.
		WithOptions(options).
		WithDefaultText(title).
		Show()
	if err != nil {
		return 0, fmt.Errorf("selection failed: %w", err)
	}

	for i, option := range options {
		if option == selected {
			return i, nil
		}
	}

	return 0, fmt.Errorf("selected option %q not found", selected)
}
