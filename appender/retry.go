package appender

import (
	"errors"
	"fmt"
	"time"

	"github.com/uefn-tools/versedb/appender/contracts"
)

// ResilientAppender retries lock failures with a fixed delay so a transient
// editor lock on the shared database degrades to a per-write warning instead
// of aborting the whole run. Non-lock errors are returned immediately.
type ResilientAppender struct {
	Appender    contracts.IAppender
	MaxAttempts int
	Delay       time.Duration
}

// NewResilientAppender wraps an appender with the given retry budget.
func NewResilientAppender(inner contracts.IAppender, maxAttempts int, delay time.Duration) *ResilientAppender {
	return &ResilientAppender{
		Appender:    inner,
		MaxAttempts: maxAttempts,
		Delay:       delay,
	}
}

// AppendLine attempts the write until it succeeds, a non-lock error occurs,
// or the attempt budget is exhausted.
func (r *ResilientAppender) AppendLine(text string) error {
	for attempt := 1; ; attempt++ {
		err := r.Appender.AppendLine(text)
		if err == nil {
			return nil
		}

		if !errors.Is(err, contracts.ErrLocked) {
			return err
		}

		if attempt >= r.MaxAttempts {
			return fmt.Errorf("append failed after %d attempts: %w", attempt, err)
		}

		time.Sleep(r.Delay)
	}
}
