package appender

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uefn-tools/versedb/appender/contracts"
)

// flakyAppender fails with a configurable error for the first N calls and
// records every line that was actually written.
type flakyAppender struct {
	failures int
	failWith error
	calls    int
	written  []string
}

func (f *flakyAppender) AppendLine(text string) error {
	f.calls++
	if f.calls <= f.failures {
		return f.failWith
	}
	f.written = append(f.written, text)
	return nil
}

func TestResilientAppender_RetryThenSucceed(t *testing.T) {
	fake := &flakyAppender{failures: 2, failWith: contracts.ErrLocked}
	resilient := NewResilientAppender(fake, 5, time.Millisecond)

	err := resilient.AppendLine("# File: /tmp/example.verse")
	require.NoError(t, err)

	// Earlier failed attempts must not leave duplicate lines behind.
	assert.Equal(t, []string{"# File: /tmp/example.verse"}, fake.written)
	assert.Equal(t, 3, fake.calls)
}

func TestResilientAppender_RetryExhaustion(t *testing.T) {
	fake := &flakyAppender{failures: 100, failWith: contracts.ErrLocked}
	resilient := NewResilientAppender(fake, 3, time.Millisecond)

	err := resilient.AppendLine("content")
	require.Error(t, err)
	assert.True(t, errors.Is(err, contracts.ErrLocked))
	assert.Equal(t, 3, fake.calls)
	assert.Empty(t, fake.written)
}

func TestResilientAppender_NonLockErrorDoesNotRetry(t *testing.T) {
	ioErr := errors.New("disk full")
	fake := &flakyAppender{failures: 100, failWith: ioErr}
	resilient := NewResilientAppender(fake, 5, time.Millisecond)

	err := resilient.AppendLine("content")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ioErr))
	assert.Equal(t, 1, fake.calls)
}

func TestResilientAppender_SucceedsFirstTry(t *testing.T) {
	fake := &flakyAppender{}
	resilient := NewResilientAppender(fake, 5, time.Millisecond)

	require.NoError(t, resilient.AppendLine("line"))
	assert.Equal(t, 1, fake.calls)
}
