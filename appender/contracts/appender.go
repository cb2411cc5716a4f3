package contracts

import "errors"

// ErrLocked indicates the database file is currently held exclusively by
// another process (for example an editor with the file open). Callers may
// retry; any other error is not worth retrying.
var ErrLocked = errors.New("database file is locked by another process")

// IAppender appends one unit of text to the aggregation database.
type IAppender interface {
	AppendLine(text string) error
}
