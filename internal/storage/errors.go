package storage

import "fmt"

// WriteError reports a failure to persist an event. Write failures (disk
// full, permissions) are fatal and never retried.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("storage error writing %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// ReadError reports structural corruption of a clock's log: the file exists
// but cannot be read or scanned. Individually unparsable records are not a
// ReadError; those are skipped with a warning.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("storage error reading %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }
