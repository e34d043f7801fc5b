package download

import (
	"errors"
	"fmt"
	"io/fs"
)

var (
	// ErrNotFound reports that a share answered without a Content-Length,
	// which signals that no data exists behind the link. It matches
	// fs.ErrNotExist.
	ErrNotFound              = fmt.Errorf("data not found: %w", fs.ErrNotExist)
	ErrContentLengthMismatch = errors.New("content length mismatch")
	ErrDownloadCancelled     = errors.New("download cancelled")
)

// Error wraps one of the package's sentinel errors with detail.
type Error struct {
	Detail string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%v: %s", e.Err, e.Detail)
}

func (e *Error) Unwrap() error {
	return e.Err
}
