package client

import (
	"errors"
	"fmt"
	"net/http"
)

// maxErrBodySize caps the amount of response body read when
// building an error for an unexpected status code. Share hosts answer
// missing links with full HTML pages.
const maxErrBodySize = 4 << 10 // 4KB

const (
	// RequestIDHeader carries the per-download id to the share host.
	RequestIDHeader = "X-Request-ID"

	tracerName = "github.com/adamwoolhether/sciebo/client"
)

// execFn represents a func to operate on a response.
type execFn func(response *http.Response) error

var (
	// ErrUnexpectedStatusCode is the sentinel error wrapped by [UnexpectedStatusError].
	ErrUnexpectedStatusCode = errors.New("unexpected status code")

	// ErrAuthFailure is joined with [ErrUnexpectedStatusCode] when the share
	// host responds with 401 Unauthorized or 403 Forbidden, as it does for
	// password-protected links.
	ErrAuthFailure = errors.New("auth failure")

	// ErrUnsupportedEncoding is returned when the share host answers with
	// a Content-Encoding other than gzip or zstd.
	ErrUnsupportedEncoding = errors.New("unsupported content encoding")
)

// UnexpectedStatusError is returned when the share host answers with
// a status other than 200 OK.
type UnexpectedStatusError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *UnexpectedStatusError) Error() string {
	return fmt.Sprintf("%v: %d, body: %s", e.Err, e.StatusCode, e.Body)
}

func (e *UnexpectedStatusError) Unwrap() error {
	return e.Err
}
