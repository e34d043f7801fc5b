package download

import (
	"errors"

	"github.com/adamwoolhether/sciebo/progress"
)

// Option defines optional settings for Handle.
type Option func(*options) error

type options struct {
	lengthRequired bool
	encodedLength  bool
	source         string
	progress       progress.Factory
}

// WithLengthRequired makes Handle fail with ErrNotFound when the
// response carries no Content-Length. source names the share in the
// error. The progress sink then gets the expected total and a
// "Downloading <path>" description; without it progress is
// indeterminate.
func WithLengthRequired(source string) Option {
	return func(opts *options) error {
		if source == "" {
			return errors.New("source must not be empty")
		}

		opts.lengthRequired = true
		opts.source = source
		return nil
	}
}

// WithEncodedLength marks the Content-Length as counting the encoded
// bytes of a body that was decoded before reaching Handle. The length
// still has to be present, but it is neither used as the progress
// total nor compared with the bytes written.
func WithEncodedLength() Option {
	return func(opts *options) error {
		opts.encodedLength = true
		return nil
	}
}

// WithProgress sets the factory used to build the progress sink.
func WithProgress(f progress.Factory) Option {
	return func(opts *options) error {
		if f == nil {
			return errors.New("progress factory must not be nil")
		}

		opts.progress = f
		return nil
	}
}
