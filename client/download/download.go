package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/adamwoolhether/sciebo/progress"
)

// ChunkSize is the number of bytes read and written per step.
const ChunkSize = 8192

// mkdirAll is swapped in tests to observe directory creation.
var mkdirAll = os.MkdirAll

// PrepareDir creates every missing parent directory of path. A bare
// file name needs no directory and nothing is created.
func PrepareDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}

	if err := mkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating parent directories: %w", err)
	}

	return nil
}

// Handle streams body into destPath, creating or truncating it. Each
// chunk is written before its length is passed to the progress sink.
// On failure the partially written file is left as is.
func Handle(ctx context.Context, body io.Reader, contentLength int64, destPath string, logger *slog.Logger, optFns ...Option) error {
	var opts options
	for _, opt := range optFns {
		if err := opt(&opts); err != nil {
			return fmt.Errorf("applying option: %w", err)
		}
	}

	var desc string
	total := int64(-1)
	if opts.lengthRequired {
		if contentLength < 0 {
			return &Error{
				Err:    ErrNotFound,
				Detail: fmt.Sprintf("no content length at %s", opts.source),
			}
		}
		desc = "Downloading " + destPath
		if !opts.encodedLength {
			total = contentLength
		}
	}

	file, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("opening destination: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
			logger.Error("defer closing destination", "path", destPath, "error", err)
		}
	}()

	sink := progress.New(opts.progress, desc, total)
	defer progress.Finish(sink)

	n, err := copyChunks(file, &contextReader{ctx: ctx, r: body}, sink)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%w: %w", ErrDownloadCancelled, err)
		}

		return err
	}

	if opts.lengthRequired && !opts.encodedLength && n != contentLength {
		return &Error{
			Err:    ErrContentLengthMismatch,
			Detail: fmt.Sprintf("expected %d bytes, got %d", contentLength, n),
		}
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("closing destination: %w", err)
	}

	logger.Debug("body written", "path", destPath, "bytes", n)

	return nil
}

// copyChunks moves r into w ChunkSize bytes at a time. Only the last
// chunk may be shorter.
func copyChunks(w io.Writer, r io.Reader, sink progress.Sink) (int64, error) {
	buf := make([]byte, ChunkSize)

	var written int64
	for {
		nr, rerr := readChunk(r, buf)
		if nr > 0 {
			nw, werr := w.Write(buf[:nr])
			written += int64(nw)
			if werr != nil {
				return written, fmt.Errorf("writing chunk: %w", werr)
			}
			if nw != nr {
				return written, fmt.Errorf("writing chunk: %w", io.ErrShortWrite)
			}
			sink.Advance(nr)
		}

		if rerr == io.EOF {
			return written, nil
		}
		if rerr != nil {
			return written, fmt.Errorf("reading body: %w", rerr)
		}
	}
}

// readChunk fills buf unless r ends first. Unlike io.ReadFull it passes
// the reader's own error through, so a truncated body still surfaces
// io.ErrUnexpectedEOF while a clean end reports io.EOF.
func readChunk(r io.Reader, buf []byte) (int, error) {
	var n int
	for n < len(buf) {
		nn, err := r.Read(buf[n:])
		n += nn
		if err != nil {
			return n, err
		}
	}

	return n, nil
}

// contextReader stops reading once ctx is done.
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (cr *contextReader) Read(p []byte) (int, error) {
	if err := cr.ctx.Err(); err != nil {
		return 0, err
	}

	return cr.r.Read(p)
}
