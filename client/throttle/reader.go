package throttle

import (
	"context"
	"fmt"
	"io"

	"golang.org/x/time/rate"
)

// reader hands out at most one second's worth of bytes per Read and
// waits for the matching tokens after each read.
type reader struct {
	ctx     context.Context
	r       io.Reader
	limiter *rate.Limiter
}

// NewReader returns a reader over r delivering at most bytesPerSec
// bytes per second on average. The first second's worth is available
// immediately.
func NewReader(ctx context.Context, r io.Reader, bytesPerSec int) (io.Reader, error) {
	if bytesPerSec <= 0 {
		return nil, fmt.Errorf("bytesPerSec[%d] %w", bytesPerSec, ErrMustNotBeZero)
	}

	tr := &reader{
		ctx:     ctx,
		r:       r,
		limiter: rate.NewLimiter(rate.Limit(bytesPerSec), bytesPerSec),
	}

	return tr, nil
}

func (tr *reader) Read(p []byte) (int, error) {
	if burst := tr.limiter.Burst(); len(p) > burst {
		p = p[:burst]
	}

	n, err := tr.r.Read(p)
	if n > 0 {
		if werr := tr.limiter.WaitN(tr.ctx, n); werr != nil {
			return n, fmt.Errorf("%w: %w", ErrWaitingFailed, werr)
		}
	}

	return n, err
}
