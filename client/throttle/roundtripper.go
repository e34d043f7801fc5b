package throttle

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// roundTripper delays outbound share requests until the limiter
// hands out a token.
type roundTripper struct {
	limiter *rate.Limiter
	cfg     Config
	next    http.RoundTripper
	logFn   func() *slog.Logger
}

// NewRoundTripper returns an http.RoundTripper allowing rps requests per
// second with the given burst. logFn is resolved per request so the
// logger may be set after construction; a nil logger disables the
// exhausted/wait-complete logging.
func NewRoundTripper(rps, burst int, logFn func() *slog.Logger, next http.RoundTripper) (http.RoundTripper, error) {
	if rps <= 0 || burst <= 0 {
		return nil, fmt.Errorf("rps[%d] and burst[%d] %w", rps, burst, ErrMustNotBeZero)
	}

	if next == nil {
		next = http.DefaultTransport
	}
	if logFn == nil {
		logFn = func() *slog.Logger { return nil }
	}

	rt := &roundTripper{
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		cfg:     Config{RPS: rps, Burst: burst},
		next:    next,
		logFn:   logFn,
	}

	return rt, nil
}

func (t *roundTripper) RoundTrip(r *http.Request) (*http.Response, error) {
	ctx := r.Context()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w early: %w", ErrContextEnded, err)
	}

	if logger := t.logFn(); logger != nil && t.limiter.Tokens() < 1 {
		logger.Info("share requests throttled", "rps", t.cfg.RPS, "burst", t.cfg.Burst, "host", r.URL.Host)

		start := time.Now()
		defer func() {
			logger.Info("share request released", "waited", time.Since(start).String(), "host", r.URL.Host)
		}()
	}

	if err := t.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWaitingFailed, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w post-wait: %w", ErrContextEnded, err)
	}

	return t.next.RoundTrip(r)
}
