package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/adamwoolhether/sciebo/client/download"
	"github.com/adamwoolhether/sciebo/client/throttle"
	"github.com/adamwoolhether/sciebo/progress"
	"github.com/adamwoolhether/sciebo/share"
)

// Client downloads public share links. It wraps an [http.Client],
// which can be customized via optional funcs. A Client is safe for
// concurrent use as long as destinations differ.
type Client struct {
	c         *http.Client
	logger    *slog.Logger
	tracer    trace.Tracer
	progress  progress.Factory
	bandwidth int
}

// Build returns a Client configured by optFns.
func Build(optFns ...Option) (*Client, error) {
	var opts options
	for _, opt := range optFns {
		if err := opt(&opts); err != nil {
			return nil, fmt.Errorf("applying client option: %w", err)
		}
	}

	client := &Client{
		c:         &http.Client{},
		logger:    slog.Default(),
		progress:  progress.Terminal(os.Stderr),
		bandwidth: opts.bandwidth,
	}

	if opts.client != nil {
		hc := *opts.client
		client.c = &hc
	}
	if opts.logger != nil {
		client.logger = opts.logger
	}
	if opts.progress != nil {
		client.progress = opts.progress
	}
	if opts.timeout != nil {
		client.c.Timeout = *opts.timeout
	}
	if opts.noFollowRedirects {
		client.c.CheckRedirect = func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}

	tp := opts.tracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	client.tracer = tp.Tracer(tracerName)

	var transport http.RoundTripper
	switch {
	case opts.rt != nil:
		transport = opts.rt
	case client.c.Transport != nil:
		transport = client.c.Transport
	default:
		transport = http.DefaultTransport
	}

	if opts.userAgent != "" {
		transport = userAgent{value: opts.userAgent, base: transport}
	}

	if opts.throttle != nil {
		rt, err := throttle.NewRoundTripper(opts.throttle.RPS, opts.throttle.Burst, func() *slog.Logger { return client.logger }, transport)
		if err != nil {
			return nil, fmt.Errorf("configuring throttle: %w", err)
		}
		transport = rt
	}

	client.c.Transport = transport

	return client, nil
}

// DownloadFile fetches the file behind shareURL into destPath. Missing
// parent directories are created first. The share must answer with a
// Content-Length; without one the link is treated as empty and an error
// matching [ErrNotFound] is returned.
//
// Any status other than 200 OK fails with [*UnexpectedStatusError] and
// nothing is written, so an error page is never saved as the file. The
// same holds for [Client.DownloadFolder].
//
// gzip and zstd encoded responses are decoded before writing. Their
// Content-Length counts encoded bytes, so it only has to be present.
func (c *Client) DownloadFile(ctx context.Context, shareURL, destPath string) error {
	return c.fetch(ctx, share.Request{URL: shareURL, Destination: destPath, Kind: share.File})
}

// DownloadFolder fetches the folder behind shareURL into destPath. The
// response is written as a single file, exactly as served; it is not
// unpacked. No Content-Length is required and progress is indeterminate.
func (c *Client) DownloadFolder(ctx context.Context, shareURL, destPath string) error {
	return c.fetch(ctx, share.Request{URL: shareURL, Destination: destPath, Kind: share.Folder})
}

// Download validates r and fetches it according to its Kind.
func (c *Client) Download(ctx context.Context, r share.Request) error {
	if err := r.Validate(); err != nil {
		return fmt.Errorf("validating request: %w", err)
	}

	switch r.Kind {
	case share.File:
		return c.DownloadFile(ctx, r.URL, r.Destination)
	case share.Folder:
		return c.DownloadFolder(ctx, r.URL, r.Destination)
	default:
		return fmt.Errorf("%w: %v", share.ErrUnknownKind, r.Kind)
	}
}

// fetch prepares the destination, requests <share>/download and
// streams the body to disk.
func (c *Client) fetch(ctx context.Context, r share.Request) (err error) {
	if r.Destination == "" {
		return errors.New("destPath must not be empty")
	}

	dlURL, err := share.DownloadURL(r.URL)
	if err != nil {
		return err
	}

	id := uuid.New().String()
	logger := c.logger.With("id", id)

	ctx, span := c.tracer.Start(ctx, "share.download", trace.WithAttributes(
		attribute.String("share.url", r.URL),
		attribute.String("share.kind", r.Kind.String()),
		attribute.String("download.dest", r.Destination),
		attribute.String("download.id", id),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if err := download.PrepareDir(r.Destination); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, dlURL, nil)
	if err != nil {
		return fmt.Errorf("instantiating request: %w", err)
	}
	req.Header.Set(RequestIDHeader, id)
	req.Header.Set("Accept-Encoding", acceptEncoding)
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	dlOpts := []download.Option{download.WithProgress(c.progress)}
	if r.Kind == share.File {
		dlOpts = append(dlOpts, download.WithLengthRequired(r.URL))
	}

	start := time.Now()
	logger.Info("download started", "url", r.URL, "dest", r.Destination, "kind", r.Kind.String())

	dlFunc := func(resp *http.Response) error {
		encoding := resp.Header.Get("Content-Encoding")
		span.SetAttributes(
			attribute.Int64("http.response.content_length", resp.ContentLength),
			attribute.String("http.response.content_encoding", encoding),
		)

		var body io.Reader = resp.Body
		if c.bandwidth > 0 {
			tr, err := throttle.NewReader(ctx, body, c.bandwidth)
			if err != nil {
				return fmt.Errorf("configuring bandwidth: %w", err)
			}
			body = tr
		}

		body, release, err := decodeBody(encoding, body)
		if err != nil {
			return err
		}
		defer release()

		contentLength := resp.ContentLength
		opts := dlOpts
		switch {
		case resp.Uncompressed:
			// The transport decoded the body itself and removed the
			// Content-Length header along with Content-Encoding.
			contentLength = 0
			opts = append(opts, download.WithEncodedLength())
		case encoding != "" && !strings.EqualFold(encoding, "identity"):
			opts = append(opts, download.WithEncodedLength())
		}

		if err := download.Handle(ctx, body, contentLength, r.Destination, logger, opts...); err != nil {
			return fmt.Errorf("download: %w", err)
		}

		return nil
	}

	if err := c.exec(req, http.StatusOK, dlFunc); err != nil {
		logger.Error("download failed", "url", r.URL, "dest", r.Destination, "error", err)
		return err
	}

	logger.Info("download complete", "dest", r.Destination, "elapsed", time.Since(start).Round(time.Millisecond))

	return nil
}

// exec runs the request and injected function on success after validating the expected status code.
func (c *Client) exec(req *http.Request, expCode int, fn execFn) error {
	resp, err := c.c.Do(req)
	if err != nil {
		return fmt.Errorf("exec http do: %w", err)
	}

	discardBody := true
	defer func() {
		if discardBody {
			if _, err := io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrBodySize)); err != nil {
				c.logger.Error("failed to discard unused body", "error", err)
			}
		}

		if err := resp.Body.Close(); err != nil {
			c.logger.Error("failed to close response body", "error", err)
		}
	}()

	if resp.StatusCode != expCode {
		b, err := io.ReadAll(io.LimitReader(resp.Body, maxErrBodySize))
		if err != nil {
			b = []byte("unable to read body")
		}

		statusErr := ErrUnexpectedStatusCode
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			statusErr = errors.Join(ErrAuthFailure, ErrUnexpectedStatusCode)
		}

		return &UnexpectedStatusError{
			StatusCode: resp.StatusCode,
			Body:       string(b),
			Err:        statusErr,
		}
	}

	if err := fn(resp); err != nil {
		discardBody = false
		return fmt.Errorf("exec fn: %w", err)
	}

	return nil
}
