package client

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// acceptEncoding is sent on every share request. Setting it explicitly
// stops the transport from decoding gzip on its own, which would drop
// the Content-Length header the file check depends on.
const acceptEncoding = "zstd, gzip"

// decodeBody wraps body in a decoder for the given Content-Encoding.
// The returned func releases the decoder.
func decodeBody(encoding string, body io.Reader) (io.Reader, func(), error) {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "", "identity":
		return body, func() {}, nil
	case "gzip", "x-gzip":
		zr, err := gzip.NewReader(body)
		if errors.Is(err, io.EOF) {
			return http.NoBody, func() {}, nil
		}
		if err != nil {
			return nil, nil, fmt.Errorf("creating gzip reader: %w", err)
		}
		return zr, func() { _ = zr.Close() }, nil
	case "zstd":
		zr, err := zstd.NewReader(body)
		if err != nil {
			return nil, nil, fmt.Errorf("creating zstd reader: %w", err)
		}
		return zr, zr.Close, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnsupportedEncoding, encoding)
	}
}
