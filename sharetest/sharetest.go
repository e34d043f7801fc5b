// Package sharetest provides an in-process share host for tests.
//
// The server answers GET /s/{token}/download the way a public share
// link does. Each token maps to a [Share] describing the body and how
// it is framed on the wire:
//
//	srv := sharetest.NewServer(map[string]sharetest.Share{
//		"file":   {Body: data},
//		"folder": {Body: zipped, OmitLength: true},
//	})
//	defer srv.Close()
//
//	err := c.DownloadFile(ctx, srv.ShareURL("file"), dest)
package sharetest

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Share is the content served for one token.
type Share struct {
	Body []byte

	// OmitLength streams the body with chunked transfer encoding so the
	// response carries no Content-Length.
	OmitLength bool

	// Status overrides the 200 status code.
	Status int

	// FlushEvery splits a streamed body into flushed writes of this
	// size. Zero writes it in one go.
	FlushEvery int

	// Gzip sends the body gzip compressed with Content-Encoding: gzip.
	// Content-Length, unless omitted, counts the compressed bytes.
	Gzip bool

	// Zstd is like Gzip but uses zstd. Gzip wins if both are set.
	Zstd bool
}

// encode returns the bytes put on the wire and their Content-Encoding.
func (sh Share) encode() ([]byte, string, error) {
	switch {
	case sh.Gzip:
		var buf bytes.Buffer
		zw := gzip.NewWriter(&buf)
		if _, err := zw.Write(sh.Body); err != nil {
			return nil, "", err
		}
		if err := zw.Close(); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), "gzip", nil
	case sh.Zstd:
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return nil, "", err
		}
		defer enc.Close()
		return enc.EncodeAll(sh.Body, nil), "zstd", nil
	default:
		return sh.Body, "", nil
	}
}

// Request is what the server recorded about an incoming call.
type Request struct {
	Token          string
	UserAgent      string
	RequestID      string
	TraceParent    string
	AcceptEncoding string
}

// Server is a share host backed by httptest.Server.
type Server struct {
	*httptest.Server

	logger *slog.Logger

	mu       sync.Mutex
	shares   map[string]Share
	requests []Request
}

// Option configures a Server.
type Option func(*Server)

// WithLogger logs every request through logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer starts a server hosting shares.
func NewServer(shares map[string]Share, opts ...Option) *Server {
	s := &Server{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		shares: make(map[string]Share, len(shares)),
	}
	for token, sh := range shares {
		s.shares[token] = sh
	}
	for _, opt := range opts {
		opt(s)
	}

	mux := http.NewServeMux()
	mux.Handle("GET /s/{token}/download", s.logged(http.HandlerFunc(s.download)))

	s.Server = httptest.NewServer(mux)

	return s
}

// ShareURL returns the public link for token.
func (s *Server) ShareURL(token string) string {
	return s.URL + "/s/" + token
}

// Set adds or replaces the share behind token.
func (s *Server) Set(token string, sh Share) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shares[token] = sh
}

// Requests returns a copy of the requests received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

func (s *Server) download(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")

	s.mu.Lock()
	s.requests = append(s.requests, Request{
		Token:          token,
		UserAgent:      r.Header.Get("User-Agent"),
		RequestID:      r.Header.Get("X-Request-ID"),
		TraceParent:    r.Header.Get("Traceparent"),
		AcceptEncoding: r.Header.Get("Accept-Encoding"),
	})
	sh, ok := s.shares[token]
	s.mu.Unlock()

	if !ok {
		http.Error(w, "share not found", http.StatusNotFound)
		return
	}

	status := sh.Status
	if status == 0 {
		status = http.StatusOK
	}

	body, encoding, err := sh.encode()
	if err != nil {
		s.logger.Error("encoding share body", "token", token, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	if encoding != "" {
		w.Header().Set("Content-Encoding", encoding)
	}

	if !sh.OmitLength {
		w.Header().Set("Content-Length", strconv.Itoa(len(body)))
		w.WriteHeader(status)
		if _, err := w.Write(body); err != nil {
			s.logger.Error("writing share body", "token", token, "error", err)
		}
		return
	}

	w.WriteHeader(status)
	flusher, _ := w.(http.Flusher)
	if flusher != nil {
		flusher.Flush()
	}

	step := sh.FlushEvery
	if step <= 0 {
		step = len(body)
	}
	for off := 0; off < len(body); off += step {
		end := min(off+step, len(body))
		if _, err := w.Write(body[off:end]); err != nil {
			s.logger.Error("writing share body", "token", token, "error", err)
			return
		}
		if flusher != nil {
			flusher.Flush()
		}
	}
}

func (s *Server) logged(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		s.logger.Info("request started", "method", r.Method, "path", r.URL.Path, "remoteaddr", r.RemoteAddr)
		next.ServeHTTP(w, r)
		s.logger.Info("request completed", "method", r.Method, "path", r.URL.Path, "since", time.Since(start).String())
	})
}
