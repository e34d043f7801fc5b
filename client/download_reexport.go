package client

import (
	"github.com/adamwoolhether/sciebo/client/download"
)

// ————————————————————————————————————————————————————————————————————
// Type aliases – re-export user-facing types from [download].
// ————————————————————————————————————————————————————————————————————

// DownloadError wraps a sentinel error with additional detail.
type DownloadError = download.Error

// ————————————————————————————————————————————————————————————————————
// Sentinel errors
// ————————————————————————————————————————————————————————————————————

var (
	// ErrNotFound indicates the share answered without a Content-Length,
	// meaning no data exists behind the link.
	ErrNotFound = download.ErrNotFound
	// ErrContentLengthMismatch indicates the byte count did not match Content-Length.
	ErrContentLengthMismatch = download.ErrContentLengthMismatch
	// ErrDownloadCancelled indicates the download was cancelled via context.
	ErrDownloadCancelled = download.ErrDownloadCancelled
)

// ChunkSize is the number of bytes written per progress step.
const ChunkSize = download.ChunkSize
