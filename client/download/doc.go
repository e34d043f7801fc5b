// Package download streams a share's response body to a local file in
// fixed-size chunks, reporting each chunk to a progress sink.
//
// # Single Download
//
// [PrepareDir] creates the destination's missing parent directories
// and [Handle] copies the body:
//
//	if err := download.PrepareDir(destPath); err != nil { ... }
//	err := download.Handle(ctx, resp.Body, resp.ContentLength, destPath, logger,
//		download.WithLengthRequired(shareURL),
//		download.WithProgress(progress.Terminal(os.Stderr)),
//	)
//
// The destination is written in place. A failed transfer leaves the
// partially written file on disk.
//
// Most callers should use the higher-level
// [github.com/adamwoolhether/sciebo/client] package, which prepares the
// directory, issues the request and calls Handle.
package download
