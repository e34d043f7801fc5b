// Command sciebo downloads a file or folder from a public share link.
//
//	sciebo [options] <share-url> <destination>
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/adamwoolhether/sciebo/client"
	"github.com/adamwoolhether/sciebo/internal/config"
	"github.com/adamwoolhether/sciebo/progress"
	"github.com/adamwoolhether/sciebo/share"
)

// Exit codes
const (
	ExitSuccess         = 0
	ExitGeneralError    = 1
	ExitInvalidArgs     = 2
	ExitSourceNotAccess = 3
	ExitStorageError    = 5
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\n[sciebo] Received interrupt, shutting down...")
		cancel()
	}()

	code := run(ctx, os.Args[1:], os.Stderr, progress.Terminal(os.Stderr))
	cancel()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stderr io.Writer, bar progress.Factory) int {
	cfg, err := config.Parse(args, stderr)
	switch {
	case errors.Is(err, pflag.ErrHelp):
		return ExitSuccess
	case err != nil:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExitInvalidArgs
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExitInvalidArgs
	}

	level := slog.LevelInfo
	switch {
	case cfg.Verbose:
		level = slog.LevelDebug
	case cfg.Quiet:
		level = slog.LevelWarn
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if cfg.Quiet {
		bar = progress.Disabled
	}

	opts := []client.Option{
		client.WithLogger(logger),
		client.WithUserAgent(cfg.UserAgent),
		client.WithProgress(bar),
	}
	if cfg.Timeout > 0 {
		opts = append(opts, client.WithTimeout(cfg.Timeout))
	}
	if cfg.RPS > 0 {
		opts = append(opts, client.WithThrottle(cfg.RPS, max(cfg.Burst, 1)))
	}
	if cfg.Bandwidth > 0 {
		opts = append(opts, client.WithBandwidth(cfg.Bandwidth))
	}

	c, err := client.Build(opts...)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExitInvalidArgs
	}

	if err := c.Download(ctx, cfg.Request()); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCode(err)
	}

	return ExitSuccess
}

// exitCode maps a download error to the process exit status.
func exitCode(err error) int {
	var (
		fieldErrs share.FieldErrors
		statusErr *client.UnexpectedStatusError
		pathErr   *fs.PathError
	)

	switch {
	case errors.As(err, &fieldErrs):
		return ExitInvalidArgs
	case errors.Is(err, client.ErrNotFound), errors.As(err, &statusErr):
		return ExitSourceNotAccess
	case errors.As(err, &pathErr):
		return ExitStorageError
	default:
		return ExitGeneralError
	}
}
