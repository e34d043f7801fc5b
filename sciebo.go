// Package sciebo downloads files and folders from public cloud share
// links, such as those handed out by Sciebo or other ownCloud hosts.
//
//	err := sciebo.DownloadFromSciebo(ctx, "https://uni-bonn.sciebo.de/s/AbCdEf", "data/train.csv", sciebo.File)
//
// Each call builds a fresh client from the given options. Reuse a
// [client.Client] from [NewClient] for repeated downloads.
package sciebo

import (
	"context"
	"fmt"

	"github.com/adamwoolhether/sciebo/client"
	"github.com/adamwoolhether/sciebo/share"
)

// Kind selects the download strategy for a share link.
type Kind = share.Kind

const (
	File   = share.File
	Folder = share.Folder
)

// NewClient instantiates a new *client.Client with the provided options.
func NewClient(opts ...client.Option) (*client.Client, error) {
	return client.Build(opts...)
}

// DownloadFile downloads the file behind shareURL to destPath.
// See [client.Client.DownloadFile].
func DownloadFile(ctx context.Context, shareURL, destPath string, opts ...client.Option) error {
	return DownloadFromSciebo(ctx, shareURL, destPath, File, opts...)
}

// DownloadFolder downloads the folder behind shareURL to destPath as a
// single file. See [client.Client.DownloadFolder].
func DownloadFolder(ctx context.Context, shareURL, destPath string, opts ...client.Option) error {
	return DownloadFromSciebo(ctx, shareURL, destPath, Folder, opts...)
}

// DownloadFromSciebo downloads shareURL to destPath using the strategy
// for kind.
func DownloadFromSciebo(ctx context.Context, shareURL, destPath string, kind Kind, opts ...client.Option) error {
	c, err := client.Build(opts...)
	if err != nil {
		return err
	}

	switch kind {
	case File:
		return c.DownloadFile(ctx, shareURL, destPath)
	case Folder:
		return c.DownloadFolder(ctx, shareURL, destPath)
	default:
		return fmt.Errorf("%w: %v", share.ErrUnknownKind, kind)
	}
}
