// Package client downloads public cloud share links to local files,
// built on [net/http].
//
// # Building a Client
//
// Use [Build] to create a [Client] with functional options:
//
//	c, err := client.Build(
//		client.WithTimeout(10 * time.Minute),
//		client.WithUserAgent("myapp/1.0"),
//	)
//
// # Downloading
//
// A share link points at either a file or a folder. Both are fetched
// from the link's "/download" endpoint and streamed to disk in
// [ChunkSize] pieces:
//
//	err = c.DownloadFile(ctx, "https://uni-bonn.sciebo.de/s/AbCdEf", "data/train.csv")
//	err = c.DownloadFolder(ctx, "https://uni-bonn.sciebo.de/s/GhIjKl", "data/raw.zip")
//
// Or describe the download as a [share.Request] and let [Client.Download]
// validate it and pick the strategy:
//
//	err = c.Download(ctx, share.Request{URL: link, Destination: dest, Kind: share.Folder})
//
// File downloads fail with [ErrNotFound] when the share answers without
// a Content-Length. Folder downloads accept any body and write it as a
// single file; nothing is unpacked.
//
// # Progress
//
// Progress goes to a bar on stderr when stderr is a terminal and is
// silently dropped otherwise. [WithProgress] swaps the display:
//
//	c, err := client.Build(client.WithProgress(progress.Logging(logger)))
//
// For lower-level control see the
// [github.com/adamwoolhether/sciebo/client/download] package.
package client
