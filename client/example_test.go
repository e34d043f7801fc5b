package client_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adamwoolhether/sciebo/client"
	"github.com/adamwoolhether/sciebo/progress"
	"github.com/adamwoolhether/sciebo/share"
	"github.com/adamwoolhether/sciebo/sharetest"
)

func ExampleBuild() {
	c, err := client.Build(
		client.WithTimeout(10*time.Minute),
		client.WithUserAgent("example/1.0"),
		client.WithThrottle(2, 1),
	)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	_ = c
	fmt.Println("client built")
	// Output: client built
}

func ExampleClient_DownloadFile() {
	srv := sharetest.NewServer(map[string]sharetest.Share{
		"AbCdEf": {Body: []byte("id,label\n1,cat\n")},
	})
	defer srv.Close()

	dir, _ := os.MkdirTemp("", "example")
	defer os.RemoveAll(dir)

	c, _ := client.Build(client.WithProgress(progress.Disabled))

	dest := filepath.Join(dir, "data", "labels.csv")
	if err := c.DownloadFile(context.Background(), srv.ShareURL("AbCdEf"), dest); err != nil {
		fmt.Println("error:", err)
		return
	}

	b, _ := os.ReadFile(dest)
	fmt.Print(string(b))
	// Output:
	// id,label
	// 1,cat
}

func ExampleClient_Download() {
	srv := sharetest.NewServer(map[string]sharetest.Share{
		"GhIjKl": {Body: []byte("PK\x03\x04"), OmitLength: true},
	})
	defer srv.Close()

	dir, _ := os.MkdirTemp("", "example")
	defer os.RemoveAll(dir)

	c, _ := client.Build(client.WithProgress(progress.Disabled))

	dest := filepath.Join(dir, "raw.zip")
	err := c.Download(context.Background(), share.Request{
		URL:         srv.ShareURL("GhIjKl"),
		Destination: dest,
		Kind:        share.Folder,
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	info, _ := os.Stat(dest)
	fmt.Println(info.Size(), "bytes")

	// The same link has no Content-Length, so it is not a file.
	err = c.DownloadFile(context.Background(), srv.ShareURL("GhIjKl"), dest)
	fmt.Println(errors.Is(err, client.ErrNotFound))
	// Output:
	// 4 bytes
	// true
}
