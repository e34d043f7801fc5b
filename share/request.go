package share

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// downloadSuffix is appended to a share link to reach its raw content.
const downloadSuffix = "download"

// Request describes a single share download.
type Request struct {
	URL         string `json:"url"         validate:"required,http_url"`
	Destination string `json:"destination" validate:"required"`
	Kind        Kind   `json:"kind"        validate:"oneof=0 1"`
}

// Validate checks the request against its declared tags.
func (r Request) Validate() error {
	return Validate(r)
}

// DownloadURL returns the content endpoint of the share link.
func (r Request) DownloadURL() (string, error) {
	return DownloadURL(r.URL)
}

// DownloadURL appends "/download" to the path of shareURL, keeping any
// query string. A trailing slash on the link does not produce an empty
// path segment.
func DownloadURL(shareURL string) (string, error) {
	if shareURL == "" {
		return "", errors.New("share url must not be empty")
	}

	u, err := url.Parse(shareURL)
	if err != nil {
		return "", fmt.Errorf("parsing share url: %w", err)
	}

	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("share url %q must be absolute", shareURL)
	}

	u.Path = strings.TrimSuffix(u.Path, "/") + "/" + downloadSuffix
	if u.RawPath != "" {
		u.RawPath = strings.TrimSuffix(u.RawPath, "/") + "/" + downloadSuffix
	}

	return u.String(), nil
}
