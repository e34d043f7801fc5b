package share

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownKind is returned when a Kind value or name is not File or Folder.
var ErrUnknownKind = errors.New("unknown share kind")

// Kind tells whether a share link points at a file or a folder.
type Kind int

const (
	File Kind = iota
	Folder
)

func (k Kind) String() string {
	switch k {
	case File:
		return "file"
	case Folder:
		return "folder"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind returns the Kind named by s, ignoring case.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "file":
		return File, nil
	case "folder":
		return Folder, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// KindOf maps an is-file flag onto a Kind.
func KindOf(isFile bool) Kind {
	if isFile {
		return File
	}
	return Folder
}
