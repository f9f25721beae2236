package clipback

import (
	"errors"
	"fmt"
)

// Kind represents the type of clipboard content
type Kind string

const (
	KindText  Kind = "text"
	KindImage Kind = "image"
	KindFile  Kind = "file"
	KindURL   Kind = "url"
	KindColor Kind = "color"
)

// ParseKind maps a persisted type string to a Kind. Unknown or empty
// strings fall back to text so version-1 documents keep loading.
func ParseKind(s string) Kind {
	switch Kind(s) {
	case KindText, KindImage, KindFile, KindURL, KindColor:
		return Kind(s)
	}
	return KindText
}

// Payload is one classified clipboard capture. Content holds the text
// itself, or a filesystem path for file and image kinds.
type Payload struct {
	Content string `json:"content"`
	Kind    Kind   `json:"kind"`
}

var (
	// ErrNoContent means the clipboard was empty or over the size ceiling.
	ErrNoContent = errors.New("no supported clipboard content found")
	// ErrCommandFailed means an OS-level clipboard probe returned an error.
	ErrCommandFailed = errors.New("clipboard command failed")
	// ErrUnsupported means no clipboard backend exists for this platform.
	ErrUnsupported = errors.New("clipboard not supported on this platform")
)

// CompareHead is how many leading bytes Compare checks after the size
// test. Equal size plus an equal head is treated as the same image; good
// enough to suppress repeated screenshots, not a cryptographic equality.
var CompareHead = 1024

// HumanFileSize returns a readable representation of bytes.
func HumanFileSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		exp++
		div *= unit
	}
	value := float64(size) / float64(div)
	return fmt.Sprintf("%.1f %cB", value, "KMGTPE"[exp])
}
