package clipback

import (
	"bytes"
	"fmt"
	"os"
	"strings"
)

// maxAssociatedTextLen bounds the "short associated text" an image capture
// may use as its display content instead of a scratch file path.
const maxAssociatedTextLen = 256

const imagePlaceholderPrefix = "[Image"

// Classifier inspects the live clipboard through a Backend and produces
// typed payloads. Precedence is File over Image over Text; text is then
// reclassified as URL or Color when it qualifies.
type Classifier struct {
	backend Backend
	images  *ImageStore

	maxContentBytes int
}

func NewClassifier(backend Backend, images *ImageStore, maxContentBytes int) *Classifier {
	if maxContentBytes <= 0 {
		maxContentBytes = 512 << 10
	}
	return &Classifier{backend: backend, images: images, maxContentBytes: maxContentBytes}
}

// Classify returns the current clipboard content as a typed payload.
// It fails with ErrNoContent when the clipboard is empty or the text is
// over the size ceiling, and ErrCommandFailed when an OS probe fails.
func (c *Classifier) Classify() (*Payload, error) {
	paths, err := c.backend.ReadFilePaths()
	if err != nil {
		return nil, err
	}
	// Only trust a file reference that resolves on disk; the OS sometimes
	// attaches stale ones to plain text and URLs.
	for _, p := range paths {
		if ValidatePath(p) != nil {
			continue
		}
		if _, err := os.Stat(p); err == nil {
			return &Payload{Content: p, Kind: KindFile}, nil
		}
	}

	img, err := c.backend.ReadImage()
	if err != nil {
		return nil, err
	}
	if format := detectImageFormat(img); format != "" {
		return c.classifyImage(img, format, paths)
	}

	text, err := c.backend.ReadText()
	if err != nil {
		return nil, err
	}
	if len(text) == 0 {
		return nil, ErrNoContent
	}
	if len(text) > c.maxContentBytes {
		return nil, fmt.Errorf("%w: text over %d bytes", ErrNoContent, c.maxContentBytes)
	}

	s := strings.TrimSuffix(string(text), "\n")
	switch {
	case isURL(s):
		return &Payload{Content: s, Kind: KindURL}, nil
	case isColor(s):
		return &Payload{Content: s, Kind: KindColor}, nil
	}
	return &Payload{Content: s, Kind: KindText}, nil
}

func (c *Classifier) classifyImage(img []byte, format string, paths []string) (*Payload, error) {
	// A file reference beats a scratch copy even when the path is gone
	// from disk; the entry still names where the image came from.
	for _, p := range paths {
		if ValidatePath(p) == nil {
			return &Payload{Content: p, Kind: KindImage}, nil
		}
	}

	if text, err := c.backend.ReadText(); err == nil {
		t := strings.TrimSpace(string(text))
		if t != "" && len(t) <= maxAssociatedTextLen && !strings.HasPrefix(t, imagePlaceholderPrefix) {
			return &Payload{Content: t, Kind: KindImage}, nil
		}
	}

	if c.images != nil {
		if path, err := c.images.Persist(img, format); err == nil {
			return &Payload{Content: path, Kind: KindImage}, nil
		}
	}
	placeholder := fmt.Sprintf("%s %s, %s]", imagePlaceholderPrefix, strings.ToUpper(format), HumanFileSize(int64(len(img))))
	return &Payload{Content: placeholder, Kind: KindImage}, nil
}

// Apply sets the live clipboard from a stored entry, inverting Classify.
// Image and file kinds try to restore the original representation first
// and degrade to plain text when that fails.
func (c *Classifier) Apply(content string, kind Kind) error {
	switch kind {
	case KindFile:
		if err := ValidatePath(content); err == nil {
			if err := c.backend.WriteFile(content); err == nil {
				return nil
			}
		}
	case KindImage:
		if data, err := os.ReadFile(content); err == nil && len(detectImageFormat(data)) > 0 {
			if err := c.backend.WriteImage(data); err == nil {
				return nil
			}
		}
	}
	if err := c.backend.WriteText([]byte(content)); err != nil {
		return fmt.Errorf("%w: %v", ErrCommandFailed, err)
	}
	return nil
}

var pngMagic = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func detectImageFormat(data []byte) string {
	if bytes.HasPrefix(data, pngMagic) {
		return "png"
	}
	if len(data) >= 3 && data[0] == 0xff && data[1] == 0xd8 && data[2] == 0xff {
		return "jpeg"
	}
	return ""
}

var urlSchemes = []string{"http://", "https://", "ftp://", "file://", "ssh://"}

func isURL(s string) bool {
	if strings.IndexFunc(s, func(r rune) bool { return r == ' ' || r == '\t' || r == '\n' }) >= 0 {
		return false
	}
	for _, scheme := range urlSchemes {
		if len(s) > len(scheme) && strings.HasPrefix(s, scheme) {
			return true
		}
	}
	return false
}

var colorFuncs = []string{"rgb(", "rgba(", "hsl(", "hsla("}

func isColor(s string) bool {
	if strings.HasPrefix(s, "#") {
		hex := s[1:]
		switch len(hex) {
		case 3, 6, 8:
		default:
			return false
		}
		for _, r := range hex {
			if !isHexDigit(r) {
				return false
			}
		}
		return true
	}

	for _, prefix := range colorFuncs {
		if strings.HasPrefix(s, prefix) {
			return strings.Count(s, "(") == 1 && strings.Count(s, ")") == 1 && strings.HasSuffix(s, ")")
		}
	}
	return false
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}
