package clipback

import (
	"fmt"

	"golang.design/x/clipboard"
)

// SystemBackend talks to the real OS clipboard through
// golang.design/x/clipboard for text and image data, plus OS scripting
// for file references where the platform supports them.
type SystemBackend struct {
	maxFetch int
}

// NewSystemBackend initializes the OS clipboard. maxFetch bounds every
// read; payloads over the bound are treated as absent rather than
// shuttled through memory.
func NewSystemBackend(maxFetch int) (*SystemBackend, error) {
	if err := clipboard.Init(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupported, err)
	}
	if maxFetch <= 0 {
		maxFetch = 10 << 20
	}
	return &SystemBackend{maxFetch: maxFetch}, nil
}

func (b *SystemBackend) bounded(data []byte) []byte {
	if len(data) > b.maxFetch {
		return nil
	}
	return data
}

func (b *SystemBackend) ReadText() ([]byte, error) {
	return b.bounded(clipboard.Read(clipboard.FmtText)), nil
}

func (b *SystemBackend) ReadImage() ([]byte, error) {
	return b.bounded(clipboard.Read(clipboard.FmtImage)), nil
}

func (b *SystemBackend) ReadFilePaths() ([]string, error) {
	return osFilePaths()
}

func (b *SystemBackend) WriteText(data []byte) error {
	clipboard.Write(clipboard.FmtText, data)
	return nil
}

func (b *SystemBackend) WriteImage(data []byte) error {
	clipboard.Write(clipboard.FmtImage, data)
	return nil
}

func (b *SystemBackend) WriteFile(path string) error {
	if err := ValidatePath(path); err != nil {
		return err
	}
	return osWriteFile(path)
}
