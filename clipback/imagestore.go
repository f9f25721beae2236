package clipback

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ImageStore persists raw image payloads to scratch files so history
// entries can reference them by path. It only ever deletes files under
// its own directory.
type ImageStore struct {
	dir string
	now func() time.Time
}

// NewImageStore creates the scratch directory if needed. An empty dir
// selects a per-user directory under the system temp dir.
func NewImageStore(dir string) (*ImageStore, error) {
	if dir == "" {
		dir = filepath.Join(os.TempDir(), "clipz-images")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create image scratch dir: %w", err)
	}
	return &ImageStore{dir: dir, now: time.Now}, nil
}

// Dir returns the scratch directory.
func (s *ImageStore) Dir() string { return s.dir }

// Persist writes data to a new scratch file named from a timestamp and a
// random suffix, with the extension taken from format ("png", "jpeg").
func (s *ImageStore) Persist(data []byte, format string) (string, error) {
	ext := "png"
	if format != "" {
		ext = format
	}

	var suffix [4]byte
	if _, err := rand.Read(suffix[:]); err != nil {
		return "", fmt.Errorf("failed to generate scratch name: %w", err)
	}
	name := fmt.Sprintf("clip_%d_%s.%s", s.now().UnixMilli(), hex.EncodeToString(suffix[:]), ext)
	path := filepath.Join(s.dir, name)

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("failed to save image: %w", err)
	}
	return path, nil
}

// Compare reports whether two scratch files hold the same image, by the
// size-plus-head heuristic described on CompareHead.
func (s *ImageStore) Compare(pathA, pathB string) bool {
	infoA, err := os.Stat(pathA)
	if err != nil {
		return false
	}
	infoB, err := os.Stat(pathB)
	if err != nil {
		return false
	}
	if infoA.Size() != infoB.Size() {
		return false
	}

	headA, err := readHead(pathA, CompareHead)
	if err != nil {
		return false
	}
	headB, err := readHead(pathB, CompareHead)
	if err != nil {
		return false
	}
	return bytes.Equal(headA, headB)
}

// Owns reports whether path points into the scratch directory.
func (s *ImageStore) Owns(path string) bool {
	rel, err := filepath.Rel(s.dir, filepath.Clean(path))
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) && !filepath.IsAbs(rel)
}

// Remove deletes a scratch file. Paths outside the scratch directory are
// ignored so a hostile content string can never delete arbitrary files.
func (s *ImageStore) Remove(path string) {
	if !s.Owns(path) {
		return
	}
	_ = os.Remove(path)
}

func readHead(path string, n int) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf := make([]byte, n)
	read, err := io.ReadFull(f, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, err
	}
	return buf[:read], nil
}
