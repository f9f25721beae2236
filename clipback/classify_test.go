package clipback

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func fakePNG(extra int) []byte {
	data := append([]byte(nil), pngMagic...)
	for i := 0; i < extra; i++ {
		data = append(data, byte(i))
	}
	return data
}

func newTestClassifier(t *testing.T, backend Backend) (*Classifier, *ImageStore) {
	t.Helper()
	images, err := NewImageStore(filepath.Join(t.TempDir(), "images"))
	if err != nil {
		t.Fatalf("failed to create image store: %v", err)
	}
	return NewClassifier(backend, images, 1024), images
}

func TestClassifyText(t *testing.T) {
	backend := NewFakeBackend()
	c, _ := newTestClassifier(t, backend)

	backend.SetText("hello world\n")
	p, err := c.Classify()
	if err != nil {
		t.Fatalf("classify failed: %v", err)
	}
	if p.Kind != KindText || p.Content != "hello world" {
		t.Fatalf("expected trimmed text payload, got %+v", p)
	}
}

func TestClassifyEmptyClipboard(t *testing.T) {
	backend := NewFakeBackend()
	c, _ := newTestClassifier(t, backend)

	if _, err := c.Classify(); !errors.Is(err, ErrNoContent) {
		t.Fatalf("expected ErrNoContent, got %v", err)
	}
}

func TestClassifyOversizeTextIsNoContent(t *testing.T) {
	backend := NewFakeBackend()
	c, _ := newTestClassifier(t, backend)

	big := make([]byte, 2048)
	for i := range big {
		big[i] = 'a'
	}
	backend.SetText(string(big))

	if _, err := c.Classify(); !errors.Is(err, ErrNoContent) {
		t.Fatalf("expected oversize text to be ErrNoContent, got %v", err)
	}
}

func TestClassifyURLAndColor(t *testing.T) {
	cases := []struct {
		content string
		want    Kind
	}{
		{"https://example.com/page", KindURL},
		{"http://localhost:8080", KindURL},
		{"ftp://host/file", KindURL},
		{"https://example.com/some page", KindText}, // embedded whitespace
		{"http://", KindText},                       // scheme only
		{"#fff", KindColor},
		{"#A1B2C3", KindColor},
		{"#a1b2c3d4", KindColor},
		{"#fffz", KindText},
		{"#ffff", KindText}, // 4 digits is not a supported form
		{"rgb(255, 0, 0)", KindColor},
		{"rgba(255, 0, 0, 0.5)", KindColor},
		{"hsl(120, 50%, 50%)", KindColor},
		{"hsla(120, 50%, 50%, 1)", KindColor},
		{"rgb(255, 0, 0", KindText},  // unbalanced
		{"rgb(1) extra)", KindText},  // trailing junk
		{"plain old text", KindText},
	}

	for _, tc := range cases {
		backend := NewFakeBackend()
		c, _ := newTestClassifier(t, backend)
		backend.SetText(tc.content)

		p, err := c.Classify()
		if err != nil {
			t.Fatalf("classify %q failed: %v", tc.content, err)
		}
		if p.Kind != tc.want {
			t.Fatalf("classify %q: expected kind %s, got %s", tc.content, tc.want, p.Kind)
		}
	}
}

func TestClassifyFileBeatsImage(t *testing.T) {
	backend := NewFakeBackend()
	c, _ := newTestClassifier(t, backend)

	path := filepath.Join(t.TempDir(), "shot.png")
	if err := os.WriteFile(path, fakePNG(16), 0o600); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	backend.SetFiles([]string{path}, fakePNG(16))

	p, err := c.Classify()
	if err != nil {
		t.Fatalf("classify failed: %v", err)
	}
	if p.Kind != KindFile || p.Content != path {
		t.Fatalf("expected file payload for existing path, got %+v", p)
	}
}

func TestClassifyStaleFileReferenceFallsThrough(t *testing.T) {
	backend := NewFakeBackend()
	c, _ := newTestClassifier(t, backend)

	// The referenced path does not exist, so the file branch must not
	// win; with no image attached the text representation is used.
	backend.SetFiles([]string{"/nonexistent/clip.txt"}, nil)
	backend.text = []byte("https://example.com")

	p, err := c.Classify()
	if err != nil {
		t.Fatalf("classify failed: %v", err)
	}
	if p.Kind != KindURL {
		t.Fatalf("expected stale file ref to fall through to URL, got %+v", p)
	}
}

func TestClassifyImagePersistsScratchFile(t *testing.T) {
	backend := NewFakeBackend()
	c, images := newTestClassifier(t, backend)

	backend.SetImage(fakePNG(64), "")
	p, err := c.Classify()
	if err != nil {
		t.Fatalf("classify failed: %v", err)
	}
	if p.Kind != KindImage {
		t.Fatalf("expected image payload, got %+v", p)
	}
	if !images.Owns(p.Content) {
		t.Fatalf("expected content to be a scratch path, got %q", p.Content)
	}
	if _, err := os.Stat(p.Content); err != nil {
		t.Fatalf("scratch file missing: %v", err)
	}
}

func TestClassifyImageUsesAssociatedText(t *testing.T) {
	backend := NewFakeBackend()
	c, images := newTestClassifier(t, backend)

	backend.SetImage(fakePNG(64), "screenshot.png")
	p, err := c.Classify()
	if err != nil {
		t.Fatalf("classify failed: %v", err)
	}
	if p.Kind != KindImage || p.Content != "screenshot.png" {
		t.Fatalf("expected associated text content, got %+v", p)
	}
	if images.Owns(p.Content) {
		t.Fatalf("no scratch file should have been used")
	}
}

func TestClassifyImageIgnoresPlaceholderText(t *testing.T) {
	backend := NewFakeBackend()
	c, images := newTestClassifier(t, backend)

	backend.SetImage(fakePNG(64), "[Image PNG, 1.0 KB]")
	p, err := c.Classify()
	if err != nil {
		t.Fatalf("classify failed: %v", err)
	}
	if !images.Owns(p.Content) {
		t.Fatalf("placeholder text must not be reused as content, got %q", p.Content)
	}
}

func TestApplyTextRoundTrip(t *testing.T) {
	backend := NewFakeBackend()
	c, _ := newTestClassifier(t, backend)

	if err := c.Apply("some text", KindText); err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if backend.Text() != "some text" {
		t.Fatalf("expected clipboard text to be set, got %q", backend.Text())
	}
}

func TestApplyImageRestoresBytes(t *testing.T) {
	backend := NewFakeBackend()
	c, images := newTestClassifier(t, backend)

	path, err := images.Persist(fakePNG(32), "png")
	if err != nil {
		t.Fatalf("persist failed: %v", err)
	}
	if err := c.Apply(path, KindImage); err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if len(backend.Image()) == 0 {
		t.Fatalf("expected image bytes on clipboard")
	}
}

func TestApplyImageMissingFileFallsBackToText(t *testing.T) {
	backend := NewFakeBackend()
	c, _ := newTestClassifier(t, backend)

	if err := c.Apply("/nonexistent/clip.png", KindImage); err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if backend.Text() != "/nonexistent/clip.png" {
		t.Fatalf("expected text fallback, got %q", backend.Text())
	}
}

func TestApplyFileWriteFailureFallsBackToText(t *testing.T) {
	backend := NewFakeBackend()
	c, _ := newTestClassifier(t, backend)

	// WriteFile and WriteText share the error switch, so fail only the
	// first write by toggling during the call sequence is not possible
	// with the fake; instead verify the traversal guard falls back.
	if err := c.Apply("../../etc/passwd", KindFile); err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if backend.Text() != "../../etc/passwd" {
		t.Fatalf("expected text fallback for rejected path, got %q", backend.Text())
	}
	if len(backend.Files()) != 0 {
		t.Fatalf("rejected path must not reach the file writer")
	}
}
