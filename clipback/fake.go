package clipback

import "sync"

// FakeBackend is an in-memory Backend used by tests and dry runs. Writes
// clear the other representations, mirroring how a real clipboard holds
// one logical item at a time.
type FakeBackend struct {
	mu    sync.Mutex
	text  []byte
	image []byte
	files []string

	readErr  error
	writeErr error
}

func NewFakeBackend() *FakeBackend { return &FakeBackend{} }

// SetText loads plain text as the current clipboard state.
func (b *FakeBackend) SetText(s string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.text = []byte(s)
	b.image = nil
	b.files = nil
}

// SetImage loads raw image bytes, with optional associated text.
func (b *FakeBackend) SetImage(data []byte, associatedText string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.image = data
	b.text = []byte(associatedText)
	b.files = nil
}

// SetFiles loads file references, with optional image data alongside as
// macOS does for copied image files.
func (b *FakeBackend) SetFiles(paths []string, image []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.files = paths
	b.image = image
	b.text = nil
}

// FailReads makes every read return err until reset with nil.
func (b *FakeBackend) FailReads(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.readErr = err
}

// FailWrites makes every write return err until reset with nil.
func (b *FakeBackend) FailWrites(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.writeErr = err
}

func (b *FakeBackend) ReadText() ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.text, b.readErr
}

func (b *FakeBackend) ReadImage() ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.image, b.readErr
}

func (b *FakeBackend) ReadFilePaths() ([]string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.files, b.readErr
}

func (b *FakeBackend) WriteText(data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.writeErr != nil {
		return b.writeErr
	}
	b.text = append([]byte(nil), data...)
	b.image = nil
	b.files = nil
	return nil
}

func (b *FakeBackend) WriteImage(data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.writeErr != nil {
		return b.writeErr
	}
	b.image = append([]byte(nil), data...)
	b.text = nil
	b.files = nil
	return nil
}

func (b *FakeBackend) WriteFile(path string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.writeErr != nil {
		return b.writeErr
	}
	b.files = []string{path}
	b.text = []byte(path)
	b.image = nil
	return nil
}

// Text returns the current text representation.
func (b *FakeBackend) Text() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return string(b.text)
}

// Image returns the current image representation.
func (b *FakeBackend) Image() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.image
}

// Files returns the current file references.
func (b *FakeBackend) Files() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.files
}
