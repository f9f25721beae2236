package clipback

// Backend abstracts OS clipboard access so the classifier can run against
// the real pasteboard or a fake in tests. Read methods return empty
// results (not errors) when the requested representation is absent.
type Backend interface {
	// ReadText returns the plain-text clipboard content, or nil.
	ReadText() ([]byte, error)
	// ReadImage returns raw image bytes (PNG or JPEG), or nil.
	ReadImage() ([]byte, error)
	// ReadFilePaths returns file paths attached to the clipboard, or nil.
	// The OS sometimes attaches stale file references to plain text, so
	// callers must verify the paths exist before trusting them.
	ReadFilePaths() ([]string, error)

	// WriteText replaces the clipboard with plain text.
	WriteText(data []byte) error
	// WriteImage replaces the clipboard with raw image bytes.
	WriteImage(data []byte) error
	// WriteFile places a file reference on the clipboard.
	WriteFile(path string) error
}
