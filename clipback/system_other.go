//go:build !darwin

package clipback

// File references are not probed outside darwin; text and image formats
// still work through golang.design/x/clipboard.
func osFilePaths() ([]string, error) {
	return nil, nil
}

func osWriteFile(path string) error {
	return ErrCommandFailed
}
