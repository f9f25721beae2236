//go:build darwin

package clipback

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

const scriptTimeout = 2 * time.Second

func runOSAScript(script string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), scriptTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "osascript", "-e", script)
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%w: osascript: %v", ErrCommandFailed, err)
	}
	return strings.TrimRight(out.String(), "\n"), nil
}

// osFilePaths asks the pasteboard for a file-URL representation of the
// current clipboard. A non-zero exit simply means no file reference is
// attached; that is the common case and not an error.
func osFilePaths() ([]string, error) {
	out, err := runOSAScript(`POSIX path of (the clipboard as «class furl»)`)
	if err != nil || out == "" {
		return nil, nil
	}
	return []string{out}, nil
}

// osWriteFile places a file reference on the pasteboard. The path is
// interpolated into AppleScript source, so it must already have passed
// ValidatePath and gets escaped here.
func osWriteFile(path string) error {
	script := fmt.Sprintf(`set the clipboard to POSIX file "%s"`, EscapeForScript(path))
	_, err := runOSAScript(script)
	return err
}
