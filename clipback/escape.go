package clipback

import (
	"errors"
	"strings"
)

const maxPathLen = 1024

var (
	errPathNUL       = errors.New("path contains NUL byte")
	errPathTraversal = errors.New("path contains parent traversal")
	errPathTooLong   = errors.New("path too long")
)

// ValidatePath rejects paths that must never reach OS-level scripting:
// NUL bytes, ".." traversal segments, and unreasonable lengths.
func ValidatePath(path string) error {
	if strings.ContainsRune(path, 0) {
		return errPathNUL
	}
	if len(path) > maxPathLen {
		return errPathTooLong
	}
	for _, seg := range strings.Split(path, "/") {
		if seg == ".." {
			return errPathTraversal
		}
	}
	return nil
}

// EscapeForScript escapes text for interpolation into a double-quoted
// AppleScript string literal: backslashes, quotes, and the control
// characters that would otherwise terminate or mangle the script source.
func EscapeForScript(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 {
				continue
			}
			b.WriteRune(r)
		}
	}
	return b.String()
}
