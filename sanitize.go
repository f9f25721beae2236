package main

import (
	"strings"
	"unicode"
)

// sanitizeClipboardText strips control, format, surrogate, private-use,
// and non-character runes from captured text so hostile payloads cannot
// smuggle terminal escapes or zero-width junk into the history. LF and
// TAB survive; content is otherwise preserved so entries round-trip back
// to the clipboard unchanged.
func sanitizeClipboardText(input string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			return -1
		}
		if unicode.Is(unicode.Cf, r) {
			return -1
		}
		if unicode.Is(unicode.Cs, r) || unicode.Is(unicode.Co, r) {
			return -1
		}
		if r >= 0xFDD0 && r <= 0xFDEF {
			return -1
		}
		if r&0xFFFE == 0xFFFE {
			return -1
		}
		return r
	}, input)
}
