package main

import (
	"runtime"

	"github.com/go-vgo/robotgo"

	"github.com/DuarteFaria/clipz/clipback"
)

// synthesizePaste taps the platform paste chord so a selected entry
// lands directly in the focused application. Needs Accessibility access
// on macOS; if the user declines, selection still works and they paste
// by hand.
func synthesizePaste() {
	if !clipback.HasInputPermission() {
		if !clipback.RequestInputPermission() {
			logger.Warn("input permission denied, skipping auto-paste")
			return
		}
	}
	if err := robotgo.KeyTap("v", pasteModifier()); err != nil {
		logger.Warn("failed to synthesize paste", "error", err)
	}
}

func pasteModifier() string {
	if runtime.GOOS == "darwin" {
		return "cmd"
	}
	return "ctrl"
}
