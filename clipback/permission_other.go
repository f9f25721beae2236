//go:build !darwin

package clipback

// HasInputPermission reports whether the process may synthesize keyboard
// events. Outside macOS there is no explicit permission gate; input
// synthesis works whenever a display server is reachable.
func HasInputPermission() bool {
	return true
}

// RequestInputPermission is a no-op outside macOS.
func RequestInputPermission() bool {
	return true
}
