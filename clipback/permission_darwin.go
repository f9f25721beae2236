//go:build darwin

package clipback

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework ApplicationServices
#include <ApplicationServices/ApplicationServices.h>

bool clipz_is_process_trusted() {
    return AXIsProcessTrusted();
}

bool clipz_request_accessibility_permission() {
    const void *keys[] = { kAXTrustedCheckOptionPrompt };
    const void *values[] = { kCFBooleanTrue };
    CFDictionaryRef options = CFDictionaryCreate(kCFAllocatorDefault,
        keys,
        values,
        1,
        &kCFTypeDictionaryKeyCallBacks,
        &kCFTypeDictionaryValueCallBacks);
    bool trusted = AXIsProcessTrustedWithOptions(options);
    CFRelease(options);
    return trusted;
}
*/
import "C"

// HasInputPermission reports whether the process may synthesize keyboard
// events. Auto-paste needs Accessibility access on macOS.
func HasInputPermission() bool {
	return bool(C.clipz_is_process_trusted())
}

// RequestInputPermission prompts the user for Accessibility access and
// reports the resulting state.
func RequestInputPermission() bool {
	return bool(C.clipz_request_accessibility_permission())
}
