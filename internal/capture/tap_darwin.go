//go:build darwin

package capture

/*
#cgo darwin LDFLAGS: -framework CoreGraphics -framework ApplicationServices
#include <ApplicationServices/ApplicationServices.h>
#include <CoreFoundation/CoreFoundation.h>
#include <stdint.h>

static Boolean axCheckTrusted(void) {
        const void *keys[] = { kAXTrustedCheckOptionPrompt };
        const void *values[] = { kCFBooleanTrue };
        CFDictionaryRef options = CFDictionaryCreate(kCFAllocatorDefault, keys, values, 1,
                                                     &kCFTypeDictionaryKeyCallBacks,
                                                     &kCFTypeDictionaryValueCallBacks);
        Boolean trusted = AXIsProcessTrustedWithOptions(options);
        CFRelease(options);
        return trusted;
}

extern CGEventRef goHandleKeyEvent(CGEventTapProxy proxy, CGEventType type, CGEventRef event, void *userInfo);

static CFRunLoopSourceRef startKeyTap(uintptr_t handle, CFMachPortRef *tapOut) {
        CGEventMask mask = CGEventMaskBit(kCGEventKeyDown) |
                           CGEventMaskBit(kCGEventKeyUp) |
                           CGEventMaskBit(kCGEventFlagsChanged);
        CFMachPortRef tap = CGEventTapCreate(kCGSessionEventTap,
                                             kCGHeadInsertEventTap,
                                             kCGEventTapOptionListenOnly,
                                             mask,
                                             goHandleKeyEvent,
                                             (void *)handle);
        if (tap == NULL) {
                return NULL;
        }
        CGEventTapEnable(tap, true);
        CFRunLoopSourceRef source = CFMachPortCreateRunLoopSource(kCFAllocatorDefault, tap, 0);
        *tapOut = tap;
        return source;
}

static CFRunLoopRef currentRunLoop(void) {
        return CFRunLoopGetCurrent();
}

static void addSourceToRunLoop(CFRunLoopRef loop, CFRunLoopSourceRef source) {
        CFRunLoopAddSource(loop, source, kCFRunLoopCommonModes);
}

static void runCurrentRunLoop(void) {
        CFRunLoopRun();
}

static void stopRunLoop(CFRunLoopRef loop) {
        CFRunLoopStop(loop);
}

static void releaseKeyTap(CFMachPortRef tap, CFRunLoopSourceRef source) {
        if (source != NULL) {
                CFRelease(source);
        }
        if (tap != NULL) {
                CGEventTapEnable(tap, false);
                CFRelease(tap);
        }
}
*/
import "C"

import (
	"context"
	"errors"
	"runtime"
	"runtime/cgo"
	"sync"
)

// NewSource returns a listen-only CGEventTap keyboard source. Requires the
// host process to be trusted for Accessibility.
func NewSource() Source {
	return tapSource{}
}

type tapSource struct{}

// tapStream is only touched from the tap's run-loop thread.
type tapStream struct {
	emit func(RawEvent)
	held map[int64]bool
}

func (tapSource) Stream(ctx context.Context, emit func(RawEvent)) error {
	if C.axCheckTrusted() == C.Boolean(0) {
		return ErrPermission
	}
	if ctx == nil {
		ctx = context.Background()
	}

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	stream := &tapStream{emit: emit, held: make(map[int64]bool)}
	handle := cgo.NewHandle(stream)
	defer handle.Delete()

	var tap C.CFMachPortRef
	source := C.startKeyTap(C.uintptr_t(handle), &tap)
	if source == nil {
		return errors.New("failed to create CGEvent tap")
	}
	defer C.releaseKeyTap(tap, source)

	loop := C.currentRunLoop()
	C.addSourceToRunLoop(loop, source)

	var stopOnce sync.Once
	stop := func() {
		stopOnce.Do(func() { C.stopRunLoop(loop) })
	}
	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			stop()
		case <-done:
		}
	}()

	C.runCurrentRunLoop()
	close(done)
	return ctx.Err()
}

// keycodeNames maps macOS virtual keycodes (ANSI layout) to the raw
// identifiers the classifier understands.
var keycodeNames = map[int64]string{
	0: "a", 1: "s", 2: "d", 3: "f", 4: "h", 5: "g", 6: "z", 7: "x",
	8: "c", 9: "v", 11: "b", 12: "q", 13: "w", 14: "e", 15: "r",
	16: "y", 17: "t", 18: "1", 19: "2", 20: "3", 21: "4", 22: "6",
	23: "5", 24: "=", 25: "9", 26: "7", 27: "-", 28: "8", 29: "0",
	30: "]", 31: "o", 32: "u", 33: "[", 34: "i", 35: "p", 37: "l",
	38: "j", 39: "'", 40: "k", 41: ";", 42: "\\", 43: ",", 44: "/",
	45: "n", 46: "m", 47: ".", 50: "`",

	36: "enter", 48: "tab", 49: "space", 51: "backspace", 53: "esc",
	117: "delete", 123: "left", 124: "right", 125: "down", 126: "up",

	122: "f1", 120: "f2", 99: "f3", 118: "f4", 96: "f5", 97: "f6",
	98: "f7", 100: "f8", 101: "f9", 109: "f10", 103: "f11", 111: "f12",

	54: "cmd_r", 55: "cmd_l", 56: "shift_l", 57: "caps_lock",
	58: "alt_l", 59: "ctrl_l", 60: "shift_r", 61: "alt_r", 62: "ctrl_r",
}
