//go:build darwin

package capture

/*
#include <ApplicationServices/ApplicationServices.h>
*/
import "C"

import (
	"runtime/cgo"
	"unsafe"
)

//export goHandleKeyEvent
func goHandleKeyEvent(_ C.CGEventTapProxy, eventType C.CGEventType, event C.CGEventRef, userInfo unsafe.Pointer) C.CGEventRef {
	handle := cgo.Handle(uintptr(userInfo))
	stream, ok := handle.Value().(*tapStream)
	if !ok {
		return event
	}

	keycode := int64(C.CGEventGetIntegerValueField(event, C.kCGKeyboardEventKeycode))
	name, ok := keycodeNames[keycode]
	if !ok {
		return event
	}

	switch eventType {
	case C.kCGEventKeyDown:
		stream.emit(RawEvent{Identifier: name, Direction: Press})
	case C.kCGEventKeyUp:
		stream.emit(RawEvent{Identifier: name, Direction: Release})
	case C.kCGEventFlagsChanged:
		// FlagsChanged carries no direction; alternate per keycode.
		if stream.held[keycode] {
			delete(stream.held, keycode)
			stream.emit(RawEvent{Identifier: name, Direction: Release})
		} else {
			stream.held[keycode] = true
			stream.emit(RawEvent{Identifier: name, Direction: Press})
		}
	}
	return event
}
