// Package capture acquires global keyboard press/release events from the
// operating system. The mechanism runs on its own thread and invokes the
// emit callback one event at a time, in arrival order.
package capture

import (
	"context"
	"errors"
)

// Direction reports whether a raw event is a press or a release.
type Direction int

const (
	Press Direction = iota
	Release
)

// RawEvent is one press/release notification keyed by the platform's raw
// key identifier. Ephemeral: consumed immediately, never persisted.
type RawEvent struct {
	Identifier string
	Direction  Direction
}

// Source delivers raw keyboard events. Stream blocks until ctx is canceled
// or the source fails. Callers must treat emit invocations as arriving on a
// foreign thread outside their scheduler.
type Source interface {
	Stream(ctx context.Context, emit func(RawEvent)) error
}

// SourceFunc adapts a function literal to the Source interface.
type SourceFunc func(ctx context.Context, emit func(RawEvent)) error

// Stream calls the underlying function.
func (f SourceFunc) Stream(ctx context.Context, emit func(RawEvent)) error {
	return f(ctx, emit)
}

// ErrPermission indicates the host has not granted the OS permission the
// capture mechanism needs (macOS Accessibility trust).
var ErrPermission = errors.New("keyboard capture requires macOS accessibility permission")

// ErrUnsupported indicates no capture backend exists for this platform.
var ErrUnsupported = errors.New("global keyboard capture is not supported on this platform")
