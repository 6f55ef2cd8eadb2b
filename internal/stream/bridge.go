package stream

import (
	"context"

	"github.com/rs/zerolog"

	"keywave/internal/capture"
	"keywave/internal/keymap"
	"keywave/pkg/types"
)

// Publisher receives encoded messages for fan-out. Implementations must be
// safe to call from the capture thread and must not block on subscriber I/O.
type Publisher interface {
	Broadcast(msg types.WireMessage)
}

// Bridge adapts the capture mechanism's callback stream into publisher
// broadcasts. Raw events run classify -> tracker -> encode -> publish
// strictly in arrival order on the capture thread; the publisher is the
// single crossing point into the serving domain, so no hub or tracker state
// is shared with it directly.
type Bridge struct {
	mods *ModifierTracker
	enc  *Encoder
	pub  Publisher
	log  zerolog.Logger
}

func NewBridge(pub Publisher, log zerolog.Logger) *Bridge {
	return &Bridge{
		mods: NewModifierTracker(),
		enc:  NewEncoder(nil),
		pub:  pub,
		log:  log,
	}
}

// Run attaches the bridge to src and blocks until the source stops. A
// source that cannot start (missing OS permission) returns its error here,
// to be reported once at startup.
func (b *Bridge) Run(ctx context.Context, src capture.Source) error {
	return src.Stream(ctx, b.Handle)
}

// Handle processes one raw event. A failure while handling a single event
// is logged and swallowed: one bad event must not silence the rest of the
// capture stream.
func (b *Bridge) Handle(ev capture.RawEvent) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error().Interface("panic", r).Str("key", ev.Identifier).Msg("key event dropped")
		}
	}()

	pressed := ev.Direction == capture.Press
	c := keymap.Classify(ev.Identifier)
	switch c.Kind {
	case keymap.Modifier:
		state := b.mods.Apply(c.Modifier, pressed)
		b.pub.Broadcast(b.enc.Modifier(c.Modifier, state))
		eventsTotal.WithLabelValues("modifier").Inc()
	case keymap.Key:
		b.pub.Broadcast(b.enc.Key(c.Name, pressed, b.mods.Snapshot()))
		eventsTotal.WithLabelValues("key").Inc()
	default:
		eventsTotal.WithLabelValues("ignored").Inc()
	}
}
