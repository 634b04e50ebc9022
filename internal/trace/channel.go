package trace

import "sync"

// ChannelTracer forwards events to a channel for live consumers such as
// the demo UI. Sends never block: when the consumer falls behind, events
// are dropped rather than stalling the evaluator.
type ChannelTracer struct {
	ch    chan Event
	level Level
	once  sync.Once
}

// NewChannelTracer creates a ChannelTracer with the given buffer size.
func NewChannelTracer(buffer int, level Level) *ChannelTracer {
	if buffer <= 0 {
		buffer = 256
	}
	return &ChannelTracer{ch: make(chan Event, buffer), level: level}
}

// Events exposes the receive side of the channel. It is closed by Close.
func (t *ChannelTracer) Events() <-chan Event {
	return t.ch
}

// Emit implements Tracer.
func (t *ChannelTracer) Emit(ev Event) {
	if !t.level.ShouldEmit(ev.Scope) {
		return
	}
	stamp(&ev)
	select {
	case t.ch <- ev:
	default:
	}
}

// Flush is a no-op; the channel carries events as they happen.
func (t *ChannelTracer) Flush() error { return nil }

// Close closes the event channel. Safe to call more than once.
func (t *ChannelTracer) Close() error {
	t.once.Do(func() { close(t.ch) })
	return nil
}

// Level returns the current tracing level.
func (t *ChannelTracer) Level() Level {
	return t.level
}

// Enabled returns true if tracing is active.
func (t *ChannelTracer) Enabled() bool {
	return t.level > LevelOff
}
