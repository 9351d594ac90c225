package bitpack

import (
	"github.com/chronos-tachyon/assert"
	"github.com/rs/zerolog"
)

// Tracer is an interface callers can implement to receive Events as a
// Stream processes fields. Tracers never affect what bytes are written or
// accepted; they are purely observational.
type Tracer interface {
	OnEvent(Event)
}

// Event describes one field operation performed by a Stream.
type Event struct {
	Mode          StreamMode
	Kind          FieldKind
	BitsProcessed uint64
	BitsForField  uint
	Accepted      bool
	Reason        string
}

func (s *Stream) sendEvent(kind FieldKind, bitsForField uint, accepted bool, reason string) {
	if len(s.tracers) == 0 {
		return
	}
	event := Event{
		Mode:          s.mode,
		Kind:          kind,
		BitsProcessed: s.BitsProcessed(),
		BitsForField:  bitsForField,
		Accepted:      accepted,
		Reason:        reason,
	}
	for _, tr := range s.tracers {
		tr.OnEvent(event)
	}
}

// type NoOpTracer {{{

// NoOpTracer is a Tracer implementation that does nothing.
type NoOpTracer struct{}

// OnEvent fulfills Tracer.
func (NoOpTracer) OnEvent(Event) {}

var _ Tracer = NoOpTracer{}

// }}}

// type TracerFunc {{{

// TracerFunc is a Tracer implementation that calls a function.
type TracerFunc func(Event)

// OnEvent fulfills Tracer.
func (tr TracerFunc) OnEvent(event Event) {
	tr(event)
}

var _ Tracer = TracerFunc(nil)

// }}}

// type logTracer {{{

// Log returns a Tracer that logs one Trace-level event per field operation.
func Log(logger zerolog.Logger) Tracer {
	return logTracer{logger: logger}
}

type logTracer struct {
	logger zerolog.Logger
}

// OnEvent fulfills Tracer.
func (tr logTracer) OnEvent(event Event) {
	tr.logger.Trace().
		Interface("event", event).
		Msg("OnEvent")
}

var _ Tracer = logTracer{}

// }}}

// type captureLastEventTracer {{{

// CaptureLastEvent returns a Tracer that writes the most recently observed
// Event into *ptr, overwriting whatever was there before. Useful for
// surfacing the reason a decode was rejected.
func CaptureLastEvent(ptr *Event) Tracer {
	assert.NotNil(&ptr)
	return captureLastEventTracer{ptr: ptr}
}

type captureLastEventTracer struct {
	ptr *Event
}

// OnEvent fulfills Tracer.
func (tr captureLastEventTracer) OnEvent(event Event) {
	*tr.ptr = event
}

var _ Tracer = captureLastEventTracer{}

// }}}
