package bitpack

import (
	"io"
	"sync"

	"github.com/fxamacker/cbor/v2"
)

var dumpEncMode cbor.EncMode

func init() {
	var err error
	dumpEncMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("bitpack: cbor encoder initialization failed: " + err.Error())
	}
}

// type DumpTracer {{{

// DumpTracer CBOR-encodes each Event it observes to an underlying
// io.Writer, one deterministically-encoded item per event, for offline
// diffing of two serialization sessions. Unlike Log, it carries no
// human-readable formatting and is meant to be replayed by tooling rather
// than read directly.
type DumpTracer struct {
	mu  sync.Mutex
	enc *cbor.Encoder
	err error
}

// NewDumpTracer returns a DumpTracer that writes to w.
func NewDumpTracer(w io.Writer) *DumpTracer {
	return &DumpTracer{enc: dumpEncMode.NewEncoder(w)}
}

// OnEvent fulfills Tracer.
func (tr *DumpTracer) OnEvent(event Event) {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	if tr.err != nil {
		return
	}
	tr.err = tr.enc.Encode(event)
}

// Err returns the first error, if any, encountered while encoding events.
func (tr *DumpTracer) Err() error {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	return tr.err
}

var _ Tracer = (*DumpTracer)(nil)

// }}}
