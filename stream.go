package bitpack

import "github.com/chronos-tachyon/assert"

// Stream is a tagged union over a BitWriter, a BitReader, or a
// MeasureStream. User serialization routines are written once against
// Stream's SerializeX methods and produce, read, or measure a value
// depending only on which constructor built the Stream.
//
// A Stream is a uniquely-owned value; it must not be shared across
// goroutines, and its underlying buffer (if any) must not be mutated by
// anything else while the Stream is in use.
type Stream struct {
	mode    StreamMode
	writer  *BitWriter
	reader  *BitReader
	measure *MeasureStream
	tracers []Tracer
}

// MeasureStream accumulates the bit cost a schema would incur if it were
// applied to some concrete value, without performing any I/O. It never
// fails.
type MeasureStream struct {
	bitsCounted uint64
}

// BitsCounted returns the number of bits accumulated so far.
func (m *MeasureStream) BitsCounted() uint64 {
	return m.bitsCounted
}

// NewWriteStream returns a Stream in WriteMode backed by w.
func NewWriteStream(w *BitWriter, tracers ...Tracer) *Stream {
	assert.NotNil(&w)
	return &Stream{mode: WriteMode, writer: w, tracers: tracers}
}

// NewReadStream returns a Stream in ReadMode backed by r.
func NewReadStream(r *BitReader, tracers ...Tracer) *Stream {
	assert.NotNil(&r)
	return &Stream{mode: ReadMode, reader: r, tracers: tracers}
}

// NewMeasureStream returns a Stream in MeasureMode backed by a fresh
// MeasureStream counter.
func NewMeasureStream(tracers ...Tracer) *Stream {
	return &Stream{mode: MeasureMode, measure: &MeasureStream{}, tracers: tracers}
}

// Mode returns the stream's StreamMode.
func (s *Stream) Mode() StreamMode {
	return s.mode
}

// Writer returns the underlying BitWriter, or nil if Mode() != WriteMode.
func (s *Stream) Writer() *BitWriter {
	return s.writer
}

// Reader returns the underlying BitReader, or nil if Mode() != ReadMode.
func (s *Stream) Reader() *BitReader {
	return s.reader
}

// Measure returns the underlying MeasureStream, or nil if Mode() != MeasureMode.
func (s *Stream) Measure() *MeasureStream {
	return s.measure
}

// BitsProcessed returns the cumulative bit count for whichever mode the
// stream is in: bits written, bits read, or bits measured.
func (s *Stream) BitsProcessed() uint64 {
	switch s.mode {
	case WriteMode:
		return s.writer.BitsWritten()
	case ReadMode:
		return s.reader.BitsRead()
	default:
		return s.measure.bitsCounted
	}
}

// BytesProcessed returns ceil(BitsProcessed() / 8).
func (s *Stream) BytesProcessed() uint64 {
	return bytesNeeded(s.BitsProcessed())
}

// AlignBits returns the number of padding bits SerializeAlign would
// consume or emit right now. In MeasureMode this is always the
// conservative worst case of 7, per the documented open question in the
// original source; see SPEC_FULL.md §B.4.
func (s *Stream) AlignBits() uint {
	switch s.mode {
	case WriteMode:
		return s.writer.AlignBits()
	case ReadMode:
		return s.reader.AlignBits()
	default:
		return bitsPerByte - 1
	}
}

// rawBits is the mode-dispatch mechanism shared by every field encoder that
// moves raw bits. It emits no Event of its own; callers that want one
// report it themselves tagged with whichever FieldKind they represent, so
// a compound field (e.g. a ranged integer, built out of one rawBits call)
// produces exactly one Event rather than one per bit-mover call it happens
// to make internally.
func (s *Stream) rawBits(value *uint64, n uint) bool {
	assert.Assertf(n >= 1 && n <= 64, "n %d out of range [1,64]", n)

	switch s.mode {
	case WriteMode:
		lo := *value & makeMask(minUint(n, bitsPerWord))
		s.writer.WriteBits(lo, minUint(n, bitsPerWord))
		if n > bitsPerWord {
			hi := (*value >> bitsPerWord) & makeMask(n-bitsPerWord)
			s.writer.WriteBits(hi, n-bitsPerWord)
		}
		return true

	case ReadMode:
		loN := minUint(n, bitsPerWord)
		if s.reader.WouldReadPastEnd(loN) {
			return false
		}
		lo := s.reader.ReadBits(loN)
		result := lo
		if n > bitsPerWord {
			hiN := n - bitsPerWord
			if s.reader.WouldReadPastEnd(hiN) {
				return false
			}
			hi := s.reader.ReadBits(hiN)
			result |= hi << bitsPerWord
		}
		*value = result
		return true

	default:
		s.measure.bitsCounted += uint64(n)
		return true
	}
}

// SerializeBits moves n bits (1 <= n <= 64) of *value between the stream
// and the caller, with no further interpretation. For n > 32 it splits into
// a low 32-bit half and an n-32-bit high half, matching the order
// BitWriter/BitReader operate in. It returns false if the operation would
// read past the end of a BitReader's declared capacity; callers must treat
// false as "reject the frame" and stop calling further SerializeX methods.
func (s *Stream) SerializeBits(value *uint64, n uint) bool {
	ok := s.rawBits(value, n)
	s.sendEvent(RawBitsField, n, ok, "")
	return ok
}

// rawBytes moves len(p) raw bytes between the stream and p without
// emitting an Event; see rawBits for why compound encoders call this
// instead of SerializeBytes directly. It aligns the stream first via the
// untraced align, so a field built out of rawBytes (e.g. String) controls
// its own Event without a spurious AlignField also being reported.
func (s *Stream) rawBytes(p []byte) bool {
	if !s.align() {
		return false
	}

	switch s.mode {
	case WriteMode:
		s.writer.WriteBytes(p)
		return true

	case ReadMode:
		if s.reader.WouldReadPastEnd(uint(len(p)) * bitsPerByte) {
			return false
		}
		s.reader.ReadBytes(p)
		return true

	default:
		s.measure.bitsCounted += uint64(len(p)) * bitsPerByte
		return true
	}
}

// SerializeBytes aligns the stream to a byte boundary (failing if the
// reader's padding bits are non-zero or would overrun capacity) and then
// moves len(p) bytes between the stream and p.
func (s *Stream) SerializeBytes(p []byte) bool {
	ok := s.rawBytes(p)
	s.sendEvent(BytesField, uint(len(p))*bitsPerByte, ok, "")
	return ok
}

// align pads (write), consumes-and-verifies (read), or conservatively
// estimates (measure) the bits needed to reach the next byte boundary,
// without emitting an Event. See SerializeAlign for the traced, caller-
// facing form.
func (s *Stream) align() bool {
	switch s.mode {
	case WriteMode:
		s.writer.Align()
		return true

	case ReadMode:
		n := s.reader.AlignBits()
		if s.reader.WouldReadPastEnd(n) {
			return false
		}
		return s.reader.Align()

	default:
		s.measure.bitsCounted += uint64(bitsPerByte - 1)
		return true
	}
}

// SerializeAlign pads (write), consumes-and-verifies (read), or
// conservatively estimates (measure) the bits needed to reach the next
// byte boundary. On read it returns false if the padding bits are not all
// zero, or if consuming them would overrun capacity — either case means
// the frame is corrupt or malicious.
func (s *Stream) SerializeAlign() bool {
	n := s.AlignBits()
	ok := s.align()
	s.sendEvent(AlignField, n, ok, "")
	return ok
}

func minUint(a, b uint) uint {
	if a < b {
		return a
	}
	return b
}
