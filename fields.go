package bitpack

import (
	"math"

	"github.com/chronos-tachyon/assert"
)

// Literal bucket boundaries for the relative int32 cascade. These are part
// of the wire format; changing any of them breaks compatibility with
// anything already encoded.
const (
	relBucket1Max = 1
	relBucket2Max = 6
	relBucket3Max = 23
	relBucket4Max = 280
	relBucket5Max = 4377
	relBucket6Max = 69914
)

// rangedInt is the mechanism behind SerializeInt, shared with the relative
// int32 cascade and the string length prefix so that neither produces an
// extra Event of its own. On write and measure, *v must already satisfy
// min <= *v <= max. On read, a decoded value outside [min,max] is treated
// as a rejected frame rather than a programmer error, since it may be the
// result of malicious or corrupt input.
func (s *Stream) rangedInt(v *int64, min, max int64) bool {
	assert.Assertf(min <= max, "min %d exceeds max %d", min, max)
	b := BitsRequired(min, max)

	var val uint64
	if s.mode == WriteMode || s.mode == MeasureMode {
		assert.Assertf(*v >= min && *v <= max, "value %d out of range [%d,%d]", *v, min, max)
		val = uint64(*v) - uint64(min)
	}

	ok := s.rawBits(&val, b)
	if ok && s.mode == ReadMode {
		newVal := int64(uint64(min) + val)
		if newVal < min || newVal > max {
			return false
		}
		*v = newVal
	}
	return ok
}

// SerializeInt serializes *v as a ranged integer using the smallest number
// of bits that can represent every value in [min,max]. On write, *v must
// already lie in [min,max]. On read, a decoded value outside [min,max]
// causes SerializeInt to return false without mutating *v.
func (s *Stream) SerializeInt(v *int64, min, max int64) bool {
	ok := s.rangedInt(v, min, max)
	s.sendEvent(RangedIntField, BitsRequired(min, max), ok, "")
	return ok
}

// SerializeBool serializes *v as a single bit.
func (s *Stream) SerializeBool(v *bool) bool {
	var val uint64
	if (s.mode == WriteMode || s.mode == MeasureMode) && *v {
		val = 1
	}

	ok := s.rawBits(&val, 1)
	if ok && s.mode == ReadMode {
		*v = val != 0
	}
	s.sendEvent(BoolField, 1, ok, "")
	return ok
}

// SerializeFloat32 serializes *v as a byte-preserving copy of its IEEE-754
// bit pattern, 32 bits wide.
func (s *Stream) SerializeFloat32(v *float32) bool {
	var val uint64
	if s.mode == WriteMode || s.mode == MeasureMode {
		val = uint64(math.Float32bits(*v))
	}

	ok := s.rawBits(&val, bitsPerWord)
	if ok && s.mode == ReadMode {
		*v = math.Float32frombits(uint32(val))
	}
	s.sendEvent(Float32Field, bitsPerWord, ok, "")
	return ok
}

// SerializeFloat64 serializes *v as a byte-preserving copy of its IEEE-754
// bit pattern, 64 bits wide.
func (s *Stream) SerializeFloat64(v *float64) bool {
	var val uint64
	if s.mode == WriteMode || s.mode == MeasureMode {
		val = math.Float64bits(*v)
	}

	ok := s.rawBits(&val, 64)
	if ok && s.mode == ReadMode {
		*v = math.Float64frombits(val)
	}
	s.sendEvent(Float64Field, 64, ok, "")
	return ok
}

// SerializeCompressedFloat quantizes *v onto a regular grid of
// ceil((max-min)/resolution) steps spanning [min,max] and serializes the
// resulting index as a ranged integer. On write, values outside [min,max]
// are clamped rather than rejected. Round-trip error is bounded by
// resolution/2 within the clamped interval.
func (s *Stream) SerializeCompressedFloat(v *float64, min, max, resolution float64) bool {
	assert.Assertf(max > min, "max %g must exceed min %g", max, min)
	assert.Assertf(resolution > 0, "resolution %g must be positive", resolution)

	delta := max - min
	steps := uint64(math.Ceil(delta / resolution))
	b := BitsRequired(0, int64(steps))

	var idx int64
	if s.mode == WriteMode || s.mode == MeasureMode {
		x := (*v - min) / delta
		switch {
		case x < 0:
			x = 0
		case x > 1:
			x = 1
		}
		idx = int64(math.Floor(x*float64(steps) + 0.5))
	}

	ok := s.rangedInt(&idx, 0, int64(steps))
	if ok && s.mode == ReadMode {
		*v = (float64(idx)/float64(steps))*delta + min
	}
	s.sendEvent(CompressedFloatField, b, ok, "")
	return ok
}

// SerializeString serializes *v as a ranged-integer length prefix in
// [0,maxLength] followed by its raw bytes. On read, the destination byte
// slice for the decoded string is obtained from alloc, the sole allocation
// performed anywhere in this package; pass nil to use DefaultStringAllocator.
func (s *Stream) SerializeString(v *string, maxLength int, alloc StringAllocator) bool {
	assert.Assertf(maxLength >= 0, "maxLength %d must be non-negative", maxLength)
	if alloc == nil {
		alloc = DefaultStringAllocator
	}

	var length int64
	if s.mode == WriteMode || s.mode == MeasureMode {
		assert.Assertf(len(*v) <= maxLength, "string length %d exceeds maxLength %d", len(*v), maxLength)
		length = int64(len(*v))
	}

	ok := s.rangedInt(&length, 0, int64(maxLength))
	bitsForField := BitsRequired(0, int64(maxLength))
	if !ok {
		s.sendEvent(StringField, bitsForField, false, "length prefix rejected")
		return false
	}

	switch s.mode {
	case WriteMode:
		ok = s.rawBytes([]byte(*v))
	case ReadMode:
		buf := alloc.AllocBytes(int(length))
		ok = s.rawBytes(buf)
		if ok {
			*v = string(buf)
		}
	default:
		ok = s.align()
		if ok {
			s.measure.bitsCounted += uint64(length) * bitsPerByte
		}
	}

	bitsForField += uint(length) * bitsPerByte
	s.sendEvent(StringField, bitsForField, ok, "")
	return ok
}

// encodeRelativeInt32 writes (write mode) or counts (measure mode) the
// cascading bucket encoding of current-previous. current must exceed
// previous. It reports the number of bits the encoding occupied.
func (s *Stream) encodeRelativeInt32(previous, current int64) (bool, uint) {
	assert.Assertf(current > previous, "current %d must exceed previous %d", current, previous)
	d := current - previous

	bit := func(v uint64) bool { return s.rawBits(&v, 1) }

	switch {
	case d == relBucket1Max:
		ok := bit(1)
		return ok, 1

	case d <= relBucket2Max:
		ok := bit(0) && bit(1)
		payload := d
		ok = ok && s.rangedInt(&payload, 2, relBucket2Max)
		return ok, 2 + BitsRequired(2, relBucket2Max)

	case d <= relBucket3Max:
		ok := bit(0) && bit(0) && bit(1)
		payload := d
		ok = ok && s.rangedInt(&payload, relBucket2Max+1, relBucket3Max)
		return ok, 3 + BitsRequired(relBucket2Max+1, relBucket3Max)

	case d <= relBucket4Max:
		ok := bit(0) && bit(0) && bit(0) && bit(1)
		payload := d
		ok = ok && s.rangedInt(&payload, relBucket3Max+1, relBucket4Max)
		return ok, 4 + BitsRequired(relBucket3Max+1, relBucket4Max)

	case d <= relBucket5Max:
		ok := bit(0) && bit(0) && bit(0) && bit(0) && bit(1)
		payload := d
		ok = ok && s.rangedInt(&payload, relBucket4Max+1, relBucket5Max)
		return ok, 5 + BitsRequired(relBucket4Max+1, relBucket5Max)

	case d <= relBucket6Max:
		ok := bit(0) && bit(0) && bit(0) && bit(0) && bit(0) && bit(1)
		payload := d
		ok = ok && s.rangedInt(&payload, relBucket5Max+1, relBucket6Max)
		return ok, 6 + BitsRequired(relBucket5Max+1, relBucket6Max)

	default:
		ok := bit(0) && bit(0) && bit(0) && bit(0) && bit(0) && bit(0)
		raw := uint64(uint32(current))
		ok = ok && s.rawBits(&raw, bitsPerWord)
		return ok, 6 + bitsPerWord
	}
}

// relativeInt32Bounds holds the [lo,hi] payload range for bucket rows 2..6,
// indexed by how many leading zero prefix bits preceded the terminating
// one bit (1..5).
var relativeInt32Bounds = [6][2]int64{
	{},
	{2, relBucket2Max},
	{relBucket2Max + 1, relBucket3Max},
	{relBucket3Max + 1, relBucket4Max},
	{relBucket4Max + 1, relBucket5Max},
	{relBucket5Max + 1, relBucket6Max},
}

// decodeRelativeInt32 reads the cascading bucket encoding written by
// encodeRelativeInt32 and reconstructs current from previous plus the
// decoded delta, or directly from the raw fallback literal.
func (s *Stream) decodeRelativeInt32(previous int64, current *int64) (bool, uint) {
	var bitsForField uint
	matched := -1

	for i := 0; i < 6; i++ {
		if s.reader.WouldReadPastEnd(1) {
			return false, bitsForField
		}
		var bit uint64
		s.rawBits(&bit, 1)
		bitsForField++
		if bit == 1 {
			matched = i
			break
		}
	}

	if matched == 0 {
		*current = previous + relBucket1Max
		return true, bitsForField
	}
	if matched > 0 {
		lo, hi := relativeInt32Bounds[matched][0], relativeInt32Bounds[matched][1]
		var d int64
		ok := s.rangedInt(&d, lo, hi)
		bitsForField += BitsRequired(lo, hi)
		if !ok {
			return false, bitsForField
		}
		*current = previous + d
		return true, bitsForField
	}

	// Fell through all six prefix bits as zero: fallback literal.
	if s.reader.WouldReadPastEnd(bitsPerWord) {
		return false, bitsForField
	}
	var raw uint64
	s.rawBits(&raw, bitsPerWord)
	bitsForField += bitsPerWord
	*current = int64(uint32(raw))
	return true, bitsForField
}

// SerializeInt32Relative encodes a strictly positive delta between previous
// and *current using a cascading bucket prefix that favors small deltas
// over a fixed-width literal. On write and measure, *current must exceed
// previous. On read, *current is populated from previous plus the decoded
// delta.
func (s *Stream) SerializeInt32Relative(previous int64, current *int64) bool {
	var ok bool
	var bitsForField uint
	if s.mode == ReadMode {
		ok, bitsForField = s.decodeRelativeInt32(previous, current)
	} else {
		ok, bitsForField = s.encodeRelativeInt32(previous, *current)
	}
	s.sendEvent(RelativeInt32Field, bitsForField, ok, "")
	return ok
}

// SerializeSequenceRelative serializes *b relative to anchor a as a
// wraparound-safe 16-bit sequence number, using the relative int32 cascade
// on an extended unsigned form that accounts for exactly one wrap. a is
// never mutated.
func (s *Stream) SerializeSequenceRelative(a uint16, b *uint16) bool {
	var extended int64
	if s.mode == WriteMode || s.mode == MeasureMode {
		bv := *b
		extended = int64(bv)
		if a > bv {
			extended += 1 << 16
		}
	}

	var ok bool
	var bitsForField uint
	if s.mode == ReadMode {
		ok, bitsForField = s.decodeRelativeInt32(int64(a), &extended)
		if ok {
			*b = uint16(uint64(extended) % (1 << 16))
		}
	} else {
		ok, bitsForField = s.encodeRelativeInt32(int64(a), extended)
	}

	s.sendEvent(SequenceRelativeField, bitsForField, ok, "")
	return ok
}
