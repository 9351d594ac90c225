package bitpack

// Aggregate is a worked example of a serialization routine written once
// against Stream and reused for writing, reading, and measuring: exactly
// the pattern §2 and §9 describe. It exercises every field encoder this
// package exposes, in the order a schema's author would naturally reach
// for them.
type Aggregate struct {
	A                    int64
	B                    int64
	C                    int64
	D                    uint64
	E                    uint64
	F                    uint64
	Flag                 bool
	Items                []uint64
	FloatValue           float32
	CompressedFloatValue float64
	DoubleValue          float64
	Uint64Value          uint64
	RelativeCurrent      int64
	Payload              [17]byte
	Text                 string
}

// MaxItems bounds Items the way num_items is bounded in Scenario C.
const MaxItems = 10

// TextMaxLength bounds Text the way Scenario C's string field is bounded.
const TextMaxLength = 256

// RelativePrevious is the anchor Scenario C's relative-int32 field encodes
// RelativeCurrent against.
const RelativePrevious = 1

// Serialize drives stream through every field of a in a fixed order. The
// same call sequence works whether stream is a write, read, or measure
// stream; on read, a false return means the frame was rejected and a must
// not be trusted beyond whatever fields were already populated before the
// failure.
func (a *Aggregate) Serialize(stream *Stream) bool {
	if !stream.SerializeInt(&a.A, -10, 10) {
		return false
	}
	if !stream.SerializeInt(&a.B, -10, 10) {
		return false
	}
	if !stream.SerializeInt(&a.C, -100, 10000) {
		return false
	}

	if !stream.SerializeBits(&a.D, 6) {
		return false
	}
	if !stream.SerializeBits(&a.E, 8) {
		return false
	}
	if !stream.SerializeBits(&a.F, 7) {
		return false
	}

	if !stream.SerializeAlign() {
		return false
	}

	if !stream.SerializeBool(&a.Flag) {
		return false
	}

	numItems := int64(len(a.Items))
	if !stream.SerializeInt(&numItems, 0, MaxItems) {
		return false
	}
	if stream.Mode() == ReadMode {
		a.Items = make([]uint64, numItems)
	}
	for i := range a.Items {
		if !stream.SerializeBits(&a.Items[i], 8) {
			return false
		}
	}

	if !stream.SerializeFloat32(&a.FloatValue) {
		return false
	}
	if !stream.SerializeCompressedFloat(&a.CompressedFloatValue, 0, 10, 0.01) {
		return false
	}
	if !stream.SerializeFloat64(&a.DoubleValue) {
		return false
	}
	if !stream.SerializeBits(&a.Uint64Value, 64) {
		return false
	}

	if !stream.SerializeInt32Relative(RelativePrevious, &a.RelativeCurrent) {
		return false
	}

	if !stream.SerializeBytes(a.Payload[:]) {
		return false
	}

	if !stream.SerializeString(&a.Text, TextMaxLength, nil) {
		return false
	}

	return true
}
