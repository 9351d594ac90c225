package bitpack

import (
	"math"
	"testing"
)

func sampleAggregateForTest() Aggregate {
	return Aggregate{
		A:                    1,
		B:                    -2,
		C:                    150,
		D:                    55,
		E:                    255,
		F:                    127,
		Flag:                 true,
		Items:                []uint64{10, 11, 12, 13, 14},
		FloatValue:           3.1415926,
		CompressedFloatValue: 2.13,
		DoubleValue:          1.0 / 3.0,
		Uint64Value:          0x1234567898765432,
		RelativeCurrent:      5,
		Payload:              [17]byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17},
		Text:                 "Hello, Sailor!",
	}
}

func encodeAggregate(t *testing.T, a *Aggregate, buf []byte) *BitWriter {
	t.Helper()
	var w BitWriter
	w.Init(buf)
	stream := NewWriteStream(&w)
	if !a.Serialize(stream) {
		t.Fatalf("encode rejected a well-formed aggregate")
	}
	w.Flush()
	return &w
}

func TestAggregateRoundTrip(t *testing.T) {
	source := sampleAggregateForTest()
	buf := make([]byte, 1024)
	w := encodeAggregate(t, &source, buf)

	var r BitReader
	r.Init(buf)
	stream := NewReadStream(&r)

	var decoded Aggregate
	if !decoded.Serialize(stream) {
		t.Fatalf("decode rejected a well-formed frame")
	}

	if decoded.A != source.A || decoded.B != source.B || decoded.C != source.C {
		t.Errorf("ranged ints: got {%d,%d,%d}, want {%d,%d,%d}", decoded.A, decoded.B, decoded.C, source.A, source.B, source.C)
	}
	if decoded.D != source.D || decoded.E != source.E || decoded.F != source.F {
		t.Errorf("raw bits: got {%d,%d,%d}, want {%d,%d,%d}", decoded.D, decoded.E, decoded.F, source.D, source.E, source.F)
	}
	if decoded.Flag != source.Flag {
		t.Errorf("Flag = %v, want %v", decoded.Flag, source.Flag)
	}
	if len(decoded.Items) != len(source.Items) {
		t.Fatalf("len(Items) = %d, want %d", len(decoded.Items), len(source.Items))
	}
	for i := range source.Items {
		if decoded.Items[i] != source.Items[i] {
			t.Errorf("Items[%d] = %d, want %d", i, decoded.Items[i], source.Items[i])
		}
	}
	if decoded.FloatValue != source.FloatValue {
		t.Errorf("FloatValue = %v, want %v", decoded.FloatValue, source.FloatValue)
	}
	if diff := math.Abs(decoded.CompressedFloatValue - 2.13); diff > 0.005 {
		t.Errorf("CompressedFloatValue = %v, diff %v exceeds resolution/2", decoded.CompressedFloatValue, diff)
	}
	if decoded.DoubleValue != source.DoubleValue {
		t.Errorf("DoubleValue = %v, want %v", decoded.DoubleValue, source.DoubleValue)
	}
	if decoded.Uint64Value != source.Uint64Value {
		t.Errorf("Uint64Value = %#x, want %#x", decoded.Uint64Value, source.Uint64Value)
	}
	if decoded.RelativeCurrent != source.RelativeCurrent {
		t.Errorf("RelativeCurrent = %d, want %d", decoded.RelativeCurrent, source.RelativeCurrent)
	}
	if decoded.Payload != source.Payload {
		t.Errorf("Payload = %v, want %v", decoded.Payload, source.Payload)
	}
	if decoded.Text != source.Text {
		t.Errorf("Text = %q, want %q", decoded.Text, source.Text)
	}

	if got, want := w.BitsWritten(), r.BitsRead(); got != want {
		t.Errorf("bits_written %d != bits_read %d", got, want)
	}
	if got, want := w.BytesWritten(), bytesNeeded(w.BitsWritten()); got != want {
		t.Errorf("bytes_written %d != ceil(bits_written/8) %d", got, want)
	}
}

func TestAggregateMeasureWithinToleranceOfWriter(t *testing.T) {
	source := sampleAggregateForTest()
	buf := make([]byte, 1024)
	w := encodeAggregate(t, &source, buf)

	measure := NewMeasureStream()
	measured := sampleAggregateForTest()
	if !measured.Serialize(measure) {
		t.Fatalf("measure pass rejected a well-formed aggregate")
	}

	writerBits := w.BitsWritten()
	measuredBits := measure.BitsProcessed()
	if measuredBits < writerBits || measuredBits > writerBits+7 {
		t.Errorf("measured bits %d not within +0..+7 of writer bits %d", measuredBits, writerBits)
	}
}

func TestStreamAlignRejectsFlippedPadding(t *testing.T) {
	buf := make([]byte, 8)
	var w BitWriter
	w.Init(buf)
	ws := NewWriteStream(&w)
	v := uint64(1)
	if !ws.SerializeBits(&v, 1) {
		t.Fatal("encode of raw bit failed")
	}
	if !ws.SerializeAlign() {
		t.Fatal("encode align failed")
	}
	w.Flush()

	buf[0] |= 1 << 7 // one of the seven zero-padding bits following v

	var r BitReader
	r.Init(buf)
	rs := NewReadStream(&r)
	var got uint64
	if !rs.SerializeBits(&got, 1) {
		t.Fatal("decode of raw bit failed unexpectedly")
	}
	if rs.SerializeAlign() {
		t.Fatal("SerializeAlign accepted corrupted padding")
	}
}

func TestAggregateRejectsFlippedAlignmentPadding(t *testing.T) {
	source := sampleAggregateForTest()
	buf := make([]byte, 1024)
	encodeAggregate(t, &source, buf)

	// d, e, f occupy 6+8+7 = 21 raw bits immediately before the align call;
	// a, b, c precede those as ranged ints. Measuring just that prefix
	// locates the align call's padding exactly, rather than hardcoding a
	// byte offset against the aggregate's layout.
	prefix := NewMeasureStream()
	pa, pb, pc := source.A, source.B, source.C
	pd, pe, pf := source.D, source.E, source.F
	prefix.SerializeInt(&pa, -10, 10)
	prefix.SerializeInt(&pb, -10, 10)
	prefix.SerializeInt(&pc, -100, 10000)
	prefix.SerializeBits(&pd, 6)
	prefix.SerializeBits(&pe, 8)
	prefix.SerializeBits(&pf, 7)
	paddingBitOffset := prefix.BitsProcessed()

	byteIndex := paddingBitOffset / bitsPerByte
	bitInByte := uint(paddingBitOffset % bitsPerByte)
	buf[byteIndex] ^= 1 << bitInByte

	var r BitReader
	r.Init(buf)
	stream := NewReadStream(&r)
	var decoded Aggregate
	if decoded.Serialize(stream) {
		t.Fatal("decode accepted a frame with corrupted alignment padding")
	}
}

func TestAggregateRejectsOutOfRangeRangedInt(t *testing.T) {
	buf := make([]byte, 64)
	var w BitWriter
	w.Init(buf)

	// Hand-write a frame whose first ranged-int field (a in [-10,10], 5
	// bits) decodes to an offset that, after adding min, lands outside
	// [-10,10].
	w.WriteBits(31, 5) // 31 + (-10) == 21, outside [-10,10]
	w.Flush()

	var r BitReader
	r.Init(buf)
	stream := NewReadStream(&r)
	var v int64
	if stream.SerializeInt(&v, -10, 10) {
		t.Fatal("SerializeInt accepted a decoded value outside [min,max]")
	}
}
