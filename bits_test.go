package bitpack

import "testing"

func TestBitWriterBitReaderRoundTrip(t *testing.T) {
	type field struct {
		value uint64
		bits  uint
	}

	fields := []field{
		{0, 1},
		{1, 1},
		{10, 8},
		{255, 8},
		{1000, 10},
		{50000, 16},
		{9999999, 32},
	}

	buf := make([]byte, 256)
	var w BitWriter
	w.Init(buf)
	for _, f := range fields {
		w.WriteBits(f.value, f.bits)
	}
	w.Flush()

	if got, want := w.BitsWritten(), uint64(76); got != want {
		t.Fatalf("BitsWritten() = %d, want %d", got, want)
	}
	if got, want := w.BytesWritten(), uint64(10); got != want {
		t.Fatalf("BytesWritten() = %d, want %d", got, want)
	}

	var r BitReader
	r.Init(buf)
	for i, f := range fields {
		got := r.ReadBits(f.bits)
		if got != f.value {
			t.Errorf("field %d: ReadBits(%d) = %d, want %d", i, f.bits, got, f.value)
		}
	}
}

func TestBitWriterBitReaderWriteBytesBoundary(t *testing.T) {
	payload := []byte("an arbitrary byte payload crossing several words")

	buf := make([]byte, 128)
	var w BitWriter
	w.Init(buf)
	w.WriteBits(0b101, 3)
	w.Align()
	w.WriteBytes(payload)
	w.Flush()

	var r BitReader
	r.Init(buf)
	if got := r.ReadBits(3); got != 0b101 {
		t.Fatalf("ReadBits(3) = %d, want 5", got)
	}
	if !r.Align() {
		t.Fatal("Align() rejected zero padding")
	}
	got := make([]byte, len(payload))
	r.ReadBytes(got)
	if string(got) != string(payload) {
		t.Fatalf("ReadBytes() = %q, want %q", got, payload)
	}
}

func TestBitWriterAlign(t *testing.T) {
	buf := make([]byte, 8)
	var w BitWriter
	w.Init(buf)
	w.WriteBits(0b11, 2)
	w.Align()
	if got := w.BitsWritten(); got != 8 {
		t.Fatalf("BitsWritten() after Align() = %d, want 8", got)
	}
	w.Align() // no-op when already aligned
	if got := w.BitsWritten(); got != 8 {
		t.Fatalf("BitsWritten() after second Align() = %d, want 8", got)
	}
}

func TestBitReaderAlignRejectsNonZeroPadding(t *testing.T) {
	buf := make([]byte, 4)
	var w BitWriter
	w.Init(buf)
	w.WriteBits(0b1, 1)
	w.Align()
	w.Flush()

	buf[0] |= 1 << 7 // flip a padding bit

	var r BitReader
	r.Init(buf)
	r.ReadBits(1)
	if r.Align() {
		t.Fatal("Align() accepted corrupted padding")
	}
}
