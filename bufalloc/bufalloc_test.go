package bufalloc

import "testing"

func TestNewWriterBufferRoundsUpToWords(t *testing.T) {
	rows := []struct {
		capacityBits uint
		wantLen      int
	}{
		{0, 4},
		{1, 4},
		{32, 4},
		{33, 8},
		{76, 12},
	}

	for _, row := range rows {
		buf := NewWriterBuffer(row.capacityBits)
		if len(buf) != row.wantLen {
			t.Errorf("NewWriterBuffer(%d) len = %d, want %d", row.capacityBits, len(buf), row.wantLen)
		}
		if len(buf)%bytesPerWord != 0 {
			t.Errorf("NewWriterBuffer(%d) len = %d, not a multiple of %d", row.capacityBits, len(buf), bytesPerWord)
		}
	}
}

func TestGrowPreservesContents(t *testing.T) {
	buf := NewWriterBuffer(32)
	for i := range buf {
		buf[i] = byte(i + 1)
	}

	grown := Grow(buf, 64)
	if len(grown) < len(buf)+8 {
		t.Fatalf("Grow() len = %d, want at least %d", len(grown), len(buf)+8)
	}
	for i, b := range buf {
		if grown[i] != b {
			t.Errorf("grown[%d] = %d, want %d", i, grown[i], b)
		}
	}
}
