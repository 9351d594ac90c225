package bitpack

import (
	"fmt"

	"github.com/chronos-tachyon/enumhelper"
)

// StreamMode indicates which of the three mode-dispatched behaviors a
// Stream exhibits: writing bits to a buffer, reading bits from a buffer, or
// only accumulating the bit cost a schema would incur.
type StreamMode byte

const (
	// WriteMode packs field values into an underlying BitWriter.
	WriteMode StreamMode = iota

	// ReadMode unpacks field values from an underlying BitReader.
	ReadMode

	// MeasureMode performs no I/O; it only counts the bits a schema would
	// consume if it were applied to a concrete value.
	MeasureMode
)

var streamModeData = []enumhelper.EnumData{
	{GoName: "WriteMode", Name: "write"},
	{GoName: "ReadMode", Name: "read"},
	{GoName: "MeasureMode", Name: "measure"},
}

// IsValid returns true if m is a valid StreamMode constant.
func (m StreamMode) IsValid() bool {
	return m >= WriteMode && m <= MeasureMode
}

// GoString returns the Go string representation of this StreamMode constant.
func (m StreamMode) GoString() string {
	return enumhelper.DereferenceEnumData("StreamMode", streamModeData, uint(m)).GoName
}

// String returns the string representation of this StreamMode constant.
func (m StreamMode) String() string {
	return enumhelper.DereferenceEnumData("StreamMode", streamModeData, uint(m)).Name
}

// MarshalJSON returns the JSON representation of this StreamMode constant.
func (m StreamMode) MarshalJSON() ([]byte, error) {
	return enumhelper.MarshalEnumToJSON("StreamMode", streamModeData, uint(m))
}

var _ fmt.GoStringer = StreamMode(0)
var _ fmt.Stringer = StreamMode(0)
