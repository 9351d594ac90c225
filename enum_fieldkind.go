package bitpack

import (
	"fmt"

	"github.com/chronos-tachyon/enumhelper"
)

// FieldKind identifies which field encoder produced or consumed an Event.
type FieldKind byte

const (
	// RangedIntField is emitted by SerializeInt.
	RangedIntField FieldKind = iota

	// RawBitsField is emitted by SerializeBits.
	RawBitsField

	// BoolField is emitted by SerializeBool.
	BoolField

	// Float32Field is emitted by SerializeFloat32.
	Float32Field

	// Float64Field is emitted by SerializeFloat64.
	Float64Field

	// CompressedFloatField is emitted by SerializeCompressedFloat.
	CompressedFloatField

	// BytesField is emitted by SerializeBytes.
	BytesField

	// StringField is emitted by SerializeString.
	StringField

	// AlignField is emitted by SerializeAlign.
	AlignField

	// RelativeInt32Field is emitted by SerializeInt32Relative.
	RelativeInt32Field

	// SequenceRelativeField is emitted by SerializeSequenceRelative.
	SequenceRelativeField
)

var fieldKindData = []enumhelper.EnumData{
	{GoName: "RangedIntField", Name: "int"},
	{GoName: "RawBitsField", Name: "bits"},
	{GoName: "BoolField", Name: "bool"},
	{GoName: "Float32Field", Name: "float32"},
	{GoName: "Float64Field", Name: "float64"},
	{GoName: "CompressedFloatField", Name: "compressed_float"},
	{GoName: "BytesField", Name: "bytes"},
	{GoName: "StringField", Name: "string"},
	{GoName: "AlignField", Name: "align"},
	{GoName: "RelativeInt32Field", Name: "int32_relative"},
	{GoName: "SequenceRelativeField", Name: "sequence_relative"},
}

// IsValid returns true if k is a valid FieldKind constant.
func (k FieldKind) IsValid() bool {
	return k >= RangedIntField && k <= SequenceRelativeField
}

// GoString returns the Go string representation of this FieldKind constant.
func (k FieldKind) GoString() string {
	return enumhelper.DereferenceEnumData("FieldKind", fieldKindData, uint(k)).GoName
}

// String returns the string representation of this FieldKind constant.
func (k FieldKind) String() string {
	return enumhelper.DereferenceEnumData("FieldKind", fieldKindData, uint(k)).Name
}

// MarshalJSON returns the JSON representation of this FieldKind constant.
func (k FieldKind) MarshalJSON() ([]byte, error) {
	return enumhelper.MarshalEnumToJSON("FieldKind", fieldKindData, uint(k))
}

var _ fmt.GoStringer = FieldKind(0)
var _ fmt.Stringer = FieldKind(0)
