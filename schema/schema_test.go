package schema

import (
	"testing"

	"github.com/chronos-tachyon/bitpack"
)

func TestSchemaValidateAccepts(t *testing.T) {
	s := Schema{
		Fields: []FieldSpec{
			{Name: "a", Kind: bitpack.RangedIntField, Min: -10, Max: 10},
			{Name: "flag", Kind: bitpack.BoolField},
			{Name: "text", Kind: bitpack.StringField, MaxLength: 256},
			{Name: "ratio", Kind: bitpack.CompressedFloatField, Min: 0, Max: 10, Resolution: 0.01},
			{Name: "raw", Kind: bitpack.RawBitsField, Bits: 6},
		},
	}
	if err := s.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}
}

func TestSchemaValidateRejects(t *testing.T) {
	rows := []struct {
		name string
		spec Schema
	}{
		{
			name: "empty name",
			spec: Schema{Fields: []FieldSpec{{Kind: bitpack.BoolField}}},
		},
		{
			name: "duplicate name",
			spec: Schema{Fields: []FieldSpec{
				{Name: "x", Kind: bitpack.BoolField},
				{Name: "x", Kind: bitpack.BoolField},
			}},
		},
		{
			name: "invalid kind",
			spec: Schema{Fields: []FieldSpec{{Name: "x", Kind: bitpack.FieldKind(255)}}},
		},
		{
			name: "inverted ranged int bounds",
			spec: Schema{Fields: []FieldSpec{{Name: "x", Kind: bitpack.RangedIntField, Min: 10, Max: -10}}},
		},
		{
			name: "compressed float non-positive resolution",
			spec: Schema{Fields: []FieldSpec{{Name: "x", Kind: bitpack.CompressedFloatField, Min: 0, Max: 10, Resolution: 0}}},
		},
		{
			name: "negative string max length",
			spec: Schema{Fields: []FieldSpec{{Name: "x", Kind: bitpack.StringField, MaxLength: -1}}},
		},
		{
			name: "raw bits out of range",
			spec: Schema{Fields: []FieldSpec{{Name: "x", Kind: bitpack.RawBitsField, Bits: 0}}},
		},
	}

	for _, row := range rows {
		if err := row.spec.Validate(); err == nil {
			t.Errorf("%s: Validate() = nil, want an error", row.name)
		}
	}
}
