// Package schema describes, purely declaratively, the field sequence a
// serialization routine intends to drive a bitpack.Stream through, so that
// the bounds and ranges fields will be called with can be checked once up
// front instead of discovered one malformed write_bits assertion at a
// time. It performs no schema discovery and decodes nothing: a Schema is
// never transmitted, never read from the wire, and has no bearing on the
// bytes a Stream produces. Its only job is validating the static shape of
// a schema definition before it is ever used.
package schema

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/chronos-tachyon/bitpack"
)

// FieldSpec describes one field's shape: its FieldKind and whichever of
// Min/Max/Resolution/MaxLength are meaningful for that kind. Fields whose
// kind does not use a given attribute leave it at its zero value.
type FieldSpec struct {
	Name       string
	Kind       bitpack.FieldKind
	Min        int64
	Max        int64
	Resolution float64
	MaxLength  int
	Bits       uint
}

// Schema is an ordered list of FieldSpec describing one serialization
// routine's field sequence.
type Schema struct {
	Fields []FieldSpec
}

// Validate checks every FieldSpec in the schema for internal consistency
// and returns a single aggregated error (via multierror) describing every
// violation found, or nil if the schema is well-formed. It does not, and
// cannot, check that an implementation actually calls the stream
// operations this schema describes; that is the caller's responsibility.
func (s Schema) Validate() error {
	var result error
	seen := make(map[string]bool, len(s.Fields))

	for i, f := range s.Fields {
		label := f.Name
		if label == "" {
			label = fmt.Sprintf("field[%d]", i)
		}

		if f.Name == "" {
			result = multierror.Append(result, fmt.Errorf("%s: Name must not be empty", label))
		} else if seen[f.Name] {
			result = multierror.Append(result, fmt.Errorf("%s: duplicate field name", label))
		}
		seen[f.Name] = true

		if !f.Kind.IsValid() {
			result = multierror.Append(result, fmt.Errorf("%s: Kind %d is not a valid FieldKind", label, f.Kind))
			continue
		}

		switch f.Kind {
		case bitpack.RangedIntField, bitpack.RelativeInt32Field, bitpack.SequenceRelativeField:
			if f.Min > f.Max {
				result = multierror.Append(result, fmt.Errorf("%s: Min %d exceeds Max %d", label, f.Min, f.Max))
			}

		case bitpack.RawBitsField:
			if f.Bits < 1 || f.Bits > 64 {
				result = multierror.Append(result, fmt.Errorf("%s: Bits %d out of range [1,64]", label, f.Bits))
			}

		case bitpack.CompressedFloatField:
			if f.Max <= f.Min {
				result = multierror.Append(result, fmt.Errorf("%s: Max %d must exceed Min %d", label, f.Max, f.Min))
			}
			if f.Resolution <= 0 {
				result = multierror.Append(result, fmt.Errorf("%s: Resolution %g must be positive", label, f.Resolution))
			}

		case bitpack.StringField:
			if f.MaxLength < 0 {
				result = multierror.Append(result, fmt.Errorf("%s: MaxLength %d must be non-negative", label, f.MaxLength))
			}

		case bitpack.BoolField, bitpack.Float32Field, bitpack.Float64Field, bitpack.BytesField, bitpack.AlignField:
			// No per-field bounds to validate.
		}
	}

	return result
}
