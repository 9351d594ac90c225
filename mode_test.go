package bitpack

import "testing"

func TestStreamModeString(t *testing.T) {
	rows := []struct {
		mode StreamMode
		want string
	}{
		{WriteMode, "write"},
		{ReadMode, "read"},
		{MeasureMode, "measure"},
	}
	for _, row := range rows {
		if got := row.mode.String(); got != row.want {
			t.Errorf("%v.String() = %q, want %q", row.mode, got, row.want)
		}
		if !row.mode.IsValid() {
			t.Errorf("%v.IsValid() = false, want true", row.mode)
		}
	}
}

func TestFieldKindString(t *testing.T) {
	if got := RangedIntField.String(); got != "int" {
		t.Errorf("RangedIntField.String() = %q, want %q", got, "int")
	}
	if !SequenceRelativeField.IsValid() {
		t.Error("SequenceRelativeField.IsValid() = false, want true")
	}
	if FieldKind(200).IsValid() {
		t.Error("FieldKind(200).IsValid() = true, want false")
	}
}
