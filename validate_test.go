package xmlrecords

import (
	"errors"
	"testing"
)

func recordWithKeys(keys ...string) *Record {
	rec := NewRecord()
	for _, k := range keys {
		rec.Set(k, "v")
	}
	return rec
}

func TestValidate_Match(t *testing.T) {
	records := []*Record{
		recordWithKeys("a", "b", "c"),
		recordWithKeys("a", "b", "c"),
	}
	if err := Validate(records, []string{"a", "b", "c"}); err != nil {
		t.Errorf("expected valid records, got %v", err)
	}
}

func TestValidate_Empty(t *testing.T) {
	if err := Validate(nil, []string{"a"}); err != nil {
		t.Errorf("expected no error for no records, got %v", err)
	}
	if err := Validate([]*Record{NewRecord()}, nil); err != nil {
		t.Errorf("expected empty record to match empty keys, got %v", err)
	}
}

func TestValidate_Mismatches(t *testing.T) {
	tests := []struct {
		name string
		rec  *Record
	}{
		{"wrong order", recordWithKeys("b", "a")},
		{"missing key", recordWithKeys("a")},
		{"extra key", recordWithKeys("a", "b", "c")},
		{"different key", recordWithKeys("a", "x")},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate([]*Record{tc.rec}, []string{"a", "b"})
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %v", err)
			}
			if verr.Index != 0 {
				t.Errorf("expected index 0, got %d", verr.Index)
			}
		})
	}
}

func TestValidate_ReportsFirstOffender(t *testing.T) {
	records := []*Record{
		recordWithKeys("a", "b"),
		recordWithKeys("a", "wrong"),
		recordWithKeys("also", "wrong"),
	}
	err := Validate(records, []string{"a", "b"})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if verr.Index != 1 {
		t.Errorf("expected index 1, got %d", verr.Index)
	}
	if len(verr.Got) != 2 || verr.Got[1] != "wrong" {
		t.Errorf("expected offending keys [a wrong], got %v", verr.Got)
	}
	if len(verr.Want) != 2 || verr.Want[1] != "b" {
		t.Errorf("expected wanted keys [a b], got %v", verr.Want)
	}
}

func TestValidate_ErrorMessage(t *testing.T) {
	err := Validate([]*Record{recordWithKeys("x")}, []string{"y"})
	want := "record 0: keys [x] != [y]"
	if err == nil || err.Error() != want {
		t.Errorf("expected %q, got %v", want, err)
	}
}
