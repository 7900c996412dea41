package pipeline

import (
	"strings"
	"testing"
)

func TestNewULID_Shape(t *testing.T) {
	id := NewULID()
	if len(id) != 26 {
		t.Fatalf("expected 26 characters, got %d (%q)", len(id), id)
	}
	for _, c := range id {
		if !strings.ContainsRune(crockford, c) {
			t.Errorf("unexpected character %q in %q", c, id)
		}
	}
}

func TestNewULID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for range 1000 {
		id := NewULID()
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}

func TestNewULID_SortsByCreation(t *testing.T) {
	prev := NewULID()
	for range 100 {
		next := NewULID()
		if next <= prev {
			t.Fatalf("expected %q > %q", next, prev)
		}
		prev = next
	}
}

func TestEncodeCrockford(t *testing.T) {
	tests := []struct {
		src  []byte
		n    int
		want string
	}{
		{[]byte{0, 0, 0, 0, 0, 0}, 10, "0000000000"},
		{[]byte{0, 0, 0, 0, 0, 1}, 10, "0000000001"},
		{[]byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}, 10, "7ZZZZZZZZZ"},
		{[]byte{0, 0, 0, 0, 0, 0, 0, 0, 0, 0}, 16, "0000000000000000"},
		{[]byte{0, 0, 0, 0, 0, 0, 0, 0, 0, 31}, 16, "000000000000000Z"},
	}
	for _, tc := range tests {
		dst := make([]byte, tc.n)
		encodeCrockford(dst, tc.src)
		if string(dst) != tc.want {
			t.Errorf("encodeCrockford(%x): expected %q, got %q", tc.src, tc.want, dst)
		}
	}
}
