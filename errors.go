package xmlrecords

import (
	"fmt"
	"strings"
)

// DuplicateKeyError reports fields that would land on keys a record
// already holds. Keys is the full set of offending keys, sorted.
type DuplicateKeyError struct {
	Keys []string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("records share keys: %s (try enabling a prefix)", strings.Join(e.Keys, ", "))
}

// ValidationError reports the first record whose key sequence differs
// from the expected one.
type ValidationError struct {
	Index int      // position of the offending record
	Got   []string // its key sequence
	Want  []string // the expected key sequence
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("record %d: keys %v != %v", e.Index, e.Got, e.Want)
}
