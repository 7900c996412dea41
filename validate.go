package xmlrecords

import "slices"

// Validate checks that every record carries exactly expectedKeys, in
// order. The first offending record aborts the scan with a
// *ValidationError; order matters, so a record with the right keys in a
// different sequence fails.
func Validate(records []*Record, expectedKeys []string) error {
	for i, rec := range records {
		keys := rec.Keys()
		if !slices.Equal(keys, expectedKeys) {
			return &ValidationError{
				Index: i,
				Got:   keys,
				Want:  slices.Clone(expectedKeys),
			}
		}
	}
	return nil
}
