package convert

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/blevesearch/segment"

	"github.com/dgallion1/xmlrecords"
	"github.com/dgallion1/xmlrecords/xmltree"
)

// Limits bound what a single conversion may consume.
type Limits struct {
	MaxDepth   int // element nesting cap for the tree parser (0 uses the parser default)
	MaxRecords int // record count cap (0 = unlimited)
}

// Result is the outcome of one conversion.
type Result struct {
	Records []*xmlrecords.Record
	Fields  int // total fields across all records
	Words   int // word count across all field values
	Elapsed time.Duration
}

// Convert parses an XML document, flattens it per the spec and, when the
// spec names expected keys, validates the records.
func Convert(data []byte, spec Spec, limits Limits) (*Result, error) {
	start := time.Now()

	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid spec: %w", err)
	}

	root, err := xmltree.ParseWithOptions(bytes.NewReader(data), xmltree.ParseOptions{
		MaxDepth: limits.MaxDepth,
	})
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	records, err := xmlrecords.Parse(root, spec.RowsPath, spec.Options())
	if err != nil {
		return nil, fmt.Errorf("flatten document: %w", err)
	}
	if limits.MaxRecords > 0 && len(records) > limits.MaxRecords {
		return nil, fmt.Errorf("document produced %d records, limit is %d", len(records), limits.MaxRecords)
	}

	if len(spec.ExpectedKeys) > 0 {
		if err := xmlrecords.Validate(records, spec.ExpectedKeys); err != nil {
			return nil, fmt.Errorf("validate records: %w", err)
		}
	}

	fields, words := Tally(records)
	return &Result{
		Records: records,
		Fields:  fields,
		Words:   words,
		Elapsed: time.Since(start),
	}, nil
}

// Tally sums field and word counts across records.
func Tally(records []*xmlrecords.Record) (fields, words int) {
	for _, rec := range records {
		fields += rec.Len()
		for _, f := range rec.Fields() {
			words += countWords(f.Value)
		}
	}
	return fields, words
}

// countWords counts letter, number and ideographic segments; punctuation
// and whitespace runs are not words.
func countWords(text string) int {
	seg := segment.NewWordSegmenter(strings.NewReader(text))
	n := 0
	for seg.Segment() {
		if seg.Type() != segment.None {
			n++
		}
	}
	return n
}
