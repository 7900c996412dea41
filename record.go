package xmlrecords

import (
	"bytes"
	"encoding/json"
	"maps"
	"slices"
	"sort"
)

// Field is a single key-value pair of a record.
type Field struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Record is an insertion-ordered collection of string fields. The zero
// value is an empty record ready to use.
type Record struct {
	fields []Field
	index  map[string]int
}

func NewRecord() *Record {
	return &Record{index: make(map[string]int)}
}

// Len returns the number of fields.
func (r *Record) Len() int {
	return len(r.fields)
}

// Get returns the value stored under key.
func (r *Record) Get(key string) (string, bool) {
	i, ok := r.index[key]
	if !ok {
		return "", false
	}
	return r.fields[i].Value, true
}

// Keys returns the field keys in insertion order.
func (r *Record) Keys() []string {
	keys := make([]string, len(r.fields))
	for i, f := range r.fields {
		keys[i] = f.Key
	}
	return keys
}

// Fields returns a copy of the fields in insertion order.
func (r *Record) Fields() []Field {
	return slices.Clone(r.fields)
}

// Set stores value under key. An existing key keeps its position.
func (r *Record) Set(key, value string) {
	if r.index == nil {
		r.index = make(map[string]int)
	}
	if i, ok := r.index[key]; ok {
		r.fields[i].Value = value
		return
	}
	r.index[key] = len(r.fields)
	r.fields = append(r.fields, Field{Key: key, Value: value})
}

// Merge appends every field of other, rejecting overlaps. On a
// *DuplicateKeyError the record is left unchanged and the error carries
// the full set of offending keys.
func (r *Record) Merge(other *Record) error {
	if other == nil {
		return nil
	}
	return r.mergeFields(other.fields)
}

// mergeFields is the single enforcement point for key collisions: every
// flattening step funnels through it.
func (r *Record) mergeFields(fields []Field) error {
	var dup []string
	for _, f := range fields {
		if _, ok := r.index[f.Key]; ok {
			dup = append(dup, f.Key)
		}
	}
	if len(dup) > 0 {
		sort.Strings(dup)
		return &DuplicateKeyError{Keys: dup}
	}
	if r.index == nil {
		r.index = make(map[string]int, len(fields))
	}
	for _, f := range fields {
		r.index[f.Key] = len(r.fields)
		r.fields = append(r.fields, f)
	}
	return nil
}

// Clone returns an independent copy of the record.
func (r *Record) Clone() *Record {
	return &Record{
		fields: slices.Clone(r.fields),
		index:  maps.Clone(r.index),
	}
}

// MarshalJSON encodes the record as a JSON object with fields in
// insertion order.
func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
