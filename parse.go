// Package xmlrecords flattens XML documents into flat, insertion-ordered
// key-value records suitable for tabular consumption.
package xmlrecords

import (
	"fmt"
	"strings"

	"github.com/dgallion1/xmlrecords/xmltree"
)

// Parse flattens a parsed XML document into records.
//
// rowsPath names the tags leading from root to the repeated "row" nodes,
// one level per segment. Every matching row becomes one record carrying
// the row's text, attributes and descendants, merged on top of the
// metadata located by opts.MetaPaths. With opts.SubrowTag set, each row
// instead produces one record per matching immediate child, the subrow's
// fields merged on top of the row's; rows without a matching subrow
// produce no records at all.
//
// No matching rows yield an empty, non-nil slice. Any key collision
// aborts the whole call with a *DuplicateKeyError; no partial results
// are returned.
func Parse(root *xmltree.Node, rowsPath []string, opts Options) ([]*Record, error) {
	if root == nil {
		return nil, fmt.Errorf("nil document root")
	}

	sep := opts.Separator
	if sep == "" {
		sep = "_"
	}
	ns := opts.Namespace
	if ns == "" {
		ns = "*"
	}
	cfg := flattenConfig{
		sep:      sep,
		strip:    !opts.KeepWhitespace,
		removeNS: !opts.KeepNamespace,
	}

	meta := NewRecord()
	for _, mPath := range opts.MetaPaths {
		node := root.Find(childPath(mPath, ns))
		if node == nil {
			continue
		}
		prefix, prefixed := "", false
		if opts.MetaPrefix {
			prefix, prefixed = keyPrefix(mPath, sep)
		}
		if err := flattenNode(meta, node, prefix, prefixed, opts.MetaMaxDepth, "", cfg); err != nil {
			return nil, fmt.Errorf("metadata %s: %w", strings.Join(mPath, "/"), err)
		}
	}

	rowPrefix, rowPrefixed := "", false
	if opts.RowsPrefix {
		rowPrefix, rowPrefixed = keyPrefix(rowsPath, sep)
	}
	var subrowPath string
	if opts.SubrowTag != "" {
		subrowPath = childPath([]string{opts.SubrowTag}, ns)
	}

	rowNodes := root.FindAll(childPath(rowsPath, ns))
	records := make([]*Record, 0, len(rowNodes))
	for i, rowNode := range rowNodes {
		row := meta.Clone()
		if err := flattenNode(row, rowNode, rowPrefix, rowPrefixed, opts.RowsMaxDepth, opts.SubrowTag, cfg); err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		if opts.SubrowTag == "" {
			records = append(records, row)
			continue
		}
		for _, subNode := range rowNode.FindAll(subrowPath) {
			sub := row.Clone()
			if err := flattenNode(sub, subNode, rowPrefix, rowPrefixed, opts.RowsMaxDepth, "", cfg); err != nil {
				return nil, fmt.Errorf("row %d: %w", i, err)
			}
			records = append(records, sub)
		}
	}
	return records, nil
}
