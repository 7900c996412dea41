// Package convert runs XML-to-records conversions for the service and
// CLI surfaces.
package convert

import (
	"fmt"
	"strings"

	"github.com/dgallion1/xmlrecords"
)

// Spec is the wire form of a conversion request.
type Spec struct {
	RowsPath       []string   `json:"rows_path"`
	SubrowTag      string     `json:"subrow_tag,omitempty"`
	MetaPaths      [][]string `json:"meta_paths,omitempty"`
	RowsPrefix     bool       `json:"rows_prefix,omitempty"`
	MetaPrefix     bool       `json:"meta_prefix,omitempty"`
	Separator      string     `json:"separator,omitempty"`
	RowsMaxDepth   *int       `json:"rows_max_depth,omitempty"`
	MetaMaxDepth   *int       `json:"meta_max_depth,omitempty"`
	KeepWhitespace bool       `json:"keep_whitespace,omitempty"`
	Namespace      string     `json:"namespace,omitempty"`
	KeepNamespace  bool       `json:"keep_namespace,omitempty"`

	// ExpectedKeys, when set, validates every produced record against
	// this exact ordered key sequence.
	ExpectedKeys []string `json:"expected_keys,omitempty"`
}

// Validate checks the spec's shape before any document is touched.
func (s Spec) Validate() error {
	if len(s.RowsPath) == 0 {
		return fmt.Errorf("rows_path is required")
	}
	for i, seg := range s.RowsPath {
		if strings.TrimSpace(seg) == "" {
			return fmt.Errorf("rows_path[%d] is empty", i)
		}
	}
	if strings.TrimSpace(s.SubrowTag) == "" && s.SubrowTag != "" {
		return fmt.Errorf("subrow_tag is blank")
	}
	for i, path := range s.MetaPaths {
		if len(path) == 0 {
			return fmt.Errorf("meta_paths[%d] is empty", i)
		}
		for j, seg := range path {
			if strings.TrimSpace(seg) == "" {
				return fmt.Errorf("meta_paths[%d][%d] is empty", i, j)
			}
		}
	}
	if s.RowsMaxDepth != nil && *s.RowsMaxDepth < 0 {
		return fmt.Errorf("rows_max_depth must be >= 0")
	}
	if s.MetaMaxDepth != nil && *s.MetaMaxDepth < 0 {
		return fmt.Errorf("meta_max_depth must be >= 0")
	}
	return nil
}

// Options maps the spec onto the flattening options.
func (s Spec) Options() xmlrecords.Options {
	opts := xmlrecords.Options{
		SubrowTag:      s.SubrowTag,
		MetaPaths:      s.MetaPaths,
		RowsPrefix:     s.RowsPrefix,
		MetaPrefix:     s.MetaPrefix,
		Separator:      s.Separator,
		KeepWhitespace: s.KeepWhitespace,
		Namespace:      s.Namespace,
		KeepNamespace:  s.KeepNamespace,
	}
	if s.RowsMaxDepth != nil {
		opts.RowsMaxDepth = xmlrecords.MaxDepth(*s.RowsMaxDepth)
	}
	if s.MetaMaxDepth != nil {
		opts.MetaMaxDepth = xmlrecords.MaxDepth(*s.MetaMaxDepth)
	}
	return opts
}
