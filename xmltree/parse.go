package xmltree

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	"golang.org/x/net/html/charset"
)

const (
	DefaultMaxDepth = 512
	DefaultMaxAttrs = 1024
)

// ParseOptions bound what a document may contain. Zero values use the
// package defaults.
type ParseOptions struct {
	MaxDepth int // maximum element nesting depth
	MaxAttrs int // maximum attributes on a single element
}

// Parse reads an XML document into a tree with default limits.
func Parse(r io.Reader) (*Node, error) {
	return ParseWithOptions(r, ParseOptions{})
}

// ParseWithOptions reads an XML document into a tree.
//
// The decoder honors the encoding declared in the XML prolog. Character
// data is kept verbatim; xmlns declarations are dropped from attribute
// lists. Only text preceding an element's first child is retained.
func ParseWithOptions(r io.Reader, opts ParseOptions) (*Node, error) {
	maxDepth := opts.MaxDepth
	if maxDepth == 0 {
		maxDepth = DefaultMaxDepth
	}
	maxAttrs := opts.MaxAttrs
	if maxAttrs == 0 {
		maxAttrs = DefaultMaxAttrs
	}
	if maxDepth < 0 || maxAttrs < 0 {
		return nil, fmt.Errorf("parse limits must be positive")
	}

	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel

	var root *Node
	var stack []*Node
	for {
		tok, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("decode xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if len(stack) >= maxDepth {
				return nil, fmt.Errorf("element depth exceeds limit (%d)", maxDepth)
			}
			if len(t.Attr) > maxAttrs {
				return nil, fmt.Errorf("element <%s> attribute count exceeds limit (%d)", t.Name.Local, maxAttrs)
			}
			node := &Node{Tag: clarkName(t.Name)}
			for _, a := range t.Attr {
				if isNamespaceDecl(a.Name) {
					continue
				}
				node.Attrs = append(node.Attrs, Attr{Name: clarkName(a.Name), Value: a.Value})
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("multiple root elements")
				}
				root = node
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, node)
			}
			stack = append(stack, node)
		case xml.CharData:
			if len(stack) == 0 {
				continue
			}
			cur := stack[len(stack)-1]
			if len(cur.Children) == 0 {
				cur.Text += string(t)
			}
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		}
	}
	if root == nil {
		return nil, fmt.Errorf("no root element")
	}
	return root, nil
}

func clarkName(name xml.Name) string {
	if name.Space == "" {
		return name.Local
	}
	return "{" + name.Space + "}" + name.Local
}

// isNamespaceDecl reports whether an attribute declares a namespace
// (xmlns="..." or xmlns:prefix="...").
func isNamespaceDecl(name xml.Name) bool {
	return name.Space == "xmlns" || (name.Space == "" && name.Local == "xmlns")
}
