// Package xmltree parses XML documents into navigable element trees.
package xmltree

import "strings"

// Attr is a single element attribute.
type Attr struct {
	Name  string // Clark notation ({namespace}local) when namespace-qualified
	Value string
}

// Node is one element of a parsed document.
type Node struct {
	Tag      string  // Clark notation ({namespace}local) when namespace-qualified
	Text     string  // character data before the first child element
	Attrs    []Attr  // attributes in document order, xmlns declarations excluded
	Children []*Node // child elements in document order
}

// Find returns the first element matching path, or nil.
//
// A path is a sequence of /-separated tag steps matched against successive
// child levels, starting at n's children (n itself is never matched). Each
// step is a plain local name (matches unqualified tags only), {uri}local
// (matches that namespace exactly) or {*}local (matches the local name in
// any namespace or none). An empty path or a path with empty steps matches
// nothing.
func (n *Node) Find(path string) *Node {
	matches := n.findAll(path, true)
	if len(matches) == 0 {
		return nil
	}
	return matches[0]
}

// FindAll returns every element matching path, in document order.
func (n *Node) FindAll(path string) []*Node {
	return n.findAll(path, false)
}

func (n *Node) findAll(path string, first bool) []*Node {
	steps := parsePath(path)
	if steps == nil {
		return nil
	}
	level := []*Node{n}
	for i, step := range steps {
		last := i == len(steps)-1
		var next []*Node
		for _, parent := range level {
			for _, child := range parent.Children {
				if !step.match(child.Tag) {
					continue
				}
				next = append(next, child)
				if first && last {
					return next
				}
			}
		}
		if len(next) == 0 {
			return nil
		}
		level = next
	}
	return level
}

// pathStep is one tag test in a parsed path.
type pathStep struct {
	space string // namespace URI, empty for unqualified tags
	local string
	anyNS bool // {*} wildcard
}

func (s pathStep) match(tag string) bool {
	if s.anyNS {
		if i := strings.LastIndex(tag, "}"); i >= 0 {
			return tag[i+1:] == s.local
		}
		return tag == s.local
	}
	if s.space == "" {
		return tag == s.local
	}
	return tag == "{"+s.space+"}"+s.local
}

// parsePath splits a path into steps. Returns nil for paths that can never
// match: empty input, empty steps, unclosed braces or empty local names.
func parsePath(path string) []pathStep {
	if path == "" {
		return nil
	}
	parts := strings.Split(path, "/")
	steps := make([]pathStep, 0, len(parts))
	for _, part := range parts {
		step, ok := parseStep(part)
		if !ok {
			return nil
		}
		steps = append(steps, step)
	}
	return steps
}

func parseStep(part string) (pathStep, bool) {
	if part == "" {
		return pathStep{}, false
	}
	if part[0] != '{' {
		if strings.ContainsAny(part, "{}") {
			return pathStep{}, false
		}
		return pathStep{local: part}, true
	}
	end := strings.IndexByte(part, '}')
	if end < 0 {
		return pathStep{}, false
	}
	space, local := part[1:end], part[end+1:]
	if local == "" || strings.ContainsAny(local, "{}") {
		return pathStep{}, false
	}
	if space == "*" {
		return pathStep{local: local, anyNS: true}, true
	}
	return pathStep{space: space, local: local}, true
}
