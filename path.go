package xmlrecords

import (
	"strings"

	"github.com/samber/lo"
)

// childPath joins path segments into a namespaced tree path, e.g.
// ["a", "b"] with namespace "*" becomes "{*}a/{*}b".
func childPath(segments []string, namespace string) string {
	steps := lo.Map(segments, func(s string, _ int) string {
		return "{" + namespace + "}" + s
	})
	return strings.Join(steps, "/")
}

// keyPrefix joins path segments into a field key prefix. The boolean
// reports whether a prefix is present at all; a present prefix may still
// be the empty string.
func keyPrefix(segments []string, separator string) (string, bool) {
	if len(segments) == 0 {
		return "", false
	}
	return strings.Join(segments, separator), true
}
