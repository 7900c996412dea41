package xmlrecords

import (
	"fmt"
	"strings"

	"github.com/dgallion1/xmlrecords/xmltree"
)

// flattenConfig holds the knobs that stay fixed across one flattening
// call tree.
type flattenConfig struct {
	sep      string
	strip    bool
	removeNS bool
}

// flattenNode merges a node's text, attributes and descendants into rec.
//
// With no prefix, the text key is the node's own tag and attribute keys
// are the attribute names. With a prefix, the text key is the prefix
// itself and attribute keys are prefix+sep+name; child nodes extend the
// prefix with their tag. skipTag suppresses immediate children with that
// tag (after namespace removal, when enabled); it never applies below
// them.
func flattenNode(rec *Record, node *xmltree.Node, prefix string, prefixed bool, depth Depth, skipTag string, cfg flattenConfig) error {
	text := node.Text
	if cfg.strip {
		text = strings.TrimSpace(text)
	}
	if text != "" {
		key := prefix
		if !prefixed {
			key = localTag(node.Tag, cfg.removeNS)
		}
		if err := rec.mergeFields([]Field{{Key: key, Value: text}}); err != nil {
			return err
		}
	}

	if len(node.Attrs) > 0 {
		fields := make([]Field, len(node.Attrs))
		for i, a := range node.Attrs {
			key := a.Name
			if prefixed {
				key = prefix + cfg.sep + a.Name
			}
			fields[i] = Field{Key: key, Value: a.Value}
		}
		if err := rec.mergeFields(fields); err != nil {
			return err
		}
	}

	if depth.descend() && len(node.Children) > 0 {
		childDepth := depth.dec()
		for _, child := range node.Children {
			ctag := localTag(child.Tag, cfg.removeNS)
			if skipTag != "" && ctag == skipTag {
				continue
			}
			childPrefix, childPrefixed := "", false
			if prefixed {
				childPrefix, childPrefixed = prefix+cfg.sep+ctag, true
			}
			if err := flattenNode(rec, child, childPrefix, childPrefixed, childDepth, "", cfg); err != nil {
				return err
			}
		}
	}
	return nil
}

// localTag strips a Clark-notation namespace from tag when remove is
// set. A tag that still carries braces afterwards is malformed and
// indicates a bug in the tree parser, so this panics rather than
// returning an error.
func localTag(tag string, remove bool) string {
	if !remove {
		return tag
	}
	if i := strings.LastIndex(tag, "}"); i >= 0 {
		tag = tag[i+1:]
	}
	if strings.ContainsAny(tag, "{}") {
		panic(fmt.Sprintf("malformed tag after namespace removal: %q", tag))
	}
	return tag
}
