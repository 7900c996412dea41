package xmlrecords

// Depth bounds how many child levels flattening descends below a node.
// The zero value is unlimited.
type Depth struct {
	limit int
	set   bool
}

// MaxDepth returns a Depth allowing descent at most n levels below the
// starting node. MaxDepth(0) keeps only the node's own text and
// attributes.
func MaxDepth(n int) Depth {
	return Depth{limit: n, set: true}
}

// Unlimited reports whether no bound is set.
func (d Depth) Unlimited() bool {
	return !d.set
}

func (d Depth) descend() bool {
	return !d.set || d.limit > 0
}

func (d Depth) dec() Depth {
	if !d.set {
		return d
	}
	return Depth{limit: d.limit - 1, set: true}
}

// Options control how Parse flattens rows and metadata into records.
// The zero value gives the defaults: no subrow expansion, no metadata,
// unprefixed keys, separator "_", unlimited depth, text stripped of
// surrounding whitespace, any namespace matched and namespaces removed
// from keys.
type Options struct {
	// SubrowTag, when set, expands each row into one record per matching
	// immediate child. Rows without a match produce no records.
	SubrowTag string

	// MetaPaths locate nodes whose fields are broadcast into every
	// record. Only the first match of each path is used; paths that
	// match nothing are skipped.
	MetaPaths [][]string

	// RowsPrefix prefixes row field keys with the joined rows path.
	RowsPrefix bool

	// MetaPrefix prefixes metadata field keys with the joined meta path.
	MetaPrefix bool

	// Separator joins prefix segments. Empty means "_".
	Separator string

	// RowsMaxDepth bounds descent below row (and subrow) nodes.
	RowsMaxDepth Depth

	// MetaMaxDepth bounds descent below metadata nodes.
	MetaMaxDepth Depth

	// KeepWhitespace keeps element text verbatim instead of trimming
	// surrounding whitespace.
	KeepWhitespace bool

	// Namespace is the namespace URI used to locate rows, subrows and
	// metadata. Empty means "*", which matches tags in any namespace or
	// none.
	Namespace string

	// KeepNamespace keeps Clark-notation namespaces in field keys
	// instead of reducing tags to their local names.
	KeepNamespace bool
}
