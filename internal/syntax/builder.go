package syntax

// N builds a named node covering [start, end).
func N(kind string, start, end int, children ...*Node) *Node {
	return &Node{Kind: kind, Start: start, End: end, Named: true, Children: children}
}

// Token builds an anonymous leaf such as a keyword or punctuation.
func Token(kind string, start, end int) *Node {
	return &Node{Kind: kind, Start: start, End: end}
}

// ErrorNode builds an ERROR node.
func ErrorNode(start, end int, children ...*Node) *Node {
	return &Node{Kind: KindError, Start: start, End: end, Named: true, Error: true, Children: children}
}

// MissingNode builds a zero-width placeholder for a token the parser expected.
func MissingNode(kind string, offset int) *Node {
	return &Node{Kind: kind, Start: offset, End: offset, Missing: true}
}

// WithField sets the node's field name in its parent and returns it.
func (n *Node) WithField(field string) *Node {
	n.Field = field
	return n
}
