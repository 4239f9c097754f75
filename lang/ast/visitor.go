package ast

// Visitor is implemented by callers of Walk to traverse the AST.
type Visitor interface {
	// Visit is called for each node before its children are visited. If it
	// returns a non-nil Visitor, that visitor is used to visit the node's
	// children, and its VisitEnd is called after them.
	Visit(n Node) (w Visitor)

	// VisitEnd is called for each node after its children have been
	// visited, mirroring the post-order half of the walk the generic
	// extension hook relies on.
	VisitEnd(n Node)
}

// Walk traverses the AST rooted at n in depth-first, pre/post order,
// invoking v.Visit before descending into children and v.VisitEnd after.
func Walk(v Visitor, n Node) {
	if n == nil {
		return
	}
	if w := v.Visit(n); w != nil {
		n.Walk(w)
		w.VisitEnd(n)
	}
}

