// Package visitor hosts the single generic post-order walk extension
// point the generator and any future analysis pass share. It is grounded
// on the teacher's lang/ast Visitor/Walk pattern, lifted one level so a
// pass is just a NodeHandler instead of a full Visitor implementation.
//
// No concrete pass ships here: constant propagation and tensor-contraction
// classification (original_source/ast_node/{cp_value,tc_edge}.hpp) are
// explicitly out of scope. A no-op identity handler exercises the hook in
// tests to prove it is wired and stable.
package visitor

import "github.com/mna/jplc/lang/ast"

// NodeHandler is the extension point: given a node (visited post-order),
// it may return a replacement node and report whether it substituted
// anything. A constant-propagation pass would fold literal subtrees here;
// a tensor-contraction pass would classify array/sum loop nodes here.
// Neither is implemented.
type NodeHandler interface {
	HandleNode(n ast.Node) (replacement ast.Node, substituted bool)
}

type handlerVisitor struct {
	handler NodeHandler
}

func (hv *handlerVisitor) Visit(n ast.Node) ast.Visitor { return hv }
func (hv *handlerVisitor) VisitEnd(n ast.Node)          { hv.handler.HandleNode(n) }

// Walk runs handler over every node reachable from root, post-order.
func Walk(root ast.Node, handler NodeHandler) {
	ast.Walk(&handlerVisitor{handler: handler}, root)
}

// IdentityHandler is a NodeHandler that never substitutes; it exists to
// exercise Walk in tests without claiming to implement either
// out-of-scope analysis pass.
type IdentityHandler struct {
	Visited int
}

func (h *IdentityHandler) HandleNode(n ast.Node) (ast.Node, bool) {
	h.Visited++
	return n, false
}
