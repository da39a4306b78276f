package btree

import (
	"fmt"

	"github.com/npillmayer/dsc"
)

// DFSMethod selects the order of a depth-first traversal.
type DFSMethod int

// Depth-first traversal orders.
const (
	InOrder   DFSMethod = iota // left subtree, node, right subtree
	PreOrder                   // node, left subtree, right subtree
	PostOrder                  // left subtree, right subtree, node
)

func (m DFSMethod) String() string {
	switch m {
	case InOrder:
		return "in-order"
	case PreOrder:
		return "pre-order"
	case PostOrder:
		return "post-order"
	}
	return fmt.Sprintf("DFSMethod(%d)", int(m))
}

// Walk visits the nodes of the subtree rooted at node in the given order.
// If visit returns false, the traversal stops.
func (node *Node) Walk(order DFSMethod, visit func(*Node) bool) error {
	if !node.isValid() {
		return invalidAddress("walk")
	}
	if visit == nil {
		return fmt.Errorf("%w: visitor is nil", dsc.ErrInvalidArgument)
	}
	w := walker{visit: visit}
	switch order {
	case InOrder:
		w.inOrder(node)
	case PreOrder:
		w.preOrder(node)
	case PostOrder:
		w.postOrder(node)
	default:
		return fmt.Errorf("%w: unknown traversal order %s", dsc.ErrInvalidArgument, order)
	}
	return nil
}

// walker carries the state of a traversal through the recursion.
type walker struct {
	visit func(*Node) bool
	done  bool
}

func (w *walker) at(node *Node) {
	if !w.done {
		w.done = !w.visit(node)
	}
}

func (w *walker) inOrder(node *Node) {
	if node == nil || w.done {
		return
	}
	w.inOrder(node.left)
	w.at(node)
	w.inOrder(node.right)
}

func (w *walker) preOrder(node *Node) {
	if node == nil || w.done {
		return
	}
	w.at(node)
	w.preOrder(node.left)
	w.preOrder(node.right)
}

func (w *walker) postOrder(node *Node) {
	if node == nil || w.done {
		return
	}
	w.postOrder(node.left)
	w.postOrder(node.right)
	w.at(node)
}

// Flatten writes references to the nodes of the subtree rooted at node into list, in
// the given order. At most len(list) nodes are written; Flatten never writes beyond
// that bound, whatever the size of the tree. It returns the number of nodes written.
func (node *Node) Flatten(list []*Node, order DFSMethod) (int, error) {
	if !node.isValid() {
		return 0, invalidAddress("flatten")
	}
	if len(list) == 0 {
		return 0, nil
	}
	i := 0
	err := node.Walk(order, func(n *Node) bool {
		list[i] = n
		i++
		return i < len(list)
	})
	tracer().Debugf("flattened %d nodes %s", i, order)
	return i, err
}

// Count returns the number of nodes in the subtree rooted at node.
func (node *Node) Count() int {
	if !node.isValid() {
		return 0
	}
	return 1 + node.left.Count() + node.right.Count()
}

// Height returns the number of nodes on the longest path from node down to a leaf.
// A single node has height 1, a nil node has height 0.
func (node *Node) Height() int {
	if !node.isValid() {
		return 0
	}
	return 1 + max(node.left.Height(), node.right.Height())
}
