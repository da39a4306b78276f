package btree

import (
	tp "github.com/xlab/treeprint"
)

// Dump renders the subtree rooted at node as text, one node per line, labelled with
// the result of label. A nil label prints node IDs and sizes.
//
//	8
//	├── [L]  5
//	│   ├── [L]  2
//	│   └── [R]  7
//	└── [R]  10
func (node *Node) Dump(label func(*Node) string) string {
	if !node.isValid() {
		return "<nil>\n"
	}
	if label == nil {
		label = (*Node).String
	}
	p := tp.NewWithRoot(label(node))
	dumpChildren(p, node, label)
	return p.String()
}

func dumpChildren(p tp.Tree, node *Node, label func(*Node) string) {
	if node.IsLeaf() {
		return
	}
	for _, ch := range [2]struct {
		meta  string
		child *Node
	}{{"L", node.left}, {"R", node.right}} {
		switch {
		case ch.child == nil:
			p.AddMetaNode(ch.meta, "∅")
		case ch.child.IsLeaf():
			p.AddMetaNode(ch.meta, label(ch.child))
		default:
			branch := p.AddMetaBranch(ch.meta, label(ch.child))
			dumpChildren(branch, ch.child, label)
		}
	}
}
