package btree

import (
	"fmt"

	"github.com/npillmayer/dsc"
	"github.com/npillmayer/dsc/buffer"
)

// Node is a node of a binary search tree. A node holds its payload in a buffer and owns
// its children.
//
// A Node handle for a root is what clients use to operate on a tree. Handles for inner
// nodes, as returned by Search, Parent and Flatten, are borrowed from the tree and are
// invalid as soon as the node is removed or the tree is destroyed.
type Node struct {
	ID          uint64        // 0 for the root, assigned from the tree's sequence on Add
	Data        buffer.Buffer // payload
	left, right *Node
	seq         *sequence // shared between all nodes of a tree
}

// sequence hands out node IDs for a tree.
type sequence struct {
	next uint64
}

func (seq *sequence) take() uint64 {
	id := seq.next
	seq.next++
	return id
}

// New creates a standalone node, which is the root of a new tree. The node's buffer is
// created to hold nelem elements of size tsize, and payload is copied into it.
// The length of payload has to be nelem × tsize.
//
// Options are forwarded to the node's buffer and to the buffers of all nodes
// subsequently added to the tree.
func New(nelem, tsize int, payload []byte, opts ...buffer.Option) (*Node, error) {
	node, err := newNode(nelem, tsize, payload, opts...)
	if err != nil {
		return nil, err
	}
	node.seq = &sequence{}
	node.ID = node.seq.take()
	return node, nil
}

func newNode(nelem, tsize int, payload []byte, opts ...buffer.Option) (*Node, error) {
	buf, err := buffer.Create(nelem, tsize, opts...)
	if err != nil {
		tracer().Errorf("failed to create payload buffer for node")
		return nil, err
	}
	if len(payload) != buf.Size() {
		tracer().Errorf("payload of %d bytes does not fit %d elements of size %d", len(payload), nelem, tsize)
		err = fmt.Errorf("%w: payload of %d bytes for %d×%d buffer", dsc.ErrInvalidArgument,
			len(payload), nelem, tsize)
		if e := buf.Destroy(); e != nil {
			err = fmt.Errorf("%w; %v", err, e)
		}
		return nil, err
	}
	copy(buf.Bytes(), payload)
	return &Node{Data: buf}, nil
}

// Left returns the left child of a node, or nil.
func (node *Node) Left() *Node {
	if node == nil {
		return nil
	}
	return node.left
}

// Right returns the right child of a node, or nil.
func (node *Node) Right() *Node {
	if node == nil {
		return nil
	}
	return node.right
}

// IsLeaf is true for a node without children.
func (node *Node) IsLeaf() bool {
	return node.Left() == nil && node.Right() == nil
}

// Payload returns the bytes of a node's payload, aliasing the node's buffer.
// For a destroyed node, Payload returns nil.
func (node *Node) Payload() []byte {
	if node == nil {
		return nil
	}
	return node.Data.Bytes()
}

// NextID returns the ID the next node added to the tree will get.
func (node *Node) NextID() uint64 {
	if node == nil || node.seq == nil {
		return 0
	}
	return node.seq.next
}

func (node *Node) String() string {
	if node == nil {
		return "Node(nil)"
	}
	return fmt.Sprintf("Node#%d(%d bytes)", node.ID, node.Data.Size())
}

// isValid is false for nil nodes and for nodes which have been destroyed.
func (node *Node) isValid() bool {
	return node != nil && !node.Data.IsEmpty()
}

func invalidAddress(op string) error {
	tracer().Errorf("the node points to an invalid address")
	return fmt.Errorf("%w: %s on nil or destroyed node", dsc.ErrInvalidAddress, op)
}
