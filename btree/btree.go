package btree

import (
	"errors"
	"fmt"

	"github.com/npillmayer/dsc"
	"github.com/npillmayer/schuko/tracing"
)

// InsertCriteria is the result of an InsertFunc.
type InsertCriteria int

// An InsertFunc places a new node left or right of an existing one.
const (
	InsertLess    InsertCriteria = iota + 1 // new node belongs to the left
	InsertGreater                           // new node belongs to the right
)

// InsertFunc decides for a new node whether it belongs to the left or to the right of
// node. There is no equality: duplicates have to be sent to one side consistently.
type InsertFunc func(node, newNode *Node) InsertCriteria

// SortCriteria is the result of a SortFunc.
type SortCriteria int

// A SortFunc compares a node against a search target.
const (
	SortLess    SortCriteria = iota + 1 // target is left of node
	SortEqual                           // node is the target
	SortGreater                         // target is right of node
)

// SortFunc compares a search target against node. The target is captured by the
// function, usually a closure. See Target and Key.
type SortFunc func(node *Node) SortCriteria

// --- API -------------------------------------------------------------------

// Add creates a new node holding payload, which consists of nelem elements of the
// element size of the tree, and attaches it to the tree.
//
// Starting at node, Add descends left or right, as decided by f, until it finds
// a free child position. Insertion always happens at a leaf position.
//
// The new node is owned by the tree; Add does not hand it out.
func (node *Node) Add(payload []byte, nelem int, f InsertFunc) error {
	if !node.isValid() {
		return invalidAddress("add")
	}
	if f == nil {
		return fmt.Errorf("%w: insert function is nil", dsc.ErrInvalidArgument)
	}
	child, err := newNode(nelem, node.Data.ElementSize(), payload, node.Data.Option())
	if err != nil {
		return err
	}
	child.seq = node.seq
	at := node
	for {
		switch c := f(at, child); c {
		case InsertLess:
			if at.left == nil {
				at.left = child.attach()
				tracer().Debugf("attached %s left of %s", child, at)
				return nil
			}
			at = at.left
		case InsertGreater:
			if at.right == nil {
				at.right = child.attach()
				tracer().Debugf("attached %s right of %s", child, at)
				return nil
			}
			at = at.right
		default:
			tracer().Errorf("insert function returned %d", c)
			err = fmt.Errorf("%w: insert function returned %d", dsc.ErrInvalidArgument, c)
			return errors.Join(err, child.Data.Destroy())
		}
	}
}

// attach assigns an ID to a node which is about to become a child.
func (node *Node) attach() *Node {
	assertThat(node.seq != nil, "node to attach does not belong to a tree")
	node.ID = node.seq.take()
	return node
}

// Search descends from node to the target of f and returns it. If there is no node
// in the subtree for which f yields SortEqual, nil is returned.
//
// Search follows a single path: it assumes the tree has been built consistently
// with the ordering of f.
func (node *Node) Search(f SortFunc) *Node {
	target, _ := node.find(f)
	return target
}

// Parent descends from node to the target of f and returns the target's parent.
// If the target is node itself or if there is no target, nil is returned.
func (node *Node) Parent(f SortFunc) *Node {
	_, parent := node.find(f)
	return parent
}

// find is the descent shared by Search, Parent and Remove. The previous node is
// carried along the path.
func (node *Node) find(f SortFunc) (target, parent *Node) {
	if !node.isValid() || f == nil {
		return nil, nil
	}
	at := node
	for at != nil {
		switch c := f(at); c {
		case SortEqual:
			return at, parent
		case SortLess:
			parent, at = at, at.left
		case SortGreater:
			parent, at = at, at.right
		default:
			tracer().Errorf("sort function returned %d", c)
			return nil, nil
		}
	}
	return nil, nil
}

// Remove finds the target of f below node, unlinks it from its parent and destroys it
// together with all of its descendants.
//
// If there is no target, an error wrapping dsc.ErrNotFound is returned. The target
// may not be node itself: to remove a complete tree, use Destroy.
func (node *Node) Remove(f SortFunc) error {
	if !node.isValid() {
		return invalidAddress("remove")
	}
	if f == nil {
		return fmt.Errorf("%w: sort function is nil", dsc.ErrInvalidArgument)
	}
	target, parent := node.find(f)
	if target == nil {
		tracer().Infof("node to remove not found")
		return fmt.Errorf("%w: no node to remove", dsc.ErrNotFound)
	}
	if parent == nil {
		assertThat(target == node, "target without parent is not the starting node")
		return fmt.Errorf("%w: cannot remove starting node, use Destroy", dsc.ErrInvalidArgument)
	}
	switch target {
	case parent.left:
		parent.left = nil
	case parent.right:
		parent.right = nil
	default:
		assertThat(false, "%s is not a child of its parent %s", target, parent)
	}
	tracer().Debugf("removing subtree %s below %s", target, parent)
	tracing.With(tracer()).Dump("removed", target)
	return target.destroy()
}

// Destroy destroys a node with all of its descendants, children first.
//
// Destroying a node twice is an error (dsc.ErrInvalidAddress). Release failures do not
// stop the teardown; they are reported collectively.
func (node *Node) Destroy() error {
	if !node.isValid() {
		return invalidAddress("destroy")
	}
	return node.destroy()
}

func (node *Node) destroy() error {
	var errs []error
	if node.left != nil {
		errs = append(errs, node.left.destroy())
		node.left = nil
	}
	if node.right != nil {
		errs = append(errs, node.right.destroy())
		node.right = nil
	}
	errs = append(errs, node.Data.Destroy())
	return errors.Join(errs...)
}
