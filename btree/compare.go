package btree

import (
	"bytes"

	"github.com/npillmayer/dsc/buffer"
)

// Ascending returns an InsertFunc for trees of scalar payloads, ordering nodes by the
// first element of their payload, smallest leftmost. Duplicates go right.
func Ascending[T buffer.Scalar]() InsertFunc {
	return func(node, newNode *Node) InsertCriteria {
		x, y, ok := scalars[T](node, newNode)
		if !ok {
			return 0
		}
		if y < x {
			return InsertLess
		}
		return InsertGreater
	}
}

// Descending returns an InsertFunc for trees of scalar payloads, ordering nodes by the
// first element of their payload, largest leftmost. Duplicates go right.
func Descending[T buffer.Scalar]() InsertFunc {
	return func(node, newNode *Node) InsertCriteria {
		x, y, ok := scalars[T](node, newNode)
		if !ok {
			return 0
		}
		if y > x {
			return InsertLess
		}
		return InsertGreater
	}
}

// Lexical returns an InsertFunc ordering nodes by comparing their payloads byte-wise,
// as is suitable for trees of strings. Duplicates go right.
func Lexical() InsertFunc {
	return func(node, newNode *Node) InsertCriteria {
		if bytes.Compare(newNode.Payload(), node.Payload()) < 0 {
			return InsertLess
		}
		return InsertGreater
	}
}

// Target returns a SortFunc searching for a scalar payload in a tree built with
// Ascending.
func Target[T buffer.Scalar](value T) SortFunc {
	return func(node *Node) SortCriteria {
		x, err := buffer.First[T](&node.Data)
		if err != nil {
			tracer().Errorf("cannot compare target: %v", err)
			return 0
		}
		switch {
		case value < x:
			return SortLess
		case value > x:
			return SortGreater
		}
		return SortEqual
	}
}

// Key returns a SortFunc searching for a payload of bytes in a tree built with Lexical.
func Key(key []byte) SortFunc {
	return func(node *Node) SortCriteria {
		switch bytes.Compare(key, node.Payload()) {
		case -1:
			return SortLess
		case 1:
			return SortGreater
		}
		return SortEqual
	}
}

// Reversed turns a SortFunc for ascending trees into one for descending trees.
//
//	node := root.Search(btree.Reversed(btree.Target[int64](7)))
func Reversed(f SortFunc) SortFunc {
	return func(node *Node) SortCriteria {
		switch c := f(node); c {
		case SortLess:
			return SortGreater
		case SortGreater:
			return SortLess
		default:
			return c
		}
	}
}

func scalars[T buffer.Scalar](node, newNode *Node) (x, y T, ok bool) {
	var err error
	if x, err = buffer.First[T](&node.Data); err == nil {
		y, err = buffer.First[T](&newNode.Data)
	}
	if err != nil {
		tracer().Errorf("cannot compare nodes: %v", err)
		return x, y, false
	}
	return x, y, true
}
