/*
Package btree implements a binary search tree on top of buffer arenas.

Every node owns one buffer.Buffer holding its payload and exclusively owns up to two
child nodes. The tree has no intrinsic ordering: insertion, search and removal are
driven by caller-supplied functions. An InsertFunc decides whether a new node belongs
to the left or to the right of an existing node, a SortFunc compares a node against a
search target the function has captured.

	root, _ := btree.New(1, 8, buffer.Encode[int64](8))
	for _, n := range []int64{5, 2, 10, 7} {
	    root.Add(buffer.Encode(n), 1, btree.Ascending[int64]())
	}
	node := root.Search(btree.Target[int64](7))

Removal is subtree-delete: removing a node destroys the node together with all of its
descendants. There is no re-attachment of orphaned children and no rebalancing.

Nodes added to a tree are owned by the tree. Add does not return the new node, so
a node cannot be attached to two parents. Destroying the root destroys the whole tree.

Trees are not safe for concurrent use.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package btree

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'dsc.btree'.
func tracer() tracing.Trace {
	return tracing.Select("dsc.btree")
}

func assertThat(that bool, msg string, msgargs ...interface{}) {
	if !that {
		msg = fmt.Sprintf("btree: "+msg, msgargs...)
		panic(msg)
	}
}
