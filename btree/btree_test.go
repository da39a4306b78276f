package btree

import (
	"errors"
	"math/rand"
	"sort"
	"strconv"
	"testing"

	"github.com/npillmayer/dsc"
	"github.com/npillmayer/dsc/buffer"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNode(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dsc.btree")
	defer teardown()
	//
	root, err := New(1, 8, buffer.Encode[int64](8))
	if err != nil {
		t.Fatalf("expected new root to be created, got error %v", err)
	}
	if root.ID != 0 || root.NextID() != 1 {
		t.Errorf("expected root ID 0 and next ID 1, is %d and %d", root.ID, root.NextID())
	}
	if !root.IsLeaf() || root.Count() != 1 || root.Height() != 1 {
		t.Errorf("expected single leaf node, is %s", root.Dump(nil))
	}
	x, err := buffer.First[int64](&root.Data)
	require.NoError(t, err)
	assert.Equal(t, int64(8), x)
	require.NoError(t, root.Destroy())
}

func TestNewNodeInvalid(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dsc.btree")
	defer teardown()
	//
	a := buffer.NewHeapAllocator()
	_, err := New(2, 8, buffer.Encode[int64](8), buffer.WithAllocator(a))
	if !errors.Is(err, dsc.ErrInvalidArgument) {
		t.Errorf("expected payload size mismatch to be an invalid argument, is %v", err)
	}
	_, err = New(0, 8, nil, buffer.WithAllocator(a))
	assert.ErrorIs(t, err, dsc.ErrInvalidArgument)
	assert.Equal(t, int64(0), a.Stats().Live(), "failed create must not leak buffers")
}

func TestNumbersInOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dsc.btree")
	defer teardown()
	//
	root := numbersTree(t)
	defer root.Destroy()
	list := make([]*Node, 7)
	n, err := root.Flatten(list, InOrder)
	require.NoError(t, err)
	if n != 7 {
		t.Fatalf("expected 7 nodes to be flattened, is %d", n)
	}
	if got := ints(t, list); !assert.Equal(t, []int64{2, 3, 5, 7, 8, 10, 21}, got) {
		t.Logf("tree =\n%s", root.Dump(intLabel))
	}
}

func TestTraversalOrders(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dsc.btree")
	defer teardown()
	//
	root := numbersTree(t)
	defer root.Destroy()
	for _, c := range []struct {
		order DFSMethod
		want  []int64
	}{
		{InOrder, []int64{2, 3, 5, 7, 8, 10, 21}},
		{PreOrder, []int64{8, 5, 2, 3, 7, 10, 21}},
		{PostOrder, []int64{3, 2, 7, 5, 21, 10, 8}},
	} {
		list := make([]*Node, 10)
		n, err := root.Flatten(list, c.order)
		require.NoError(t, err)
		assert.Equal(t, c.want, ints(t, list[:n]), "%s traversal", c.order)
	}
	_, err := root.Flatten(make([]*Node, 1), DFSMethod(7))
	assert.ErrorIs(t, err, dsc.ErrInvalidArgument)
}

func TestBoundedFlatten(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dsc.btree")
	defer teardown()
	//
	root := numbersTree(t)
	defer root.Destroy()
	for _, order := range []DFSMethod{InOrder, PreOrder, PostOrder} {
		list := make([]*Node, 5)
		n, err := root.Flatten(list[:3], order)
		require.NoError(t, err)
		if n != 3 {
			t.Errorf("expected %s flatten to write 3 nodes, wrote %d", order, n)
		}
		if list[3] != nil || list[4] != nil {
			t.Errorf("expected %s flatten not to write past its bound", order)
		}
	}
	n, err := root.Flatten(nil, InOrder)
	assert.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestSearch(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dsc.btree")
	defer teardown()
	//
	root := numbersTree(t)
	defer root.Destroy()
	for _, x := range []int64{5, 2, 10, 7, 8, 21, 3} {
		node := root.Search(Target(x))
		if node == nil {
			t.Errorf("expected to find node for %d, didn't", x)
			continue
		}
		y, _ := buffer.First[int64](&node.Data)
		assert.Equal(t, x, y)
	}
	for _, x := range []int64{0, 4, 9, 100} {
		if node := root.Search(Target(x)); node != nil {
			t.Errorf("expected not to find node for %d, found %s", x, node)
		}
	}
	assert.Nil(t, root.Search(nil))
	var nilnode *Node
	assert.Nil(t, nilnode.Search(Target[int64](8)))
}

func TestParent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dsc.btree")
	defer teardown()
	//
	root := numbersTree(t)
	defer root.Destroy()
	for child, parent := range map[int64]int64{3: 2, 7: 5, 21: 10, 5: 8, 10: 8} {
		p := root.Parent(Target(child))
		require.NotNil(t, p, "parent of %d", child)
		x, _ := buffer.First[int64](&p.Data)
		assert.Equal(t, parent, x, "parent of %d", child)
	}
	if p := root.Parent(Target[int64](8)); p != nil {
		t.Errorf("expected root to have no parent, has %s", p)
	}
	if p := root.Parent(Target[int64](4)); p != nil {
		t.Errorf("expected missing node to have no parent, has %s", p)
	}
}

func TestWordsRemove(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dsc.btree")
	defer teardown()
	//
	a := buffer.NewHeapAllocator()
	words := []string{"a", "sentence", "may", "contain", "many", "words"}
	root, err := New(len(words[0]), 1, []byte(words[0]), buffer.WithAllocator(a))
	require.NoError(t, err)
	for _, w := range words[1:] {
		require.NoError(t, root.Add([]byte(w), len(w), Lexical()))
	}
	t.Logf("tree =\n%s", root.Dump(stringLabel))
	require.Equal(t, int64(6), a.Stats().Live())
	err = root.Remove(Key([]byte("may")))
	require.NoError(t, err)
	list := make([]*Node, len(words))
	n, err := root.Flatten(list, InOrder)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "sentence", "words"}, payloadStrings(list[:n]))
	assert.Nil(t, root.Search(Key([]byte("contain"))))
	assert.Nil(t, root.Search(Key([]byte("many"))))
	if live := a.Stats().Live(); live != 3 {
		t.Errorf("expected removal to release 3 buffers, %d are left", live)
	}
	require.NoError(t, root.Destroy())
	assert.Equal(t, int64(0), a.Stats().Live())
	assert.Equal(t, int64(0), a.Stats().LiveBytes)
}

func TestRemoveErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dsc.btree")
	defer teardown()
	//
	root := numbersTree(t)
	defer root.Destroy()
	err := root.Remove(Target[int64](4))
	if !errors.Is(err, dsc.ErrNotFound) {
		t.Errorf("expected removal of missing node to report not found, is %v", err)
	}
	assert.ErrorIs(t, root.Remove(Target[int64](8)), dsc.ErrInvalidArgument)
	assert.ErrorIs(t, root.Remove(nil), dsc.ErrInvalidArgument)
	assert.Equal(t, 7, root.Count(), "failed removals must not change the tree")
	require.NoError(t, root.Remove(Target[int64](2)))
	assert.Equal(t, 5, root.Count())
	assert.Nil(t, root.Search(Target[int64](3)))
	assert.ErrorIs(t, root.Remove(Target[int64](2)), dsc.ErrNotFound)
}

func TestDestroyedTree(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dsc.btree")
	defer teardown()
	//
	a := buffer.NewHeapAllocator()
	root, err := New(1, 8, buffer.Encode[int64](8), buffer.WithAllocator(a))
	require.NoError(t, err)
	for _, x := range []int64{5, 2, 10} {
		require.NoError(t, root.Add(buffer.Encode(x), 1, Ascending[int64]()))
	}
	require.NoError(t, root.Destroy())
	assert.Equal(t, int64(0), a.Stats().Live())
	assert.True(t, root.IsLeaf())
	err = root.Destroy()
	if !errors.Is(err, dsc.ErrInvalidAddress) {
		t.Errorf("expected double destroy to report invalid address, is %v", err)
	}
	assert.ErrorIs(t, root.Add(buffer.Encode[int64](1), 1, Ascending[int64]()), dsc.ErrInvalidAddress)
	assert.ErrorIs(t, root.Remove(Target[int64](5)), dsc.ErrInvalidAddress)
	_, err = root.Flatten(make([]*Node, 3), InOrder)
	assert.ErrorIs(t, err, dsc.ErrInvalidAddress)
	assert.Nil(t, root.Search(Target[int64](8)))
	var nilnode *Node
	assert.ErrorIs(t, nilnode.Destroy(), dsc.ErrInvalidAddress)
	assert.ErrorIs(t, nilnode.Add(nil, 1, Lexical()), dsc.ErrInvalidAddress)
}

func TestAddInvalid(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dsc.btree")
	defer teardown()
	//
	a := buffer.NewHeapAllocator()
	root, err := New(1, 8, buffer.Encode[int64](8), buffer.WithAllocator(a))
	require.NoError(t, err)
	defer root.Destroy()
	broken := func(node, newNode *Node) InsertCriteria { return 0 }
	err = root.Add(buffer.Encode[int64](3), 1, broken)
	assert.ErrorIs(t, err, dsc.ErrInvalidArgument)
	assert.ErrorIs(t, root.Add(buffer.Encode[int64](3), 1, nil), dsc.ErrInvalidArgument)
	assert.ErrorIs(t, root.Add(buffer.Encode[int32](3), 1, Ascending[int64]()), dsc.ErrInvalidArgument)
	assert.Equal(t, int64(1), a.Stats().Live(), "failed adds must not leak buffers")
	assert.Equal(t, uint64(1), root.NextID(), "failed adds must not use up IDs")
}

func TestIDs(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dsc.btree")
	defer teardown()
	//
	root := numbersTree(t)
	defer root.Destroy()
	assert.Equal(t, uint64(7), root.NextID())
	ids := make(map[uint64]bool)
	err := root.Walk(PreOrder, func(n *Node) bool {
		if ids[n.ID] {
			t.Errorf("duplicate node ID %d", n.ID)
		}
		ids[n.ID] = true
		return true
	})
	require.NoError(t, err)
	assert.Len(t, ids, 7)
	require.NoError(t, root.Remove(Target[int64](10)))
	require.NoError(t, root.Add(buffer.Encode[int64](11), 1, Ascending[int64]()))
	assert.Equal(t, uint64(7), root.Search(Target[int64](11)).ID)
}

func TestDuplicatesGoRight(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dsc.btree")
	defer teardown()
	//
	root, err := New(1, 8, buffer.Encode[int64](5))
	require.NoError(t, err)
	defer root.Destroy()
	require.NoError(t, root.Add(buffer.Encode[int64](5), 1, Ascending[int64]()))
	require.NoError(t, root.Add(buffer.Encode[int64](5), 1, Ascending[int64]()))
	assert.Nil(t, root.Left())
	assert.NotNil(t, root.Right())
	assert.NotNil(t, root.Right().Right())
	assert.Same(t, root, root.Search(Target[int64](5)), "search finds top-most duplicate")
}

func TestDescendingChars(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dsc.btree")
	defer teardown()
	//
	root, err := New(1, 1, []byte{'n'})
	require.NoError(t, err)
	defer root.Destroy()
	for _, c := range []byte("zqraspmic") {
		require.NoError(t, root.Add([]byte{c}, 1, Descending[uint8]()))
	}
	needle := root.Search(Reversed(Target[uint8]('p')))
	require.NotNil(t, needle)
	assert.Equal(t, []byte{'p'}, needle.Payload())
	list := make([]*Node, 10)
	n, _ := root.Flatten(list, InOrder)
	var s []byte
	for _, node := range list[:n] {
		s = append(s, node.Payload()...)
	}
	assert.Equal(t, "zsrqpnmica", string(s))
}

func TestWalkStops(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dsc.btree")
	defer teardown()
	//
	root := numbersTree(t)
	defer root.Destroy()
	visited := 0
	err := root.Walk(InOrder, func(n *Node) bool {
		visited++
		x, _ := buffer.First[int64](&n.Data)
		return x < 7
	})
	require.NoError(t, err)
	assert.Equal(t, 4, visited)
	assert.ErrorIs(t, root.Walk(InOrder, nil), dsc.ErrInvalidArgument)
}

func TestHeight(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dsc.btree")
	defer teardown()
	//
	root := numbersTree(t)
	defer root.Destroy()
	if h := root.Height(); h != 4 {
		t.Logf("tree =\n%s", root.Dump(intLabel))
		t.Errorf("expected height of 4, is %d", h)
	}
	assert.Equal(t, 0, (*Node)(nil).Height())
}

func TestRandomInsertsAreSorted(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dsc.btree")
	defer teardown()
	//
	a := buffer.NewHeapAllocator()
	rnd := rand.New(rand.NewSource(4711))
	values := make([]int64, 200)
	for i := range values {
		values[i] = rnd.Int63n(1000)
	}
	root, err := New(1, 8, buffer.Encode(values[0]), buffer.WithAllocator(a))
	require.NoError(t, err)
	for _, x := range values[1:] {
		require.NoError(t, root.Add(buffer.Encode(x), 1, Ascending[int64]()))
	}
	list := make([]*Node, len(values))
	n, err := root.Flatten(list, InOrder)
	require.NoError(t, err)
	require.Equal(t, len(values), n)
	sorted := append([]int64(nil), values...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	assert.Equal(t, sorted, ints(t, list))
	for _, x := range values {
		assert.NotNil(t, root.Search(Target(x)), "search for inserted %d", x)
	}
	require.NoError(t, root.Destroy())
	assert.Equal(t, int64(0), a.Stats().LiveBytes)
}

func TestDump(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dsc.btree")
	defer teardown()
	//
	root, err := New(1, 8, buffer.Encode[int64](8))
	require.NoError(t, err)
	defer root.Destroy()
	for _, x := range []int64{5, 2, 7, 10} {
		require.NoError(t, root.Add(buffer.Encode(x), 1, Ascending[int64]()))
	}
	s := root.Dump(intLabel)
	t.Logf("tree =\n%s", s)
	assert.Equal(t, "8\n├── [L]  5\n│   ├── [L]  2\n│   └── [R]  7\n└── [R]  10\n", s)
	assert.Equal(t, "<nil>\n", (*Node)(nil).Dump(nil))
}

func TestNewOutOfMemory(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dsc.btree")
	defer teardown()
	//
	a := &starvedAllocator{HeapAllocator: buffer.NewHeapAllocator(), starved: true}
	root, err := New(1, 8, buffer.Encode[int64](8), buffer.WithAllocator(a))
	if !errors.Is(err, dsc.ErrOutOfMemory) {
		t.Errorf("expected failed allocation to report out of memory, is %v", err)
	}
	assert.Nil(t, root)
	assert.Equal(t, int64(0), a.Stats().Live())
}

func TestAddOutOfMemory(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dsc.btree")
	defer teardown()
	//
	a := &starvedAllocator{HeapAllocator: buffer.NewHeapAllocator()}
	root, err := New(1, 8, buffer.Encode[int64](8), buffer.WithAllocator(a))
	require.NoError(t, err)
	defer root.Destroy()
	a.starved = true
	err = root.Add(buffer.Encode[int64](5), 1, Ascending[int64]())
	if !errors.Is(err, dsc.ErrOutOfMemory) {
		t.Errorf("expected failed allocation to report out of memory, is %v", err)
	}
	assert.Equal(t, 1, root.Count(), "failed add must not change the tree")
	assert.Equal(t, uint64(1), root.NextID(), "failed add must not use up an ID")
	assert.Equal(t, int64(1), a.Stats().Live())
	assert.True(t, root.IsLeaf())
}

// --- Helpers ---------------------------------------------------------------

// starvedAllocator fails every allocation while starved is set.
type starvedAllocator struct {
	*buffer.HeapAllocator
	starved bool
}

func (s *starvedAllocator) Alloc(size int) ([]byte, error) {
	if s.starved {
		return nil, errors.New("no memory")
	}
	return s.HeapAllocator.Alloc(size)
}

// numbersTree builds
//
//	8
//	├── 5
//	│   ├── 2
//	│   │   └── 3
//	│   └── 7
//	└── 10
//	    └── 21
func numbersTree(t *testing.T) *Node {
	root, err := New(1, 8, buffer.Encode[int64](8))
	if err != nil {
		t.Fatalf("cannot create root: %v", err)
	}
	for _, x := range []int64{5, 2, 10, 7, 21, 3} {
		if err = root.Add(buffer.Encode(x), 1, Ascending[int64]()); err != nil {
			t.Fatalf("cannot add %d: %v", x, err)
		}
	}
	return root
}

func ints(t *testing.T, list []*Node) []int64 {
	r := make([]int64, len(list))
	for i, node := range list {
		x, err := buffer.First[int64](&node.Data)
		if err != nil {
			t.Fatalf("cannot read payload of %s: %v", node, err)
		}
		r[i] = x
	}
	return r
}

func payloadStrings(list []*Node) []string {
	r := make([]string, len(list))
	for i, node := range list {
		r[i] = string(node.Payload())
	}
	return r
}

func intLabel(node *Node) string {
	x, _ := buffer.First[int64](&node.Data)
	return strconv.FormatInt(x, 10)
}

func stringLabel(node *Node) string {
	return string(node.Payload())
}
