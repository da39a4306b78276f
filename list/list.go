package list

import (
	"errors"
	"fmt"

	"github.com/npillmayer/dsc"
	"github.com/npillmayer/dsc/buffer"
)

// List is a singly linked list. Create lists with New.
type List struct {
	head, tail *node
	length     int
	tsize      int
	opts       []buffer.Option // for the buffers of new nodes
}

type node struct {
	data buffer.Buffer
	next *node
}

// New creates an empty list for elements of tsize bytes. Options are forwarded to the
// buffers of all nodes of the list.
func New(tsize int, opts ...buffer.Option) (*List, error) {
	if tsize <= 0 {
		tracer().Errorf("invalid element size %d", tsize)
		return nil, fmt.Errorf("%w: element size %d", dsc.ErrInvalidArgument, tsize)
	}
	return &List{tsize: tsize, opts: opts}, nil
}

// Append adds a copy of data at the end of the list. data has to be exactly one element.
func (l *List) Append(data []byte) error {
	if err := l.check("append"); err != nil {
		return err
	}
	if len(data) != l.tsize {
		return fmt.Errorf("%w: %d bytes for element of size %d", dsc.ErrInvalidArgument, len(data), l.tsize)
	}
	buf, err := buffer.Create(1, l.tsize, l.opts...)
	if err != nil {
		return err
	}
	copy(buf.Bytes(), data)
	n := &node{data: buf}
	if l.tail == nil {
		l.head = n
	} else {
		l.tail.next = n
	}
	l.tail = n
	l.length++
	return nil
}

// At returns the element at index i. The slice aliases the node's buffer.
// If there is no element at i, an error wrapping dsc.ErrNotFound is returned.
func (l *List) At(i int) ([]byte, error) {
	if err := l.check("retrieve"); err != nil {
		return nil, err
	}
	n, _ := l.nodeAt(i)
	if n == nil {
		return nil, fmt.Errorf("%w: no element at index %d", dsc.ErrNotFound, i)
	}
	return n.data.Bytes(), nil
}

// Remove unlinks the element at index i and releases its buffer.
func (l *List) Remove(i int) error {
	if err := l.check("remove"); err != nil {
		return err
	}
	n, prev := l.nodeAt(i)
	if n == nil {
		return fmt.Errorf("%w: no element at index %d", dsc.ErrNotFound, i)
	}
	if prev == nil {
		l.head = n.next
	} else {
		prev.next = n.next
	}
	if l.tail == n {
		l.tail = prev
	}
	l.length--
	return n.data.Destroy()
}

// Fill sets every byte of every element to b.
func (l *List) Fill(b byte) error {
	if err := l.check("fill"); err != nil {
		return err
	}
	for n := l.head; n != nil; n = n.next {
		if err := n.data.Fill(b); err != nil {
			return err
		}
	}
	return nil
}

// Len returns the number of elements in the list.
func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return l.length
}

// Each calls f for every element in order, until f returns false.
func (l *List) Each(f func(i int, data []byte) bool) {
	if l == nil {
		return
	}
	i := 0
	for n := l.head; n != nil; n = n.next {
		if !f(i, n.data.Bytes()) {
			return
		}
		i++
	}
}

// Destroy releases the buffers of all elements. A destroyed list may not be used any more;
// destroying it again is an error (dsc.ErrInvalidAddress).
func (l *List) Destroy() error {
	if err := l.check("destroy"); err != nil {
		return err
	}
	var errs []error
	for n := l.head; n != nil; {
		next := n.next
		errs = append(errs, n.data.Destroy())
		n.next = nil
		n = next
	}
	l.head, l.tail, l.length, l.tsize = nil, nil, 0, 0
	return errors.Join(errs...)
}

func (l *List) nodeAt(i int) (n, prev *node) {
	if i < 0 || i >= l.length {
		return nil, nil
	}
	n = l.head
	for ; i > 0; i-- {
		prev, n = n, n.next
	}
	return n, prev
}

// check reports nil and destroyed lists. A destroyed list has an element size of 0.
func (l *List) check(op string) error {
	if l == nil || l.tsize == 0 {
		tracer().Errorf("the list points to an invalid address")
		return fmt.Errorf("%w: %s on nil or destroyed list", dsc.ErrInvalidAddress, op)
	}
	return nil
}
