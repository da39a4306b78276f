package stack

import (
	"bytes"
	"fmt"

	"github.com/npillmayer/dsc"
	"github.com/npillmayer/dsc/buffer"
)

// ErrEmptyStack is returned when popping or peeking an empty stack.
var ErrEmptyStack = fmt.Errorf("%w: stack is empty", dsc.ErrNotFound)

// Stack is a LIFO stack. Create stacks with New.
type Stack struct {
	arena  buffer.Buffer
	offset int // in bytes
}

// New creates an empty stack for elements of tsize bytes, with room for a single element.
func New(tsize int, opts ...buffer.Option) (*Stack, error) {
	arena, err := buffer.Create(1, tsize, opts...)
	if err != nil {
		return nil, err
	}
	return &Stack{arena: arena}, nil
}

// Push puts a copy of data on top of the stack. data has to be exactly one element.
func (s *Stack) Push(data []byte) error {
	if err := s.check("push"); err != nil {
		return err
	}
	tsize := s.arena.ElementSize()
	if len(data) != tsize {
		return fmt.Errorf("%w: %d bytes for element of size %d", dsc.ErrInvalidArgument, len(data), tsize)
	}
	capacity, _ := s.arena.Capacity()
	size := s.Size()
	switch {
	case size == capacity:
		if err := s.arena.Resize(2 * capacity); err != nil {
			return err
		}
		tracer().Debugf("stack grown to %d elements", 2*capacity)
	case capacity >= 4 && size <= capacity/4:
		// shrinking may fail without harm: the buffer still has room
		if err := s.arena.Resize(capacity / 2); err != nil {
			tracer().Infof("cannot shrink stack: %v", err)
		} else {
			tracer().Debugf("stack shrunk to %d elements", capacity/2)
		}
	}
	copy(s.arena.Bytes()[s.offset:], data)
	s.offset += tsize
	return nil
}

// Pop removes the top element and returns a copy of it, owned by the caller.
func (s *Stack) Pop() ([]byte, error) {
	top, err := s.Peek()
	if err != nil {
		return nil, err
	}
	s.offset -= s.arena.ElementSize()
	return bytes.Clone(top), nil
}

// Peek returns the top element without removing it. The slice aliases the stack's
// buffer and is invalid after the next call to Push, Trim or Destroy.
func (s *Stack) Peek() ([]byte, error) {
	if err := s.check("peek"); err != nil {
		return nil, err
	}
	if s.offset == 0 {
		return nil, ErrEmptyStack
	}
	tsize := s.arena.ElementSize()
	return s.arena.Bytes()[s.offset-tsize : s.offset : s.offset], nil
}

// Size returns the number of elements on the stack.
func (s *Stack) Size() int {
	if s == nil || s.arena.IsEmpty() {
		return 0
	}
	return s.offset / s.arena.ElementSize()
}

// Offset returns the position of the top of the stack in bytes.
func (s *Stack) Offset() int {
	if s == nil {
		return 0
	}
	return s.offset
}

// Capacity returns the number of elements the stack's buffer currently has room for.
func (s *Stack) Capacity() (int, error) {
	if err := s.check("capacity"); err != nil {
		return -1, err
	}
	return s.arena.Capacity()
}

// Trim shrinks the buffer of the stack to the elements on it, but keeps
// room for at least one element.
func (s *Stack) Trim() error {
	if err := s.check("trim"); err != nil {
		return err
	}
	return s.arena.Resize(max(1, s.Size()))
}

// Destroy releases the stack's buffer. Destroying a stack twice is an
// error (dsc.ErrInvalidAddress).
func (s *Stack) Destroy() error {
	if s == nil {
		return fmt.Errorf("%w: destroy on nil stack", dsc.ErrInvalidAddress)
	}
	s.offset = 0
	return s.arena.Destroy()
}

func (s *Stack) check(op string) error {
	if s == nil || s.arena.IsEmpty() {
		tracer().Errorf("the stack points to an invalid address")
		return fmt.Errorf("%w: %s on nil or destroyed stack", dsc.ErrInvalidAddress, op)
	}
	return nil
}
