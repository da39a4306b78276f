package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/fatih/color"
	"github.com/npillmayer/dsc"
	"github.com/npillmayer/dsc/btree"
	"github.com/npillmayer/dsc/buffer"
	"github.com/npillmayer/dsc/stack"
)

var (
	promptColor = color.New(color.FgBlue, color.Bold)
	okColor     = color.New(color.FgGreen)
	errColor    = color.New(color.FgRed)
	infoColor   = color.New(color.FgCyan)
)

// session holds the containers a user operates on. Tree and stack hold int64 values.
type session struct {
	scanner     *bufio.Scanner
	out         io.Writer
	interactive bool
	alloc       buffer.Allocator
	tree        *btree.Node // nil until the first add
	stack       *stack.Stack
}

func newSession(in io.Reader, out io.Writer, interactive bool, alloc buffer.Allocator) *session {
	return &session{
		scanner:     bufio.NewScanner(in),
		out:         out,
		interactive: interactive,
		alloc:       alloc,
	}
}

// run reads and executes commands until input is exhausted or the user exits.
// All containers are destroyed before run returns.
func (s *session) run() (err error) {
	defer func() {
		err = errors.Join(err, s.teardown())
	}()
	if s.interactive {
		s.printHelp()
	}
	s.printPrompt()
	for s.scanner.Scan() {
		if quit := s.processInput(s.scanner.Text()); quit {
			return nil
		}
		s.printPrompt()
	}
	return s.scanner.Err()
}

func (s *session) printPrompt() {
	if s.interactive {
		promptColor.Fprint(s.out, "dsc> ")
	}
}

func (s *session) printHelp() {
	fmt.Fprint(s.out, `
DSC CLI

Available Commands:
  add <n>…                  Insert numbers into the tree
  search <n>                Find the node holding n
  parent <n>                Find the parent of the node holding n
  remove <n>                Remove the subtree rooted at the node holding n
  list [in|pre|post] [max]  Flatten the tree in traversal order
  print                     Print the tree
  count                     Print number of nodes and height of the tree
  push <n>                  Push n on the stack
  pop                       Pop the top of the stack
  peek                      Print the top of the stack
  stats                     Print memory statistics
  demo                      Run the demo scenarios
  help                      Print this text
  exit                      Terminate this session
`)
}

// processInput executes a single command line. It returns true if the session should end.
func (s *session) processInput(line string) bool {
	fields := strings.Fields(line)
	if len(fields) < 1 || strings.HasPrefix(fields[0], "#") {
		return false
	}
	command, args := strings.ToLower(fields[0]), fields[1:]
	var err error
	switch command {
	default:
		err = fmt.Errorf("unknown command %q", command)
	case "add":
		err = s.add(args)
	case "search":
		err = s.search(args, false)
	case "parent":
		err = s.search(args, true)
	case "remove":
		err = s.remove(args)
	case "list":
		err = s.list(args)
	case "print":
		err = s.print()
	case "count":
		fmt.Fprintf(s.out, "%d nodes, height %d\n", s.tree.Count(), s.tree.Height())
	case "push":
		err = s.push(args)
	case "pop":
		err = s.pop(false)
	case "peek":
		err = s.pop(true)
	case "stats":
		spew.Fdump(s.out, s.alloc.Stats())
	case "demo":
		err = s.demo()
	case "help":
		s.printHelp()
	case "exit", "quit":
		return true
	}
	if err != nil {
		tracer().Infof("command %q failed: %v", command, err)
		errColor.Fprintf(s.out, "error: %v\n", err)
	}
	return false
}

// --- Tree commands ---------------------------------------------------------

func (s *session) add(args []string) error {
	nums, err := numbers(args, 1, -1)
	if err != nil {
		return err
	}
	for _, n := range nums {
		if s.tree == nil {
			if s.tree, err = btree.New(1, 8, buffer.Encode(n), buffer.WithAllocator(s.alloc)); err != nil {
				return err
			}
			continue
		}
		if err = s.tree.Add(buffer.Encode(n), 1, btree.Ascending[int64]()); err != nil {
			return err
		}
	}
	okColor.Fprintf(s.out, "added %d numbers\n", len(nums))
	return nil
}

func (s *session) search(args []string, parent bool) error {
	nums, err := numbers(args, 1, 1)
	if err != nil {
		return err
	}
	var node *btree.Node
	if parent {
		node = s.tree.Parent(btree.Target(nums[0]))
	} else {
		node = s.tree.Search(btree.Target(nums[0]))
	}
	if node == nil {
		infoColor.Fprintln(s.out, "not found")
		return nil
	}
	fmt.Fprintln(s.out, label(node))
	return nil
}

func (s *session) remove(args []string) error {
	nums, err := numbers(args, 1, 1)
	if err != nil {
		return err
	}
	target := btree.Target(nums[0])
	if s.tree != nil && target(s.tree) == btree.SortEqual {
		err = s.tree.Destroy()
		s.tree = nil
	} else {
		err = s.tree.Remove(target)
	}
	if err != nil {
		return err
	}
	okColor.Fprintln(s.out, "removed")
	return nil
}

func (s *session) list(args []string) error {
	order := btree.InOrder
	limit := s.tree.Count()
	for _, arg := range args {
		switch arg {
		case "in":
			order = btree.InOrder
		case "pre":
			order = btree.PreOrder
		case "post":
			order = btree.PostOrder
		default:
			n, err := strconv.Atoi(arg)
			if err != nil || n < 0 {
				return fmt.Errorf("usage: list [in|pre|post] [max]")
			}
			limit = min(n, limit)
		}
	}
	nodes := make([]*btree.Node, limit)
	n, err := s.tree.Flatten(nodes, order)
	if err != nil {
		return err
	}
	labels := make([]string, n)
	for i, node := range nodes[:n] {
		labels[i] = value(node)
	}
	fmt.Fprintln(s.out, strings.Join(labels, " "))
	return nil
}

func (s *session) print() error {
	if s.tree == nil {
		return fmt.Errorf("%w: tree is empty", dsc.ErrInvalidAddress)
	}
	fmt.Fprint(s.out, s.tree.Dump(label))
	return nil
}

// --- Stack commands --------------------------------------------------------

func (s *session) push(args []string) error {
	nums, err := numbers(args, 1, 1)
	if err != nil {
		return err
	}
	if s.stack == nil {
		if s.stack, err = stack.New(8, buffer.WithAllocator(s.alloc)); err != nil {
			return err
		}
	}
	return s.stack.Push(buffer.Encode(nums[0]))
}

func (s *session) pop(peek bool) error {
	if s.stack == nil {
		return stack.ErrEmptyStack
	}
	var top []byte
	var err error
	if peek {
		top, err = s.stack.Peek()
	} else {
		top, err = s.stack.Pop()
	}
	if err != nil {
		return err
	}
	n, err := buffer.Decode[int64](top)
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, n)
	return nil
}

// --- Demo ------------------------------------------------------------------

// demo builds two trees, independent of the session's tree, and prints their
// in-order traversal.
func (s *session) demo() error {
	opt := buffer.WithAllocator(s.alloc)
	root, err := btree.New(1, 8, buffer.Encode[int64](8), opt)
	if err != nil {
		return err
	}
	for _, n := range []int64{5, 2, 10, 7, 21, 3} {
		if err = root.Add(buffer.Encode(n), 1, btree.Ascending[int64]()); err != nil {
			return errors.Join(err, root.Destroy())
		}
	}
	infoColor.Fprintln(s.out, "numbers:")
	fmt.Fprint(s.out, root.Dump(label))
	if err = s.printInOrder(root, value); err != nil {
		return errors.Join(err, root.Destroy())
	}
	if err = root.Destroy(); err != nil {
		return err
	}
	words := []string{"a", "sentence", "may", "contain", "many", "words"}
	root, err = btree.New(len(words[0]), 1, []byte(words[0]), opt)
	if err != nil {
		return err
	}
	for _, w := range words[1:] {
		if err = root.Add([]byte(w), len(w), btree.Lexical()); err != nil {
			return errors.Join(err, root.Destroy())
		}
	}
	text := func(node *btree.Node) string { return string(node.Payload()) }
	infoColor.Fprintln(s.out, "words:")
	fmt.Fprint(s.out, root.Dump(text))
	if err = root.Remove(btree.Key([]byte("may"))); err == nil {
		infoColor.Fprintln(s.out, "words without 'may':")
		err = s.printInOrder(root, text)
	}
	return errors.Join(err, root.Destroy())
}

func (s *session) printInOrder(root *btree.Node, f func(*btree.Node) string) error {
	nodes := make([]*btree.Node, root.Count())
	n, err := root.Flatten(nodes, btree.InOrder)
	if err != nil {
		return err
	}
	labels := make([]string, n)
	for i, node := range nodes[:n] {
		labels[i] = f(node)
	}
	fmt.Fprintln(s.out, strings.Join(labels, " "))
	return nil
}

// --- Helpers ---------------------------------------------------------------

func (s *session) teardown() error {
	var errs []error
	if s.tree != nil {
		errs = append(errs, s.tree.Destroy())
		s.tree = nil
	}
	if s.stack != nil {
		errs = append(errs, s.stack.Destroy())
		s.stack = nil
	}
	return errors.Join(errs...)
}

// numbers parses args as int64 values. atLeast and atMost (-1 = unlimited) restrict
// the number of arguments.
func numbers(args []string, atLeast, atMost int) ([]int64, error) {
	if len(args) < atLeast || (atMost >= 0 && len(args) > atMost) {
		return nil, fmt.Errorf("%w: wrong number of arguments", dsc.ErrInvalidArgument)
	}
	nums := make([]int64, len(args))
	for i, arg := range args {
		n, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a number", dsc.ErrInvalidArgument, arg)
		}
		nums[i] = n
	}
	return nums, nil
}

func value(node *btree.Node) string {
	n, err := buffer.First[int64](&node.Data)
	if err != nil {
		return "?"
	}
	return strconv.FormatInt(n, 10)
}

func label(node *btree.Node) string {
	return fmt.Sprintf("%s (#%d)", value(node), node.ID)
}
