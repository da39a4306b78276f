/*
Package dsc is a small collection of containers which share one foundation: a
manually managed, resizable memory arena (package buffer).

Containers built on top of it are a comparator-driven binary search tree (package
btree), a singly linked list (package list), a stack (package stack) and a flat
key/value table (package fmap). None of them allocates raw memory itself; every
payload lives in a buffer.Buffer owned by exactly one container node.

Containers are not safe for concurrent use. Ownership is strictly tree-shaped:
an arena belongs to one node, a node belongs to one parent (or, for a root, to
the caller).

# Errors

All packages report failures with errors wrapping one of the sentinel errors of
this package. Clients test for them with errors.Is:

	if err := root.Remove(sf); errors.Is(err, dsc.ErrNotFound) {
	    …
	}

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package dsc
