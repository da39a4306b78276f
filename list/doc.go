/*
Package list implements a singly linked list of fixed-size elements. Every list node
holds its element in a buffer of its own.
*/
package list

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'dsc.list'.
func tracer() tracing.Trace {
	return tracing.Select("dsc.list")
}
