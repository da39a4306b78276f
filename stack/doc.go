/*
Package stack implements a LIFO stack of fixed-size elements in a single buffer.

The stack keeps a logical top offset into its buffer. Push grows the buffer
geometrically when it is full. Pop only moves the top offset and never touches the
buffer; giving memory back is deferred until the next Push finds the buffer used to
a quarter or less, or until a client calls Trim.

Pop hands out a copy of the removed element. The slice returned by Peek aliases the
stack's buffer; it stays valid until the next call to Push, Trim or Destroy.
*/
package stack

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'dsc.stack'.
func tracer() tracing.Trace {
	return tracing.Select("dsc.stack")
}
