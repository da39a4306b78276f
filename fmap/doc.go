/*
Package fmap implements a flat map of fixed-size keys to fixed-size values.

Keys and values are stored in two parallel buffers, entry i of the map being
key i and value i. Lookup is a linear scan comparing keys byte-wise; there is no
hashing. Flat maps are meant for small numbers of entries.
*/
package fmap

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'dsc.fmap'.
func tracer() tracing.Trace {
	return tracing.Select("dsc.fmap")
}
