/*
Command dsc is an interactive harness for the containers of this module.

It reads commands line by line from stdin and applies them to a binary search tree
and a stack of integers. When stdin is a terminal, dsc prompts for input and
colours its output; otherwise it runs as a script interpreter.

Usage:

	dsc [-trace level] [-adapter go|nop] [-alloc mmap|heap] [-nocolor]

Flags may also be set by environment variables DSC_TRACE, DSC_ADAPTER, DSC_ALLOC
and DSC_NOCOLOR. Type 'help' for a list of commands.
*/
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/npillmayer/dsc/buffer"
	"github.com/npillmayer/schuko"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"golang.org/x/term"
)

// tracer traces with key 'dsc.cli'.
func tracer() tracing.Trace {
	return tracing.Select("dsc.cli")
}

func main() {
	conf, err := configure(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}
	conf[keyInteractive] = fmt.Sprint(term.IsTerminal(int(os.Stdin.Fd())))
	if err := initTracing(conf); err != nil {
		fmt.Fprintf(os.Stderr, "dsc: cannot initialize tracing: %v\n", err)
		os.Exit(1)
	}
	defer trace2go.Teardown()
	color.NoColor = conf.GetBool(keyNoColor) || !conf.IsInteractive()
	s := newSession(os.Stdin, os.Stdout, conf.IsInteractive(), allocator(conf))
	if err := s.run(); err != nil {
		tracer().Errorf("%v", err)
		os.Exit(1)
	}
}

// initTracing plugs trace2go into the tracing facade, configured from conf.
func initTracing(conf schuko.Configuration) error {
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		return err
	}
	tracing.SetTraceSelector(trace2go.Selector())
	return nil
}

// allocator creates the memory backend for all containers of a session.
func allocator(conf schuko.Configuration) buffer.Allocator {
	switch a := conf.GetString(keyAlloc); a {
	case "heap":
		return buffer.NewHeapAllocator()
	case "mmap":
		return buffer.NewMmapAllocator()
	default:
		tracer().Infof("unknown memory backend %q, using mmap", a)
		return buffer.NewMmapAllocator()
	}
}
