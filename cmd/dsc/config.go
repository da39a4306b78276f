package main

import (
	"flag"
	"os"
	"strconv"
	"strings"

	"github.com/npillmayer/schuko"
)

// Configuration keys
const (
	keyTraceAdapter = "tracing.adapter" // looked up by the tracing facade
	keyTraceLevel   = "trace.root"
	keyAlloc        = "dsc.alloc"
	keyNoColor      = "dsc.nocolor"
	keyInteractive  = "dsc.interactive"
)

// tracerKeys are the tracers of this module. trace2go looks for "trace.<tracer>" to
// find the level of a tracer.
var tracerKeys = []string{"dsc.cli", "dsc.buffer", "dsc.btree", "dsc.list", "dsc.stack", "dsc.fmap"}

// settings is a flat configuration, collected from command-line flags and environment
// variables DSC_*.
type settings map[string]string

var _ schuko.Configuration = settings{}

// configure reads flags from args, falling back to environment variables and then to
// defaults.
func configure(args []string) (settings, error) {
	conf := settings{}
	fs := flag.NewFlagSet("dsc", flag.ContinueOnError)
	trace := fs.String("trace", env("DSC_TRACE", "Error"), "trace level (Debug|Info|Error)")
	adapter := fs.String("adapter", env("DSC_ADAPTER", "go"), "trace adapter (go|nop)")
	alloc := fs.String("alloc", env("DSC_ALLOC", "mmap"), "memory backend (mmap|heap)")
	nocolor := fs.Bool("nocolor", env("DSC_NOCOLOR", "false") == "true", "suppress coloured output")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	conf[keyTraceAdapter] = *adapter
	conf[keyTraceLevel] = *trace
	for _, t := range tracerKeys {
		conf["trace."+t] = *trace
	}
	conf[keyAlloc] = strings.ToLower(*alloc)
	conf[keyNoColor] = strconv.FormatBool(*nocolor)
	conf.InitDefaults()
	return conf, nil
}

func env(key, dflt string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return dflt
}

// InitDefaults sets the values which have not been set otherwise.
func (s settings) InitDefaults() {
	defaults := map[string]string{
		keyTraceAdapter: "go",
		keyTraceLevel:   "Error",
		keyAlloc:        "mmap",
		keyNoColor:      "false",
		keyInteractive:  "false",
	}
	for k, v := range defaults {
		if _, ok := s[k]; !ok {
			s[k] = v
		}
	}
}

// IsSet is part of interface schuko.Configuration.
func (s settings) IsSet(key string) bool {
	_, ok := s[key]
	return ok
}

// GetString is part of interface schuko.Configuration.
func (s settings) GetString(key string) string {
	return s[key]
}

// GetInt is part of interface schuko.Configuration.
func (s settings) GetInt(key string) int {
	n, _ := strconv.Atoi(s[key])
	return n
}

// GetBool is part of interface schuko.Configuration.
func (s settings) GetBool(key string) bool {
	return strings.EqualFold(s[key], "true")
}

// IsInteractive is part of interface schuko.Configuration.
func (s settings) IsInteractive() bool {
	return s.GetBool(keyInteractive)
}
