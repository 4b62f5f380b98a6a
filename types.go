package catlog

/*
Defines the core data types used by the logger:
  - basetype and a small set of typed aliases for clarity
  - logRecord: one logging call, built per call and consumed immediately
  - repeatState: the collapsing state of the last emitted line
  - sinkContext: per-severity console sink settings
  - Logger: the context object that owns configuration reference, sinks,
    caches and the dispatch lock.

Also see common.go for package-wide constants, enums and helpers.
*/

import (
	"bytes"
	"io"
	"sync"
	"sync/atomic"
)

type basetype byte // basetype is the underlying byte-sized representation used for enums

type Severity basetype   // Console channel of a record (alias for byte)
type RenderMode basetype // How a console sink shows inline markup

type OutType io.Writer // Console sinks (alias for io.Writer)

// CallSite is the origin of a logging call. It is captured automatically by
// Log/Warn/Error/Mark and can be passed explicitly with the *At variants.
type CallSite struct {
	File     string // source path, only the base name without extension is printed
	Function string // function or method name
	Line     int
}

// logRecord is the unit moving through the dispatch pipeline. It is never
// stored after the call returns.
type logRecord struct {
	message  string
	category Category
	severity Severity
	site     CallSite
}

// repeatState holds the last emitted decorated line and the number of its
// identical successors that were swallowed. Mutated only under dispMtx.
type repeatState struct {
	last     string   // last emitted decorated line
	severity Severity // severity of the last emitted line (used by the summary)
	count    int      // swallowed repeats of last
}

// sinkContext holds output options of one console channel.
type sinkContext struct {
	out    OutType
	render RenderMode // never RENDER_AUTO after SetConsole
}

// Logger is the explicitly constructed logging context. It owns every piece
// of mutable state (repeat state, scratch buffer, file-name cache, session
// file) so tests and hosts can run independent loggers side by side.
//
// Configuration is shared, not owned: the logger keeps a read-only pointer
// that may be nil and may be swapped at any time.
type Logger struct {
	sync struct {
		dispMtx sync.Mutex   // guards format -> collapse -> route (the whole dispatch path)
		outsMtx sync.RWMutex // guards console sinks and fallback
		chngMtx sync.RWMutex // guards probe and misc settings
	}
	config  atomic.Pointer[Config]
	console [_SEV_MAX_for_checks_only]sinkContext
	fallbck OutType // internal error reports, nil means the SEV_ERROR console
	probe   Probe
	file    *fileSink
	names   nameCache
	msgbuf  *bytes.Buffer // buffer reused while building decorated lines
	repeat  repeatState
}
