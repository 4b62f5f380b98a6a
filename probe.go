package catlog

import (
	"os"
	"sync"

	"github.com/mattn/go-isatty"
)

// Probe implementations tell whether the process runs in an interactive
// (development) context. Configs with EditorOnly set drop every record when
// the probe says no.
type Probe interface {
	Interactive() bool
}

// ProbeFunc adapts a plain function to Probe.
type ProbeFunc func() bool

func (f ProbeFunc) Interactive() bool {
	return f != nil && f()
}

type always bool

func (a always) Interactive() bool {
	return bool(a)
}

var (
	// AlwaysInteractive always reports an interactive context.
	AlwaysInteractive Probe = always(true)
	// Headless never reports an interactive context.
	Headless Probe = always(false)
)

// TerminalProbe reports an interactive context when stdout or stderr is a
// terminal. The answer is computed once per process.
var TerminalProbe Probe = ProbeFunc(sync.OnceValue(func() bool {
	return isTerminal(os.Stdout) || isTerminal(os.Stderr)
}))

func isTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// resolveRender turns RENDER_AUTO into a concrete mode for out.
func resolveRender(out OutType, mode RenderMode) RenderMode {
	mode = normRender(mode)
	if mode != RENDER_AUTO {
		return mode
	}
	if f, ok := out.(*os.File); ok && isTerminal(f) {
		return RENDER_ANSI
	}
	return RENDER_PLAIN
}
