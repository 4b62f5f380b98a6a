package catlog

import (
	"bytes"
	"runtime"
	"strconv"
	"strings"
)

// nameCache maps a source path to its base name without extension. It is
// dropped entirely once it grows past NAME_CACHE_LIMIT entries. Guarded by
// dispMtx.
type nameCache map[string]string

func (c *nameCache) baseName(path string) string {
	if name, ok := (*c)[path]; ok {
		return name
	}
	name := stripExt(baseOf(path))
	if *c == nil || len(*c) > NAME_CACHE_LIMIT {
		*c = make(nameCache, 32)
	}
	(*c)[path] = name
	return name
}

// baseOf understands both separators: call sites passed in explicitly may
// carry Windows paths on any platform.
func baseOf(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}

func stripExt(name string) string {
	if i := strings.LastIndexByte(name, '.'); i > 0 {
		return name[:i]
	}
	return name
}

// funcName shortens a runtime function name to what follows the package:
// "github.com/x/y/pkg.(*T).Method" -> "(*T).Method".
func funcName(full string) string {
	if i := strings.LastIndexByte(full, '/'); i >= 0 {
		full = full[i+1:]
	}
	if i := strings.IndexByte(full, '.'); i >= 0 {
		return full[i+1:]
	}
	return full
}

// callerSite captures the frame skip levels above its caller (0 is the
// caller itself), passing over frames of the fmt, io and log packages so
// records written through a Channel point at the code calling fmt.Fprintf.
// This is a stack walk per call; the dispatch path only does it for records
// that already passed the gate.
func callerSite(skip int) CallSite {
	var pcs [16]uintptr
	n := runtime.Callers(skip+2, pcs[:])
	if n == 0 {
		return CallSite{}
	}
	frames := runtime.CallersFrames(pcs[:n])
	for {
		frame, more := frames.Next()
		if !isWriterFrame(frame.Function) {
			return CallSite{File: frame.File, Function: funcName(frame.Function), Line: frame.Line}
		}
		if !more {
			return CallSite{}
		}
	}
}

func isWriterFrame(name string) bool {
	return strings.HasPrefix(name, "fmt.") || strings.HasPrefix(name, "io.") || strings.HasPrefix(name, "log.")
}

// buildLine constructs the decorated line for a record:
//
//	<emoji> <color=#RRGGBB>[<category>]</color> <message>
//	<color=#888888><i><file>.<function>:<line></i></color>
//
// The result is written into outBuffer (which is reset first) and the same
// buffer is returned.
func buildLine(outBuffer *bytes.Buffer, rec *logRecord, fileName, emoji, colorHex string) *bytes.Buffer {
	outBuffer.Reset()
	if rec == nil {
		return outBuffer
	}
	outBuffer.WriteString(emoji)
	outBuffer.WriteByte(' ')
	outBuffer.WriteString(MARKUP_COLOR_OPEN)
	outBuffer.WriteString(colorHex)
	outBuffer.WriteString(">[")
	outBuffer.WriteString(string(rec.category))
	outBuffer.WriteString("]")
	outBuffer.WriteString(MARKUP_COLOR_CLOSE)
	outBuffer.WriteByte(' ')
	outBuffer.WriteString(rec.message)
	outBuffer.WriteByte('\n')
	outBuffer.WriteString(MARKUP_COLOR_OPEN)
	outBuffer.WriteString(ORIGIN_COLOR_HEX)
	outBuffer.WriteByte('>')
	outBuffer.WriteString(MARKUP_ITALIC_OPEN)
	outBuffer.WriteString(fileName)
	outBuffer.WriteByte('.')
	outBuffer.WriteString(rec.site.Function)
	outBuffer.WriteByte(':')
	outBuffer.WriteString(strconv.Itoa(rec.site.Line))
	outBuffer.WriteString(MARKUP_ITALIC_END)
	outBuffer.WriteString(MARKUP_COLOR_CLOSE)
	return outBuffer
}

// repeatLine is the summary emitted when a run of identical lines breaks.
func repeatLine(count int, last string) string {
	return REPEAT_MARK + " (repeated " + strconv.Itoa(count) + "x) " + last
}
