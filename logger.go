// Package catlog is a category-tagged logger for interactive applications. Records are
// gated by a category table, decorated with emoji and color markup, collapsed
// when identical lines repeat, and written both to a console sink (chosen by
// severity) and to a plain-text per-session log file.
package catlog

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// CategoryLogger is the call-site API of a Logger, for code that wants the
// logger injected rather than constructed.
type CategoryLogger interface {
	Log(message string, category ...Category)
	Warn(message string, category ...Category)
	Error(message string, category ...Category)
	Mark(label string, category ...Category)
}

var _ CategoryLogger = (*Logger)(nil)

// DefaultDataDir returns the writable data area of an application: the user
// config directory joined with appName, or the temp directory when the
// platform has no config directory.
func DefaultDataDir(appName string) string {
	if appName == "" {
		appName = DEFAULT_APP_NAME
	}
	base, err := os.UserConfigDir()
	if err != nil || base == "" {
		base = os.TempDir()
	}
	return filepath.Join(base, appName)
}

// Init creates a logger for appName with no category table (everything is
// logged with default decoration), info and warnings on [os.Stdout], errors
// on [os.Stderr] and the session file under DefaultDataDir(appName).
//
// Preferred usage example:
//
//	func main() {
//	    log := catlog.Init("mygame").SetConfig(cfg)
//	    defer log.Close()
//	    log.Log("System initialized", catlog.CAT_SYSTEM)
//	    ...
//	}
func Init(appName string) *Logger {
	return InitWithParams(nil, DefaultDataDir(appName), os.Stdout, os.Stdout, os.Stderr)
}

// InitWithParams constructs a logger with explicit settings. Console sinks use
// RENDER_AUTO; nil sinks silently drop console output of their severity.
// The session file is not created until the first record passes the gate.
func InitWithParams(cfg *Config, dataDir string, info, warn, errout OutType) *Logger {
	l := new(Logger)
	l.msgbuf = bytes.NewBuffer(make([]byte, 0, DEFAULT_OUT_BUFF))
	l.file = newFileSink(dataDir)
	l.probe = TerminalProbe
	l.SetConfig(cfg)
	l.SetConsole(SEV_INFO, info, RENDER_AUTO)
	l.SetConsole(SEV_WARNING, warn, RENDER_AUTO)
	l.SetConsole(SEV_ERROR, errout, RENDER_AUTO)
	return l
}

// SetConfig attaches a category table (nil detaches it). The logger keeps a
// shared reference; each call reads one snapshot, so swapping the table
// while other goroutines log is safe.
func (l *Logger) SetConfig(cfg *Config) *Logger {
	l.config.Store(cfg)
	return l
}

// Config returns the attached category table (may be nil).
func (l *Logger) Config() *Config {
	return l.config.Load()
}

// SetConsole sets the sink and render mode for a severity. RENDER_AUTO picks
// ANSI colors for terminals and plain text otherwise.
//
// A sink is written while the logger dispatches, so it must not log back
// into the same logger. A Channel of this logger is dropped (same as nil);
// wrappers around one (io.MultiWriter and the like) deadlock the caller.
//
// The operation is protected by mutex for thread safety.
func (l *Logger) SetConsole(severity Severity, out OutType, mode RenderMode) *Logger {
	if l.ownChannel(out) {
		out = nil
	}
	l.sync.outsMtx.Lock()
	defer l.sync.outsMtx.Unlock()
	l.console[normSeverity(severity)] = sinkContext{out: out, render: resolveRender(out, mode)}
	return l
}

// SetFallback sets where internal failures (sink errors, recovered panics)
// are reported. nil restores the default: the SEV_ERROR console sink.
// Like console sinks, a Channel of this logger is treated as nil.
func (l *Logger) SetFallback(out OutType) *Logger {
	if l.ownChannel(out) {
		out = nil
	}
	l.sync.outsMtx.Lock()
	defer l.sync.outsMtx.Unlock()
	l.fallbck = out
	return l
}

// ownChannel reports whether out writes straight back into l.
func (l *Logger) ownChannel(out OutType) bool {
	ch, ok := out.(*Channel)
	return ok && ch != nil && ch.logger == l
}

// SetRender changes the render mode of every console sink.
func (l *Logger) SetRender(mode RenderMode) *Logger {
	l.sync.outsMtx.Lock()
	defer l.sync.outsMtx.Unlock()
	for i := range l.console {
		l.console[i].render = resolveRender(l.console[i].out, mode)
	}
	return l
}

// SetProbe sets how the editor-only gate detects an interactive context
// (nil means never interactive).
func (l *Logger) SetProbe(p Probe) *Logger {
	l.sync.chngMtx.Lock()
	defer l.sync.chngMtx.Unlock()
	if p == nil {
		p = Headless
	}
	l.probe = p
	return l
}

func (l *Logger) getProbe() Probe {
	l.sync.chngMtx.RLock()
	defer l.sync.chngMtx.RUnlock()
	return l.probe
}

// SetDataDir moves the session file under a new data directory. An already
// opened session file is closed; the next record starts a new one.
func (l *Logger) SetDataDir(dir string) *Logger {
	l.sync.dispMtx.Lock()
	defer l.sync.dispMtx.Unlock()
	old := l.file
	l.file = newFileSink(dir)
	l.file.now = old.now
	old.close()
	return l
}

// SetClock replaces the clock used to name the session file (for tests and
// hosts with their own time source). nil restores time.Now.
func (l *Logger) SetClock(now func() time.Time) *Logger {
	if now == nil {
		now = time.Now
	}
	l.sync.dispMtx.Lock()
	defer l.sync.dispMtx.Unlock()
	l.file.mu.Lock()
	defer l.file.mu.Unlock()
	l.file.now = now
	return l
}

// SessionPath returns the path of the session file, empty until the first
// record was written.
func (l *Logger) SessionPath() string {
	if l == nil {
		return ""
	}
	l.sync.dispMtx.Lock()
	defer l.sync.dispMtx.Unlock()
	return l.file.Path()
}

// IsEnabled runs the full gate for a category against the current table:
// true for everything without a table, false for categories the table does
// not list. With EditorOnly set it also asks the probe (see SetProbe), so
// the answer can change with the context; Config().IsCategoryEnabled is the
// plain table lookup.
func (l *Logger) IsEnabled(category Category) bool {
	if l == nil {
		return false
	}
	return l.config.Load().allows(category, l.getProbe())
}

// Decorators returns the emoji and "#RRGGBB" color a category is shown with.
func (l *Logger) Decorators(category Category) (emoji, colorHex string) {
	if l == nil {
		return DEFAULT_EMOJI, DefaultColor.Hex()
	}
	return l.config.Load().Decorators(category)
}

/////////////////////////////////////////////////////////////////////////////////////////

// emit is the whole pipeline for one call: gate, call-site capture, format,
// collapse, route. skip is the number of frames between emit and the code
// whose call site is reported; it is ignored when site is given.
//
// Any panic is caught here and reported to the console error sink.
func (l *Logger) emit(severity Severity, message string, categories []Category, site *CallSite, skip int) {
	if l == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			l.handleLogWriteError(_ERROR_MESSAGE_DISPATCH_PANIC + panicDesc(r))
		}
	}()
	severity = normSeverity(severity)
	category := severity.DefaultCategory()
	if len(categories) > 0 {
		category = categories[0]
	}
	cfg := l.config.Load()
	if !cfg.allows(category, l.getProbe()) {
		return
	}
	rec := logRecord{message: message, category: category, severity: severity}
	if site != nil {
		rec.site = *site
	} else {
		rec.site = callerSite(skip)
	}
	emoji, colorHex := cfg.Decorators(category)

	l.sync.dispMtx.Lock()
	defer l.sync.dispMtx.Unlock()
	fileName := l.names.baseName(rec.site.File)
	line := buildLine(l.msgbuf, &rec, fileName, emoji, colorHex).String()
	l.collapse(line, severity)
}

// valueText converts an arbitrary value to a message; nil is no message.
func valueText(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

func markText(label string) string {
	if label == "" {
		label = DEFAULT_MARK_LABEL
	}
	return "=== " + label + " ==="
}

/////////////////////////////////////////////////////////////////////////////////////////
/*
Public logging API. The optional category defaults per severity: CAT_NONE
for info, CAT_WARNING for warnings, CAT_ERROR for errors. Only the first
category given is used.

None of these functions return errors or panic: a record is either written,
gated out, or the failure is reported on the console error sink.
*/

// Log writes an info record.
func (l *Logger) Log(message string, category ...Category) {
	l.emit(SEV_INFO, message, category, nil, 2)
}

// Warn writes a warning record.
func (l *Logger) Warn(message string, category ...Category) {
	l.emit(SEV_WARNING, message, category, nil, 2)
}

// Error writes an error record.
func (l *Logger) Error(message string, category ...Category) {
	l.emit(SEV_ERROR, message, category, nil, 2)
}

// Mark writes an info record "=== label ===" ("MARK" for an empty label),
// handy to separate phases in a long log.
func (l *Logger) Mark(label string, category ...Category) {
	l.emit(SEV_INFO, markText(label), category, nil, 2)
}

// LogValue writes any value as an info record using its default format
// (errors and fmt.Stringer included). A nil value gives an empty message.
func (l *Logger) LogValue(v any, category ...Category) {
	l.emit(SEV_INFO, valueText(v), category, nil, 2)
}

// WarnValue is LogValue for warnings.
func (l *Logger) WarnValue(v any, category ...Category) {
	l.emit(SEV_WARNING, valueText(v), category, nil, 2)
}

// ErrorValue is LogValue for errors.
func (l *Logger) ErrorValue(v any, category ...Category) {
	l.emit(SEV_ERROR, valueText(v), category, nil, 2)
}

// LogAt is Log with an explicit call site, for hosts that capture it
// themselves (no stack walk).
func (l *Logger) LogAt(site CallSite, message string, category ...Category) {
	l.emit(SEV_INFO, message, category, &site, 0)
}

// WarnAt is Warn with an explicit call site.
func (l *Logger) WarnAt(site CallSite, message string, category ...Category) {
	l.emit(SEV_WARNING, message, category, &site, 0)
}

// ErrorAt is Error with an explicit call site.
func (l *Logger) ErrorAt(site CallSite, message string, category ...Category) {
	l.emit(SEV_ERROR, message, category, &site, 0)
}

// MarkAt is Mark with an explicit call site.
func (l *Logger) MarkAt(site CallSite, label string, category ...Category) {
	l.emit(SEV_INFO, markText(label), category, &site, 0)
}

/////////////////////////////////////////////////////////////////////////////////////////

// Flush writes the "repeated Nx" summary of a pending run of identical
// records now instead of waiting for a different record.
func (l *Logger) Flush() {
	if l == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			l.handleLogWriteError(_ERROR_MESSAGE_DISPATCH_PANIC + panicDesc(r))
		}
	}()
	l.sync.dispMtx.Lock()
	defer l.sync.dispMtx.Unlock()
	l.flushRepeats()
}

// Close flushes pending repeats and closes the session file. Logging after
// Close is allowed and reopens the same file.
func (l *Logger) Close() error {
	if l == nil {
		return nil
	}
	l.Flush()
	l.sync.dispMtx.Lock()
	defer l.sync.dispMtx.Unlock()
	return l.file.close()
}

// ClearCache drops the source file-name cache.
func (l *Logger) ClearCache() {
	if l == nil {
		return
	}
	l.sync.dispMtx.Lock()
	defer l.sync.dispMtx.Unlock()
	l.names = nil
}
