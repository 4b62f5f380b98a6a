package catlog

import (
	"errors"
	"io"
	"strconv"
)

/*
Fan-out of decorated lines. Every line goes to exactly one console sink
chosen by severity and, unconditionally, to the session file. The two
writes are separate failure domains: a panic or error in one is reported to
the console error sink and the other still runs. Sinks are never disabled
after a failure; each call retries.
*/

// route dispatches a decorated line. Called with dispMtx held.
func (l *Logger) route(line string, severity Severity) {
	if _, err := l.writeConsole(line, severity); err != nil {
		l.handleLogWriteError(_ERROR_MESSAGE_CONSOLE_WRITE + err.Error())
	}
	if err := l.writeFile(line); err != nil {
		l.handleLogWriteError(_ERROR_MESSAGE_FILE_WRITE + err.Error())
	}
}

// writeConsole renders the line for the severity's sink and writes it. It
// returns panicked (true if the sink panicked) and err for any write-related
// error, the panic included.
func (l *Logger) writeConsole(line string, severity Severity) (panicked bool, err error) {
	// only returns of named result values can be changed by defer:
	// https://bytegoblin.io/blog/golang-magic-modify-return-value-using-deferred-function
	defer func() {
		if r := recover(); r != nil {
			panicked = true
			err = errors.New("panic writing log to console" + panicDesc(r))
		}
	}()
	sink := l.sink(severity)
	if sink.out == nil {
		return
	}
	text := renderLine(line, sink.render) + "\n"
	n, e := io.WriteString(sink.out, text)
	if e != nil {
		err = errors.New("error writing log to console (" + strconv.Itoa(n) + " bytes written): " + e.Error())
	}
	return
}

// writeFile appends the line to the session file, converting panics to errors.
func (l *Logger) writeFile(line string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.New("panic writing log file" + panicDesc(r))
		}
	}()
	return l.file.append(line)
}

// handleLogWriteError writes a one-line diagnostic to the fallback writer
// (the console error sink unless SetFallback was used), bypassing formatting,
// collapsing and the file. It never panics.
func (l *Logger) handleLogWriteError(errormsg string) {
	defer func() { _ = recover() }()
	l.sync.outsMtx.RLock()
	out := l.fallbck
	if out == nil {
		out = l.console[SEV_ERROR].out
	}
	l.sync.outsMtx.RUnlock()
	if out != nil {
		io.WriteString(out, errormsg+"\n")
	}
}

// sink returns a copy of the console settings of a severity.
func (l *Logger) sink(severity Severity) sinkContext {
	l.sync.outsMtx.RLock()
	defer l.sync.outsMtx.RUnlock()
	return l.console[normSeverity(severity)]
}
