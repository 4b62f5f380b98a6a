package catlog

import (
	"bytes"
	"errors"
)

/*********************************************************************************
io.Writer interface implementation

A Channel binds a logger to one category so it can be handed to code that
only knows io.Writer (fmt.Fprintf, log.New, exec.Cmd.Stderr...). The
semantics are:
 - Sev(severity) sets the severity used by subsequent Write calls.
 - Write(p) logs p (one trailing newline removed) as a single record and
   returns len(p). Gated-out writes are successful writes.

This allows patterns like:
  net := log.Channel(catlog.CAT_NETWORK)
  fmt.Fprintf(net.Sev(catlog.SEV_WARNING), "retry %d of %d", n, max)
*/

// Channel is an io.Writer logging into one category.
type Channel struct {
	logger   *Logger
	category Category
	severity Severity
}

// Channel returns a writer for category at SEV_INFO.
func (l *Logger) Channel(category Category) *Channel {
	return &Channel{logger: l, category: category, severity: SEV_INFO}
}

// Sev sets the severity used by subsequent writes and returns the same
// channel for chaining. Invalid values become SEV_INFO.
func (ch *Channel) Sev(severity Severity) *Channel {
	ch.severity = normSeverity(severity)
	return ch
}

// Category returns the category the channel logs into.
func (ch *Channel) Category() Category {
	return ch.category
}

// Write implements io.Writer. A nil payload is a zero-length write with no
// error; a channel without logger fails.
func (ch *Channel) Write(p []byte) (n int, err error) {
	if p == nil {
		return 0, nil
	}
	if ch.logger == nil {
		return 0, errors.New(_ERROR_MESSAGE_LOGGER_IS_NIL)
	}
	msg := bytes.TrimSuffix(p, []byte{'\n'})
	msg = bytes.TrimSuffix(msg, []byte{'\r'})
	ch.logger.emit(ch.severity, string(msg), []Category{ch.category}, nil, 2)
	return len(p), nil
}
