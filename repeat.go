package catlog

// collapse feeds one decorated line into the repeat state machine:
//   - a line equal to the last emitted one only bumps the counter;
//   - any other line first flushes the "repeated Nx" summary (at the
//     severity of the swallowed run), then is routed and becomes the last line.
//
// Only the immediately preceding line can be collapsed. Called with dispMtx held.
func (l *Logger) collapse(line string, severity Severity) {
	r := &l.repeat
	if line == r.last {
		r.count++
		return
	}
	l.flushRepeats()
	l.route(line, severity)
	r.last = line
	r.severity = severity
}

// flushRepeats routes the summary of the swallowed run, if any, and resets
// the counter. The last line is kept so later repeats still collapse.
// Called with dispMtx held.
func (l *Logger) flushRepeats() {
	r := &l.repeat
	if r.count > 0 {
		l.route(repeatLine(r.count, r.last), r.severity)
		r.count = 0
	}
}
