package catlog

import (
	"strconv"
	"strings"
)

/////////////////////////////////////////////////////////////////////////////////////////

const (
	// Severity values. The trailing _SEV_MAX_for_checks_only is used as an
	// exclusive upper bound for normalization checks.
	SEV_INFO Severity = iota
	SEV_WARNING
	SEV_ERROR
	_SEV_MAX_for_checks_only
)

const (
	// Console render modes. RENDER_AUTO is resolved to RENDER_ANSI for
	// terminals and RENDER_PLAIN for anything else when a sink is set.
	RENDER_AUTO RenderMode = iota
	RENDER_MARKUP
	RENDER_ANSI
	RENDER_PLAIN
	_RENDER_MAX_for_checks_only
)

const (
	// Default values for short init forms
	DEFAULT_EMOJI      = "📝"
	DEFAULT_MARK_LABEL = "MARK"
	DEFAULT_OUT_BUFF   = 256 // initial buffer size for a decorated line
	DEFAULT_APP_NAME   = "catlog"
	MAX_EMOJI_CLUSTERS = 2   // visible characters kept from a descriptor emoji
	NAME_CACHE_LIMIT   = 100 // file-name cache is dropped entirely above this size
)

// DefaultColor is used for categories without a descriptor.
var DefaultColor = Color{R: 0xFF, G: 0xFF, B: 0xFF}

const (
	// Session file naming: <data-dir>/Logs/DebugLog_<timestamp>.txt
	LOG_DIR_NAME      = "Logs"
	LOG_FILE_PREFIX   = "DebugLog_"
	LOG_FILE_EXT      = ".txt"
	LOG_FILE_TIME_FMT = "2006-01-02_15-04-05"
)

const (
	// Inline markup produced by the formatter and understood by console sinks.
	MARKUP_COLOR_OPEN  = "<color="
	MARKUP_COLOR_CLOSE = "</color>"
	MARKUP_ITALIC_OPEN = "<i>"
	MARKUP_ITALIC_END  = "</i>"
	ORIGIN_COLOR_HEX   = "#888888"
	REPEAT_MARK        = "🔁"
)

const (
	// ANSI colored text fragments prefix/suffix used when colors are requested.
	// For a colored piece of text the sequence will be:
	// ANSI_COL_PRFX + colorSpec + ANSI_COL_SUFX + text + ANSI_COL_RESET
	ANSI_COL_PRFX    = "\033["
	ANSI_COL_SUFX    = "m"
	ANSI_COL_RESET   = ANSI_COL_PRFX + "0" + ANSI_COL_SUFX
	ANSI_ITALIC_ON   = ANSI_COL_PRFX + "3" + ANSI_COL_SUFX
	ANSI_ITALIC_OFF  = ANSI_COL_PRFX + "23" + ANSI_COL_SUFX
	ANSI_TRUECOLOR_F = "38;2;"
)

const (
	// Error messages used across logger operations (used for testing).
	_ERROR_MESSAGE_LOGGER_IS_NIL  = "logger is nil"
	_ERROR_MESSAGE_FILE_WRITE     = "[catlog] file write failed: "
	_ERROR_MESSAGE_CONSOLE_WRITE  = "[catlog] console write failed: "
	_ERROR_MESSAGE_DISPATCH_PANIC = "[catlog] panic while logging"
	_ERROR_MESSAGE_EMPTY_CATEGORY = "empty category identifier"
	_ERROR_MESSAGE_DUP_CATEGORY   = "duplicate category"
	_ERROR_MESSAGE_BAD_COLOR      = "invalid color"
	_ERROR_UNKNOWN_PANIC_TEXT     = "[no panic description]"
)

/////////////////////////////////////////////////////////////////////////////////////////

// SeverityMap is a fixed-size array with one entry per severity.
type SeverityMap [_SEV_MAX_for_checks_only]string

// Predefined severity names (used by the CLI and in diagnostics)
var SeverityNames = &SeverityMap{
	"info",    //SEV_INFO
	"warning", //SEV_WARNING
	"error",   //SEV_ERROR
}

// Default category of each severity when the caller gives none.
var severityCategory = [_SEV_MAX_for_checks_only]Category{
	CAT_NONE,    //SEV_INFO
	CAT_WARNING, //SEV_WARNING
	CAT_ERROR,   //SEV_ERROR
}

// ParseSeverity maps a severity name ("info", "warn", "warning", "error")
// to its value. Unknown names give SEV_INFO and false.
func ParseSeverity(name string) (Severity, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "info", "log", "":
		return SEV_INFO, true
	case "warn", "warning":
		return SEV_WARNING, true
	case "error", "err":
		return SEV_ERROR, true
	}
	return SEV_INFO, false
}

func (s Severity) String() string {
	if s < _SEV_MAX_for_checks_only {
		return SeverityNames[s]
	}
	return "severity(" + strconv.Itoa(int(s)) + ")"
}

// Generic byte normalization helper.
func norm_byte[T ~byte](val, overlimit, def T) T {
	if val < overlimit {
		return val
	} else {
		return def
	}
}

// DefaultCategory is the category a record of this severity gets when the
// caller gives none.
func (s Severity) DefaultCategory() Category {
	return severityCategory[normSeverity(s)]
}

// Ensures a provided Severity is within the valid range
func normSeverity(s Severity) Severity {
	return norm_byte(s, _SEV_MAX_for_checks_only, SEV_INFO)
}

// Ensures a provided RenderMode is within the valid range
func normRender(r RenderMode) RenderMode {
	return norm_byte(r, _RENDER_MAX_for_checks_only, RENDER_AUTO)
}

// Converts a panic value into a compact readable string (used when
// translating panics into errors or fallback messages)
func panicDesc(panic any) (errtext string) {
	switch v := panic.(type) {
	case string:
		errtext = ": `" + v + "`"
	case error:
		errtext = ": (error) `" + v.Error() + "`"
	default:
		errtext = " " + _ERROR_UNKNOWN_PANIC_TEXT
	}
	return errtext
}
