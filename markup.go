package catlog

import (
	"strconv"
	"strings"
)

// scanMarkup walks s and replaces every tag-like span "<...>" with the
// result of replace(tag). A span never crosses a line break, and a '<'
// without a closing '>' on the same line is kept as text.
func scanMarkup(s string, replace func(tag string) string) string {
	if strings.IndexByte(s, '<') < 0 {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s))
	for {
		start := strings.IndexByte(s, '<')
		if start < 0 {
			sb.WriteString(s)
			break
		}
		end := strings.IndexAny(s[start+1:], ">\n")
		if end < 0 || s[start+1+end] == '\n' {
			// no closing bracket on this line: '<' is plain text
			sb.WriteString(s[:start+1])
			s = s[start+1:]
			continue
		}
		end += start + 1
		sb.WriteString(s[:start])
		sb.WriteString(replace(s[start : end+1]))
		s = s[end+1:]
	}
	return sb.String()
}

// stripMarkup removes every tag-like span, leaving plain text.
func stripMarkup(s string) string {
	return scanMarkup(s, func(string) string { return "" })
}

// ansiMarkup translates the formatter's markup into ANSI escapes. Spans the
// formatter does not produce are kept as they are.
func ansiMarkup(s string) string {
	return scanMarkup(s, func(tag string) string {
		switch {
		case tag == MARKUP_COLOR_CLOSE:
			return ANSI_COL_RESET
		case tag == MARKUP_ITALIC_OPEN:
			return ANSI_ITALIC_ON
		case tag == MARKUP_ITALIC_END:
			return ANSI_ITALIC_OFF
		case strings.HasPrefix(tag, MARKUP_COLOR_OPEN):
			var c Color
			if err := c.UnmarshalText([]byte(tag[len(MARKUP_COLOR_OPEN) : len(tag)-1])); err != nil {
				return tag
			}
			return ANSI_COL_PRFX + ANSI_TRUECOLOR_F +
				strconv.Itoa(int(c.R)) + ";" + strconv.Itoa(int(c.G)) + ";" + strconv.Itoa(int(c.B)) +
				ANSI_COL_SUFX
		}
		return tag
	})
}

// renderLine prepares a decorated line for a console sink.
func renderLine(line string, mode RenderMode) string {
	switch mode {
	case RENDER_ANSI:
		return ansiMarkup(line)
	case RENDER_PLAIN:
		return stripMarkup(line)
	}
	return line
}
