package catlog

import (
	"fmt"
	"log"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Channel_Sev(t *testing.T) {
	t.Run("for_255", func(t *testing.T) {
		var ch Channel
		for sev := range Severity(255) {
			assert.Equal(t, normSeverity(sev), ch.Sev(sev).severity, fmt.Sprintf("Fail on %d", sev))
		}
	})
}

func Test_Channel_Write(t *testing.T) {
	t.Run("full_message", func(t *testing.T) {
		tl := newTestLogger(t, nil, RENDER_PLAIN)
		ch := tl.Channel(CAT_NETWORK)
		assert.Equal(t, CAT_NETWORK, ch.Category())
		n, err := ch.Write([]byte("connected\n"))
		require.NoError(t, err)
		assert.Equal(t, len("connected\n"), n)
		assert.Equal(t, "📝 [Network] connected", tl.info.Lines()[0])
	})
	t.Run("fprintf", func(t *testing.T) {
		tl := newTestLogger(t, nil, RENDER_PLAIN)
		line := lineHere() + 1
		n, err := fmt.Fprintf(tl.Channel(CAT_UI).Sev(SEV_WARNING), "fps %d", 29)
		require.NoError(t, err)
		assert.Equal(t, 6, n)
		assert.Equal(t, []string{
			"📝 [UI] fps 29",
			"writer_test.Test_Channel_Write.func2:" + strconv.Itoa(line),
		}, tl.warn.Lines())
	})
	t.Run("std_log", func(t *testing.T) {
		tl := newTestLogger(t, nil, RENDER_PLAIN)
		std := log.New(tl.Channel(CAT_SYSTEM).Sev(SEV_ERROR), "", 0)
		line := lineHere() + 1
		std.Println("disk full")
		assert.Equal(t, []string{
			"📝 [System] disk full",
			"writer_test.Test_Channel_Write.func3:" + strconv.Itoa(line),
		}, tl.errs.Lines())
	})
	t.Run("gated_out", func(t *testing.T) {
		tl := newTestLogger(t, networkOffSystemOn(), RENDER_PLAIN)
		n, err := tl.Channel(CAT_NETWORK).Write([]byte("ping"))
		assert.NoError(t, err)
		assert.Equal(t, 4, n)
		assert.Empty(t, tl.info.buffer)
	})
	t.Run("nil_message", func(t *testing.T) {
		tl := newTestLogger(t, nil, RENDER_PLAIN)
		n, err := tl.Channel(CAT_UI).Write(nil)
		assert.NoError(t, err)
		assert.Zero(t, n)
		assert.Empty(t, tl.info.buffer)
		assert.Empty(t, tl.SessionPath())
	})
	t.Run("no_logger", func(t *testing.T) {
		var l *Logger
		n, err := l.Channel(CAT_UI).Write([]byte("x"))
		assert.EqualError(t, err, _ERROR_MESSAGE_LOGGER_IS_NIL)
		assert.Zero(t, n)
	})
	t.Run("crlf", func(t *testing.T) {
		tl := newTestLogger(t, nil, RENDER_PLAIN)
		_, err := tl.Channel(CAT_UI).Write([]byte("dos\r\n"))
		assert.NoError(t, err)
		assert.Equal(t, "📝 [UI] dos", tl.info.Lines()[0])
	})
}
