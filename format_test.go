package catlog

import (
	"bytes"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_buildLine(t *testing.T) {
	outBuffer := bytes.NewBuffer(make([]byte, DEFAULT_OUT_BUFF))
	rec := &logRecord{
		message:  "Connected",
		category: CAT_NETWORK,
		severity: SEV_INFO,
		site:     CallSite{File: "/src/net/Client.cs", Function: "Connect", Line: 42},
	}
	t.Run("full", func(t *testing.T) {
		res := buildLine(outBuffer, rec, "Client", "🌐", "#00FF00")
		assert.Equal(t, outBuffer, res, "result is another buffer")
		assert.Equal(t,
			"🌐 <color=#00FF00>[Network]</color> Connected\n<color=#888888><i>Client.Connect:42</i></color>",
			res.String())
	})
	t.Run("buffer_reset", func(t *testing.T) {
		buildLine(outBuffer, rec, "Client", "🌐", "#00FF00")
		res := buildLine(outBuffer, &logRecord{category: CAT_NONE}, "", DEFAULT_EMOJI, "#FFFFFF")
		assert.Equal(t, "📝 <color=#FFFFFF>[None]</color> \n<color=#888888><i>.:0</i></color>", res.String())
	})
	t.Run("multiline_message", func(t *testing.T) {
		r := *rec
		r.message = "line1\nline2"
		res := buildLine(outBuffer, &r, "Client", "🌐", "#00FF00")
		assert.Equal(t,
			"🌐 <color=#00FF00>[Network]</color> line1\nline2\n<color=#888888><i>Client.Connect:42</i></color>",
			res.String())
	})
	t.Run("nil_record", func(t *testing.T) {
		assert.Zero(t, buildLine(outBuffer, nil, "x", "y", "z").Len())
	})
}

func Test_repeatLine(t *testing.T) {
	assert.Equal(t, "🔁 (repeated 3x) abc", repeatLine(3, "abc"))
	assert.Equal(t, "🔁 (repeated 1x) ", repeatLine(1, ""))
}

func Test_nameCache(t *testing.T) {
	tests := []struct {
		path  string
		wants string
	}{
		{"/home/dev/game/player.go", "player"},
		{`C:\Project\Assets\Scripts\PlayerController.cs`, "PlayerController"},
		{"mixed/dir\\file.test.go", "file.test"},
		{"noext", "noext"},
		{".hidden", ".hidden"},
		{"", ""},
	}
	var c nameCache
	for _, tt := range tests {
		t.Run("path_"+tt.wants, func(t *testing.T) {
			assert.Equal(t, tt.wants, c.baseName(tt.path))
			assert.Equal(t, tt.wants, c[tt.path], "not cached")
		})
	}
	t.Run("overflow_drops_all", func(t *testing.T) {
		var c nameCache
		for i := range NAME_CACHE_LIMIT + 1 {
			c.baseName("/src/f" + strconv.Itoa(i) + ".go")
		}
		assert.Len(t, c, NAME_CACHE_LIMIT+1)
		assert.Equal(t, "next", c.baseName("/src/next.go"))
		assert.Len(t, c, 1, "cache not dropped")
		// hits never grow the cache
		assert.Equal(t, "next", c.baseName("/src/next.go"))
		assert.Len(t, c, 1)
	})
}

func Test_funcName(t *testing.T) {
	assert.Equal(t, "(*Logger).Log", funcName("github.com/abyssdigger/catlog.(*Logger).Log"))
	assert.Equal(t, "main", funcName("main.main"))
	assert.Equal(t, "Test.func1", funcName("example.com/a/b.Test.func1"))
	assert.Equal(t, "bare", funcName("bare"))
}

func Test_callerSite(t *testing.T) {
	site, line := callerSite(0), lineHere()
	assert.Equal(t, "format_test", stripExt(baseOf(site.File)))
	assert.Equal(t, "Test_callerSite", site.Function)
	assert.Equal(t, line, site.Line)
	// beyond the top of the stack
	assert.Equal(t, CallSite{}, callerSite(1000))
}

// lineHere returns the line it is called from.
func lineHere() int {
	return callerSite(1).Line
}
