package catlog

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testlogstr = "Test log АБВ こんにちは, 世界`'é\"\\\x5A\t и други глупости!"
const panicStr = "panic generated in writer"
const errorStr = "error generated in writer"

type PanicWriter struct{}

func (p *PanicWriter) Write(b []byte) (int, error) { panic(panicStr) }

type NilPanicWriter struct{}

func (p *NilPanicWriter) Write(b []byte) (int, error) { panic(&runtime.PanicNilError{}) }

// &runtime.PanicNilError{} instead of nil to prevent VSC problem "panic with nil value"

type ZeroPanicWriter struct{}

func (p *ZeroPanicWriter) Write(b []byte) (int, error) { panic(0) }

type ErrorWriter struct{}

func (e *ErrorWriter) Write(b []byte) (int, error) { return 0, errors.New(errorStr) }

type FakeWriter struct {
	buffer []byte
}

func (f *FakeWriter) Write(b []byte) (int, error) {
	f.buffer = append(f.buffer, b...)
	return len(b), nil
}
func (f *FakeWriter) String() string { return string(f.buffer) }
func (f *FakeWriter) Clear()         { f.buffer = f.buffer[:0] }
func (f *FakeWriter) Lines() []string {
	s := strings.TrimSuffix(f.String(), "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// testLogger is a logger writing to fake consoles and a temp data dir.
type testLogger struct {
	*Logger
	info, warn, errs *FakeWriter
	dir              string
}

func newTestLogger(t *testing.T, cfg *Config, mode RenderMode) *testLogger {
	t.Helper()
	tl := &testLogger{info: &FakeWriter{}, warn: &FakeWriter{}, errs: &FakeWriter{}, dir: t.TempDir()}
	tl.Logger = InitWithParams(cfg, tl.dir, tl.info, tl.warn, tl.errs).SetProbe(AlwaysInteractive).SetRender(mode)
	t.Cleanup(func() { tl.Close() })
	return tl
}

// fileLines returns the session file content split into lines.
func (tl *testLogger) fileLines(t *testing.T) []string {
	t.Helper()
	path := tl.SessionPath()
	require.NotEmpty(t, path, "session file not created")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	s := strings.TrimSuffix(string(data), "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func Test_ParseSeverity(t *testing.T) {
	tests := []struct {
		name  string
		wants Severity
		ok    bool
	}{
		{"info", SEV_INFO, true},
		{"", SEV_INFO, true},
		{"Log", SEV_INFO, true},
		{"warn", SEV_WARNING, true},
		{" WARNING ", SEV_WARNING, true},
		{"error", SEV_ERROR, true},
		{"err", SEV_ERROR, true},
		{"fatal", SEV_INFO, false},
	}
	for _, tt := range tests {
		t.Run("name_"+tt.name, func(t *testing.T) {
			sev, ok := ParseSeverity(tt.name)
			assert.Equal(t, tt.wants, sev)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func Test_Severity_String(t *testing.T) {
	for sev := range _SEV_MAX_for_checks_only {
		parsed, ok := ParseSeverity(sev.String())
		assert.True(t, ok)
		assert.Equal(t, sev, parsed)
	}
	assert.Equal(t, "severity(200)", Severity(200).String())
}

func Test_Severity_DefaultCategory(t *testing.T) {
	assert.Equal(t, CAT_NONE, SEV_INFO.DefaultCategory())
	assert.Equal(t, CAT_WARNING, SEV_WARNING.DefaultCategory())
	assert.Equal(t, CAT_ERROR, SEV_ERROR.DefaultCategory())
	assert.Equal(t, CAT_NONE, Severity(99).DefaultCategory())
}

func Test_normSeverity_normRender(t *testing.T) {
	t.Run("for_255", func(t *testing.T) {
		for i := range 256 {
			sev := normSeverity(Severity(i))
			if i < int(_SEV_MAX_for_checks_only) {
				assert.Equal(t, Severity(i), sev)
			} else {
				assert.Equal(t, SEV_INFO, sev)
			}
			mode := normRender(RenderMode(i))
			if i < int(_RENDER_MAX_for_checks_only) {
				assert.Equal(t, RenderMode(i), mode)
			} else {
				assert.Equal(t, RENDER_AUTO, mode)
			}
		}
	})
}

func Test_panicDesc(t *testing.T) {
	assert.Equal(t, ": `"+panicStr+"`", panicDesc(panicStr))
	assert.Equal(t, ": (error) `"+errorStr+"`", panicDesc(errors.New(errorStr)))
	assert.Equal(t, " "+_ERROR_UNKNOWN_PANIC_TEXT, panicDesc(0))
}

func Test_Parallel_Multithreading(t *testing.T) {
	const (
		_DATACOUNT_  = 200 // Number of messages every goroutine has to log
		_GOROUTINES_ = 50  // Number of simultaneous goroutines logging
	)
	var wg sync.WaitGroup
	hold := make(chan int)

	//Rand := rand.New(rand.NewSource(0)) // repeatable results
	Rand := rand.New(rand.NewSource(time.Now().UnixNano())) // stochastic
	cats := []Category{CAT_SYSTEM, CAT_NETWORK, CAT_UI, CAT_GAMEPLAY}

	tl := newTestLogger(t, nil, RENDER_PLAIN)
	tl.SetConsole(SEV_WARNING, tl.info, RENDER_PLAIN) // one console for both severities keeps the order checkable

	goWorker := func(n int, cat Category) {
		defer wg.Done()
		for range hold { // wait until channel is closed (to start all together)
		}
		for i := range _DATACOUNT_ {
			msg := fmt.Sprintf("w%03d-%04d", n, i)
			if i%2 == 0 {
				tl.Log(msg, cat)
			} else {
				tl.Warn(msg, cat)
			}
		}
	}
	for i := range _GOROUTINES_ {
		wg.Add(1)
		go goWorker(i, cats[Rand.Intn(len(cats))])
	}
	close(hold) // unhold all goroutines
	wg.Wait()
	require.NoError(t, tl.Close())

	// Every record is two lines: the decorated message and its origin.
	lines := tl.info.Lines()
	assert.Equal(t, 2*_DATACOUNT_*_GOROUTINES_, len(lines), "wrong console lines count")
	assert.Empty(t, tl.errs.buffer, "unexpected error sink writes")
	assert.Equal(t, lines, tl.fileLines(t), "file and console differ")

	// Check messages are complete and in per-worker order
	next := make([]int, _GOROUTINES_)
	for i := 0; i < len(lines); i += 2 {
		var worker, seq int
		head := lines[i]
		pos := strings.LastIndexByte(head, ' ')
		require.Positive(t, pos, "no message on line %d: %q", i, head)
		_, err := fmt.Sscanf(head[pos+1:], "w%03d-%04d", &worker, &seq)
		require.NoError(t, err, "line %d: %q", i, head)
		assert.Equal(t, next[worker], seq, "worker %d out of order", worker)
		next[worker] = seq + 1
		assert.True(t, strings.HasPrefix(lines[i+1], "commom_test.Test_Parallel_Multithreading"), "bad origin %q", lines[i+1])
	}
}
