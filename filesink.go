package catlog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// fileSink appends plain-text lines to the per-session log file. The file
// name is fixed on the first append; opening is retried on every append
// until it succeeds, and a failed write never disables later attempts.
type fileSink struct {
	mu      sync.Mutex
	dir     string           // application data directory (the file goes to dir/Logs)
	now     func() time.Time // clock used for the file name
	session string           // session id, also used to dodge name collisions
	path    string
	file    *os.File
}

func newFileSink(dir string) *fileSink {
	return &fileSink{
		dir:     dir,
		now:     time.Now,
		session: uuid.NewString(),
	}
}

// ensure opens the session file if it is not open yet. Called with mu held.
func (f *fileSink) ensure() error {
	if f.file != nil {
		return nil
	}
	if f.path == "" {
		logDir := filepath.Join(f.dir, LOG_DIR_NAME)
		if err := os.MkdirAll(logDir, 0o755); err != nil {
			return fmt.Errorf("ensure log directory: %w", err)
		}
		name := LOG_FILE_PREFIX + f.now().Format(LOG_FILE_TIME_FMT)
		path := filepath.Join(logDir, name+LOG_FILE_EXT)
		if _, err := os.Stat(path); err == nil {
			// another session started within the same second
			path = filepath.Join(logDir, name+"_"+f.session[:8]+LOG_FILE_EXT)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("stat log file: %w", err)
		}
		f.path = path
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("ensure log directory: %w", err)
	}
	file, err := os.OpenFile(f.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file %s: %w", f.path, err)
	}
	f.file = file
	return nil
}

// append strips markup from line and writes it with a trailing newline.
func (f *fileSink) append(line string) error {
	if f == nil {
		return nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.ensure(); err != nil {
		return err
	}
	if _, err := f.file.WriteString(stripMarkup(line) + "\n"); err != nil {
		return fmt.Errorf("write log file %s: %w", f.path, err)
	}
	return nil
}

// Path returns the session file path, empty before the first append.
func (f *fileSink) Path() string {
	if f == nil {
		return ""
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.path
}

// close releases the handle; a later append reopens the same file.
func (f *fileSink) close() error {
	if f == nil {
		return nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var err error
	if f.file != nil {
		err = f.file.Close()
	}
	f.file = nil
	return err
}
