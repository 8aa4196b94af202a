// Package oplog writes category-specific append-only log files for operator
// forensics. Logging never fails the caller; file errors degrade to slog.
package oplog

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Logger appends to one file per category under a base directory.
type Logger struct {
	dir      string
	disabled bool

	mu    sync.Mutex
	files map[string]*os.File
}

// New creates a logger rooted at dir, creating the directory if needed.
func New(dir string) *Logger {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		slog.Warn("oplog directory unavailable, logging to slog only", "dir", dir, "error", err)
	}
	return &Logger{dir: dir, files: make(map[string]*os.File)}
}

// Log appends one timestamped line to the category's file.
func (l *Logger) Log(category, format string, args ...any) {
	line := fmt.Sprintf(format, args...)

	if l.disabled {
		slog.Debug("oplog", "category", category, "line", line)
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := l.file(category)
	if err != nil {
		slog.Warn("oplog write failed", "category", category, "error", err, "line", line)
		return
	}
	fmt.Fprintf(f, "%s %s\n", time.Now().UTC().Format(time.RFC3339), line)
}

func (l *Logger) file(category string) (*os.File, error) {
	if f, ok := l.files[category]; ok {
		return f, nil
	}
	path := filepath.Join(l.dir, category+".log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	l.files[category] = f
	return f, nil
}

// Close closes every open category file.
func (l *Logger) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, f := range l.files {
		f.Close()
	}
	l.files = make(map[string]*os.File)
}

// Discard returns a logger that writes nowhere on disk. Useful in tests.
func Discard() *Logger {
	return &Logger{disabled: true, files: make(map[string]*os.File)}
}
