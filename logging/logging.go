// Package logging provides the accumulating log a GeneratorContext and
// the driving effect keep for user-visible diagnostics, built on the
// plain standard-library log package rather than a third-party logging
// façade.
package logging

import (
	"bytes"
	"fmt"
	"log"
	"sync"
)

// Log accumulates formatted lines in memory (for display alongside a
// failed run), formatting them through a standard *log.Logger that
// writes only into that in-memory buffer.
type Log struct {
	mu     sync.Mutex
	buf    bytes.Buffer
	logger *log.Logger
}

// New returns an empty accumulating log.
func New() *Log {
	l := &Log{}
	l.logger = log.New(&l.buf, "", log.LstdFlags)
	return l
}

// Printf appends one formatted, timestamped line.
func (l *Log) Printf(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logger.Printf(format, args...)
}

// Println appends one line built from args the way fmt.Sprintln does.
func (l *Log) Println(args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logger.Print(fmt.Sprintln(args...))
}

// String returns the accumulated log text so far.
func (l *Log) String() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.buf.String()
}

// Reset clears the accumulated text without discarding the Log for
// reuse across a new run.
func (l *Log) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.buf.Reset()
}
