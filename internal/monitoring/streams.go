package monitoring

import (
	"io"
	"log"
	"sync"
)

// Streams is a package's ops, diag and trace loggers. Ops carries failures
// an operator should see, diag carries lifecycle and state changes, and
// trace carries per-frame detail. A stream with no writer is muted.
type Streams struct {
	prefix string

	mu    sync.RWMutex
	ops   *log.Logger
	diag  *log.Logger
	trace *log.Logger
}

// NewStreams returns muted streams whose lines start with prefix.
func NewStreams(prefix string) *Streams {
	return &Streams{prefix: prefix}
}

// SetWriters points the three streams at ops, diag and trace. Pass nil for
// any writer to disable that stream.
func (s *Streams) SetWriters(ops, diag, trace io.Writer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ops = s.logger(ops)
	s.diag = s.logger(diag)
	s.trace = s.logger(trace)
}

func (s *Streams) logger(w io.Writer) *log.Logger {
	if w == nil {
		return nil
	}
	return log.New(w, s.prefix, log.LstdFlags|log.Lmicroseconds)
}

func printf(l *log.Logger, format string, args []interface{}) {
	if l != nil {
		l.Printf(format, args...)
	}
}

// Opsf logs to the ops stream.
func (s *Streams) Opsf(format string, args ...interface{}) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	printf(s.ops, format, args)
}

// Diagf logs to the diag stream.
func (s *Streams) Diagf(format string, args ...interface{}) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	printf(s.diag, format, args)
}

// Tracef logs to the trace stream.
func (s *Streams) Tracef(format string, args ...interface{}) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	printf(s.trace, format, args)
}
