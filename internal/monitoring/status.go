package monitoring

import "sync"

// NoSensorReady is reported when discovery finds no usable sensor.
const NoSensorReady = "No ready skeleton sensor found"

// StatusReporter receives short human-readable status messages.
type StatusReporter interface {
	SetStatus(msg string)
}

// LogStatus reports status through Logf and remembers the last message.
type LogStatus struct {
	mu   sync.Mutex
	last string
}

// NewLogStatus creates a status reporter backed by the package logger.
func NewLogStatus() *LogStatus {
	return &LogStatus{}
}

// SetStatus logs msg and stores it.
func (s *LogStatus) SetStatus(msg string) {
	s.mu.Lock()
	s.last = msg
	s.mu.Unlock()
	Logf("status: %s", msg)
}

// Last returns the most recent status message, or "" if none was set.
func (s *LogStatus) Last() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// StatusFunc adapts a function to StatusReporter.
type StatusFunc func(msg string)

func (f StatusFunc) SetStatus(msg string) { f(msg) }
