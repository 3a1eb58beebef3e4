// Package monitoring carries the process-wide lifecycle logger and the
// status collaborator used to tell the user what the session is doing.
package monitoring

import (
	"io"
	"log"
)

// Logf is the package-level lifecycle logger. It defaults to log.Printf and
// may be replaced by SetLogger or SetLogWriter.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger replaces the package logger. Passing nil will set a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

// SetLogWriter routes Logf to w with standard timestamps. A nil writer
// mutes the logger.
func SetLogWriter(w io.Writer) {
	if w == nil {
		SetLogger(nil)
		return
	}
	SetLogger(log.New(w, "", log.LstdFlags).Printf)
}
