package sensor

import (
	"io"

	"github.com/banshee-data/skeletontrail/internal/monitoring"
)

var logs = monitoring.NewStreams("[sensor] ")

// SetLogWriters configures the three logging streams for the sensor package.
// Pass nil for any writer to disable that stream.
func SetLogWriters(ops, diag, trace io.Writer) {
	logs.SetWriters(ops, diag, trace)
}

// Ops: start failures, dropped frames. Diag: lifecycle and mode changes. Trace: per-frame delivery.
var (
	opsf   = logs.Opsf
	diagf  = logs.Diagf
	tracef = logs.Tracef
)
