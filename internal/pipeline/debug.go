package pipeline

import (
	"io"

	"github.com/banshee-data/skeletontrail/internal/monitoring"
)

var logs = monitoring.NewStreams("[pipeline] ")

// SetLogWriters configures the three logging streams for the pipeline package.
// Pass nil for any writer to disable that stream.
func SetLogWriters(ops, diag, trace io.Writer) {
	logs.SetWriters(ops, diag, trace)
}

// Ops: frames lost to collaborator failures. Diag: gesture transitions, session summaries. Trace: per-frame admission and draw counts.
var (
	opsf   = logs.Opsf
	diagf  = logs.Diagf
	tracef = logs.Tracef
)
