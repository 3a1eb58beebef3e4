package monitoring

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogStatus(t *testing.T) {
	original := Logf
	defer func() { Logf = original }()

	var logged []string
	SetLogger(func(format string, v ...interface{}) {
		logged = append(logged, fmt.Sprintf(format, v...))
	})

	s := NewLogStatus()
	assert.Equal(t, "", s.Last())

	s.SetStatus(NoSensorReady)
	assert.Equal(t, NoSensorReady, s.Last())
	assert.Equal(t, []string{"status: " + NoSensorReady}, logged)

	s.SetStatus("running")
	assert.Equal(t, "running", s.Last())
	assert.Len(t, logged, 2)
}

func TestStatusFunc(t *testing.T) {
	var got string
	var r StatusReporter = StatusFunc(func(msg string) { got = msg })
	r.SetStatus("hello")
	assert.Equal(t, "hello", got)
}
