package monitoring

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetLogger(t *testing.T) {
	original := Logf
	defer func() { Logf = original }()

	called := false
	SetLogger(func(format string, v ...interface{}) { called = true })
	Logf("test message")
	assert.True(t, called, "custom logger was not called")

	called = false
	SetLogger(nil)
	assert.NotPanics(t, func() { Logf("test message") })
	assert.False(t, called, "no-op logger should not reach the previous logger")
}

func TestSetLogWriter(t *testing.T) {
	original := Logf
	defer func() { Logf = original }()

	var buf bytes.Buffer
	SetLogWriter(&buf)
	Logf("sensor %s ready", "synthetic")
	assert.Contains(t, buf.String(), "sensor synthetic ready")

	SetLogWriter(nil)
	Logf("dropped")
	assert.NotContains(t, buf.String(), "dropped")
}

func TestLogfDefault(t *testing.T) {
	assert.NotNil(t, Logf)
}
