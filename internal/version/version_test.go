package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	origV, origSHA, origTime := Version, GitSHA, BuildTime
	defer func() { Version, GitSHA, BuildTime = origV, origSHA, origTime }()

	Version, GitSHA, BuildTime = "1.2.3", "abc123", "2026-01-01T00:00:00Z"
	assert.Equal(t, "skeletontrail 1.2.3 (abc123, built 2026-01-01T00:00:00Z)", String())
}
