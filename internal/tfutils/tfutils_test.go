package tfutils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseTimeframe(t *testing.T) {
	for tf, want := range map[string]time.Duration{
		"1m":  time.Minute,
		"5m":  5 * time.Minute,
		"15m": 15 * time.Minute,
		"1h":  time.Hour,
	} {
		d, err := ParseTimeframe(tf)
		assert.NoError(t, err, tf)
		assert.Equal(t, want, d, tf)
	}

	_, err := ParseTimeframe("4h")
	assert.Error(t, err, "chart does not offer 4h")
	assert.False(t, IsValidTimeframe("7m"))
	assert.Zero(t, GetTimeframeDuration("7m"))
}
