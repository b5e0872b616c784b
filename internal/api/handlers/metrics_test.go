package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatUptime(t *testing.T) {
	assert.Equal(t, "5.50s", formatUptime(5500*time.Millisecond))
	assert.Equal(t, "2m3.00s", formatUptime(2*time.Minute+3*time.Second))
	assert.Equal(t, "1h1m1.25s", formatUptime(time.Hour+time.Minute+1250*time.Millisecond))
}
