package ratelimiter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFixedWindowAllowsUpToLimit(t *testing.T) {
	rl := NewFixedWindowLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		ok, _ := rl.Allow("10.0.0.1")
		assert.True(t, ok, "request %d should pass", i+1)
	}

	ok, retryAfter := rl.Allow("10.0.0.1")
	assert.False(t, ok)
	assert.Equal(t, time.Minute, retryAfter)
}

func TestFixedWindowTracksClientsSeparately(t *testing.T) {
	rl := NewFixedWindowLimiter(1, time.Minute)

	ok, _ := rl.Allow("10.0.0.1")
	assert.True(t, ok)

	ok, _ = rl.Allow("10.0.0.2")
	assert.True(t, ok, "a different client gets its own window")

	ok, _ = rl.Allow("10.0.0.1")
	assert.False(t, ok)
}
