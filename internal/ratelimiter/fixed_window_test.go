package ratelimiter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFixedWindowRateLimiter(t *testing.T) {
	rl := NewFixedWindowLimiter(2, 50*time.Millisecond)

	allow, _ := rl.Allow("10.0.0.1")
	assert.True(t, allow)

	allow, _ = rl.Allow("10.0.0.1")
	assert.True(t, allow)

	allow, retryAfter := rl.Allow("10.0.0.1")
	assert.False(t, allow)
	assert.Equal(t, 50*time.Millisecond, retryAfter)

	// other clients are unaffected
	allow, _ = rl.Allow("10.0.0.2")
	assert.True(t, allow)

	// window reset frees the client again
	time.Sleep(80 * time.Millisecond)
	allow, _ = rl.Allow("10.0.0.1")
	assert.True(t, allow)
}
