package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLimiter_AllowsWithinLimit(t *testing.T) {
	l := NewLimiter(&Config{Enabled: true, Limit: 3, Window: time.Minute})

	for i := 0; i < 3; i++ {
		assert.True(t, l.Allow("client-1"), "request %d should be allowed", i)
	}
	assert.False(t, l.Allow("client-1"), "burst exhausted")
}

func TestLimiter_ClientsAreIndependent(t *testing.T) {
	l := NewLimiter(&Config{Enabled: true, Limit: 1, Window: time.Minute})

	assert.True(t, l.Allow("a"))
	assert.False(t, l.Allow("a"))
	assert.True(t, l.Allow("b"))
}

func TestLimiter_DisabledAllowsEverything(t *testing.T) {
	l := NewLimiter(&Config{Enabled: false, Limit: 1, Window: time.Minute})

	for i := 0; i < 100; i++ {
		assert.True(t, l.Allow("client"))
	}
}

func TestLimiter_NilConfigUsesDefaults(t *testing.T) {
	l := NewLimiter(nil)
	assert.True(t, l.Allow("client"))
}

func TestLimiter_TokensRefill(t *testing.T) {
	// 60 per second so a short sleep refills the bucket.
	l := NewLimiter(&Config{Enabled: true, Limit: 1, Window: time.Second / 60})

	assert.True(t, l.Allow("client"))
	assert.False(t, l.Allow("client"))

	time.Sleep(40 * time.Millisecond)
	assert.True(t, l.Allow("client"), "token should have refilled")
}
