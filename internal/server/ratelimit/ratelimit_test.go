package ratelimit

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(limit int) *Limiter {
	return NewLimiter(&Config{
		Enabled: true,
		Limit:   limit,
		Window:  time.Hour, // effectively no refill during the test
		Burst:   limit,
	})
}

func TestAllow_ExhaustsBucket(t *testing.T) {
	l := newTestLimiter(10)
	defer l.Stop()

	for i := 0; i < 10; i++ {
		ok, info := l.Allow("1.2.3.4", "/api/tailor")
		require.True(t, ok, "request %d should pass", i+1)
		assert.Equal(t, 10, info.Limit)
	}

	ok, info := l.Allow("1.2.3.4", "/api/tailor")
	assert.False(t, ok)
	assert.Equal(t, 0, info.Remaining)
	assert.Greater(t, info.RetryAfter, time.Duration(0))
}

func TestAllow_PerClientBuckets(t *testing.T) {
	l := newTestLimiter(1)
	defer l.Stop()

	ok, _ := l.Allow("alice", "/api/tailor")
	require.True(t, ok)
	ok, _ = l.Allow("alice", "/api/tailor")
	assert.False(t, ok)

	ok, _ = l.Allow("bob", "/api/tailor")
	assert.True(t, ok, "a second client has its own bucket")
}

func TestAllow_UnlimitedPaths(t *testing.T) {
	l := newTestLimiter(1)
	defer l.Stop()

	ok, _ := l.Allow("alice", "/api/tailor")
	require.True(t, ok)

	for i := 0; i < 20; i++ {
		ok, info := l.Allow("alice", fmt.Sprintf("/api/health?n=%d", i))
		assert.True(t, ok)
		assert.Zero(t, info.Limit)
	}
	ok, _ = l.Allow("alice", "/output/resume.pdf")
	assert.True(t, ok)
}

func TestAllow_StreamEndpointIsLimited(t *testing.T) {
	l := newTestLimiter(1)
	defer l.Stop()

	ok, _ := l.Allow("alice", "/api/tailor-stream")
	require.True(t, ok)
	ok, _ = l.Allow("alice", "/api/tailor-stream")
	assert.False(t, ok)
}

func TestAllow_Disabled(t *testing.T) {
	l := NewLimiter(&Config{Enabled: false, Limit: 1, Window: time.Minute})
	defer l.Stop()

	for i := 0; i < 5; i++ {
		ok, _ := l.Allow("alice", "/api/tailor")
		assert.True(t, ok)
	}
}

func TestAllow_RefillsOverTime(t *testing.T) {
	l := NewLimiter(&Config{
		Enabled: true,
		Limit:   600, // ten tokens per second
		Window:  time.Minute,
		Burst:   1,
	})
	defer l.Stop()

	ok, _ := l.Allow("alice", "/api/tailor")
	require.True(t, ok)
	ok, _ = l.Allow("alice", "/api/tailor")
	require.False(t, ok)

	time.Sleep(150 * time.Millisecond)
	ok, _ = l.Allow("alice", "/api/tailor")
	assert.True(t, ok, "bucket should refill after the wait")
}

func TestNewLimiter_DefaultsBurstToLimit(t *testing.T) {
	l := NewLimiter(&Config{Enabled: true, Limit: 3, Window: time.Hour})
	defer l.Stop()

	for i := 0; i < 3; i++ {
		ok, _ := l.Allow("alice", "/api/tailor")
		require.True(t, ok)
	}
	ok, _ := l.Allow("alice", "/api/tailor")
	assert.False(t, ok)
}

func TestLimitedPath(t *testing.T) {
	assert.True(t, limitedPath("/api/tailor"))
	assert.True(t, limitedPath("/api/tailor-stream"))
	assert.False(t, limitedPath("/api/health"))
	assert.False(t, limitedPath("/api/runs"))
	assert.False(t, limitedPath("/output/x.pdf"))
}
