package transport

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"

	_ "transporter-coordinator/pkg/testing"
)

func TestRateLimiterStoreDefaults(t *testing.T) {
	store := NewRateLimiterStore(rate.Limit(2), 4)

	limiter := store.GetLimiter(1)
	assert.Equal(t, rate.Limit(2), limiter.Limit())
	assert.Equal(t, 4, limiter.Burst())

	// same machine gets the same limiter back
	assert.Same(t, limiter, store.GetLimiter(1))
	assert.NotSame(t, limiter, store.GetLimiter(2))
}

func TestRateLimiterStoreOverride(t *testing.T) {
	store := NewRateLimiterStore(rate.Limit(2), 4)

	store.SetLimiter(1, rate.Limit(10), 20)
	limiter := store.GetLimiter(1)
	assert.Equal(t, rate.Limit(10), limiter.Limit())
	assert.Equal(t, 20, limiter.Burst())
}

func TestRateLimiterStoreBurst(t *testing.T) {
	store := NewRateLimiterStore(rate.Limit(1), 3)

	limiter := store.GetLimiter(1)
	for i := 0; i < 3; i++ {
		assert.True(t, limiter.Allow())
	}
	assert.False(t, limiter.Allow())
}

func TestRateLimiterStoreConcurrent(t *testing.T) {
	store := NewRateLimiterStore(rate.Limit(1), 1)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(id uint) {
			defer wg.Done()
			store.GetLimiter(id % 4).Allow()
		}(uint(i))
	}
	wg.Wait()
}
