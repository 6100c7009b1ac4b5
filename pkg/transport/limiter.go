package transport

import (
	"sync"

	"golang.org/x/time/rate"
)

// RateLimiterStore manages per-machine poll limiters: machine id -> limiter
type RateLimiterStore struct {
	limiters     map[uint]*rate.Limiter
	mu           sync.Mutex
	defaultRate  rate.Limit
	defaultBurst int
}

func NewRateLimiterStore(defaultRate rate.Limit, defaultBurst int) *RateLimiterStore {
	return &RateLimiterStore{
		limiters:     make(map[uint]*rate.Limiter),
		defaultRate:  defaultRate,
		defaultBurst: defaultBurst,
	}
}

func (s *RateLimiterStore) GetLimiter(machineID uint) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	limiter, exists := s.limiters[machineID]
	if !exists {
		limiter = rate.NewLimiter(s.defaultRate, s.defaultBurst)
		s.limiters[machineID] = limiter
	}
	return limiter
}

func (s *RateLimiterStore) SetLimiter(machineID uint, machineRate rate.Limit, machineBurst int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.limiters[machineID] = rate.NewLimiter(machineRate, machineBurst)
}
