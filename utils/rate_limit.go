package utils

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	cmap "github.com/orcaman/concurrent-map/v2"
	"golang.org/x/time/rate"
)

const limiterIdleTime = 5 * time.Minute

type visitor struct {
	mu       sync.Mutex
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter is a per client IP token bucket
type RateLimiter struct {
	limit    rate.Limit
	burst    int
	visitors cmap.ConcurrentMap[string, *visitor]
}

func NewRateLimiter(perMinute int) *RateLimiter {
	if perMinute < 1 {
		perMinute = 1
	}
	return &RateLimiter{
		limit:    rate.Every(time.Minute / time.Duration(perMinute)),
		burst:    max(perMinute/2, 1),
		visitors: cmap.New[*visitor](),
	}
}

// Allow reports whether the given key may proceed now
func (rl *RateLimiter) Allow(key string) bool {
	now := time.Now()
	v := rl.visitors.Upsert(key, nil, func(exist bool, valueInMap, _ *visitor) *visitor {
		if exist {
			return valueInMap
		}
		return &visitor{limiter: rate.NewLimiter(rl.limit, rl.burst)}
	})
	v.mu.Lock()
	defer v.mu.Unlock()
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

// Cleanup forgets visitors idle for longer than limiterIdleTime
func (rl *RateLimiter) Cleanup() {
	now := time.Now()
	for _, key := range rl.visitors.Keys() {
		rl.visitors.RemoveCb(key, func(_ string, v *visitor, exists bool) bool {
			if !exists {
				return false
			}
			v.mu.Lock()
			defer v.mu.Unlock()
			return now.Sub(v.lastSeen) > limiterIdleTime
		})
	}
}

func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"message": "Too many requests"})
			return
		}
		c.Next()
	}
}

// StartCleanup runs Cleanup periodically until stop is closed
func (rl *RateLimiter) StartCleanup(every time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(every)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				rl.Cleanup()
			case <-stop:
				return
			}
		}
	}()
}
