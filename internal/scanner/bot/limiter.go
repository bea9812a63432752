package bot

import (
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

const limiterIdleTTL = 30 * time.Minute

// userLimiter 每个用户一个令牌桶，长时间不用的会被回收
type userLimiter struct {
	limiters *cache.Cache
	limit    rate.Limit
	burst    int
}

func newUserLimiter(perMinute float64, burst int) *userLimiter {
	limit := rate.Inf
	if perMinute > 0 {
		limit = rate.Limit(perMinute / 60)
	}
	if burst <= 0 {
		burst = 1
	}
	return &userLimiter{
		limiters: cache.New(limiterIdleTTL, 10*time.Minute),
		limit:    limit,
		burst:    burst,
	}
}

func (l *userLimiter) Allow(userID string) bool {
	if v, ok := l.limiters.Get(userID); ok {
		limiter := v.(*rate.Limiter)
		l.limiters.SetDefault(userID, limiter)
		return limiter.Allow()
	}
	limiter := rate.NewLimiter(l.limit, l.burst)
	if err := l.limiters.Add(userID, limiter, cache.DefaultExpiration); err != nil {
		// 并发下已被其他请求创建
		if v, ok := l.limiters.Get(userID); ok {
			limiter = v.(*rate.Limiter)
		}
	}
	return limiter.Allow()
}
