package restapi

import (
	"net/http"
	"sync"
	"time"

	"balance_resolver/internal/domain/entity"
	"balance_resolver/internal/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// ZapLoggerMiddleware logs one line per request through zap.
func ZapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		fields := []zap.Field{
			zap.Int("status", c.Writer.Status()),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.String("ip", c.ClientIP()),
			zap.Duration("latency", time.Since(start)),
		}
		if len(c.Errors) > 0 {
			logger.Error(c.Errors.String(), fields...)
			return
		}
		switch status := c.Writer.Status(); {
		case status >= http.StatusInternalServerError:
			logger.Warn("request served with server error", fields...)
		default:
			logger.Info("request served", fields...)
		}
	}
}

// IPRateLimiter hands out one token bucket per client IP. Idle buckets expire from the cache.
type IPRateLimiter struct {
	limiters *cache.Cache
	limit    rate.Limit
	burst    int
	mu       sync.Mutex
}

// NewIPRateLimiter creates a limiter allowing rps requests per second with the given burst per client.
func NewIPRateLimiter(rps float64, burst int, idleExpiry time.Duration) *IPRateLimiter {
	return &IPRateLimiter{
		limiters: cache.New(idleExpiry, 2*idleExpiry),
		limit:    rate.Limit(rps),
		burst:    burst,
	}
}

func (l *IPRateLimiter) limiterFor(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	if v, found := l.limiters.Get(ip); found {
		lim := v.(*rate.Limiter)
		l.limiters.Set(ip, lim, cache.DefaultExpiration) // продлеваем жизнь записи
		return lim
	}
	lim := rate.NewLimiter(l.limit, l.burst)
	l.limiters.Set(ip, lim, cache.DefaultExpiration)
	return lim
}

// Allow reports whether ip may make a request now.
func (l *IPRateLimiter) Allow(ip string) bool {
	return l.limiterFor(ip).Allow()
}

// Middleware rejects over-limit clients with 429 before any upstream is touched.
func (l *IPRateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow(c.ClientIP()) {
			metrics.RateLimitedRequests.Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, ErrorResponse{
				Error:   string(entity.KindRateLimited),
				Message: "Too many requests. Please slow down.",
			})
			return
		}
		c.Next()
	}
}
