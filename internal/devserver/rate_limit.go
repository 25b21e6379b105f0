package devserver

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimitConfig defines configuration for rate limiting
type RateLimitConfig struct {
	// Window is the time window for rate limiting
	Window time.Duration
	// Limit is the maximum number of requests allowed in the window
	Limit int
	// Key prefix for Redis keys
	KeyPrefix string
}

// Decision is the outcome of counting one request
type Decision struct {
	Allowed   bool
	Remaining int
	Reset     time.Time
}

// RateLimiter counts requests per user in fixed windows stored in Redis
type RateLimiter struct {
	redis  *redis.Client
	config RateLimitConfig
	now    func() time.Time
}

func NewRateLimiter(redisClient *redis.Client, config RateLimitConfig) *RateLimiter {
	return &RateLimiter{redis: redisClient, config: config, now: time.Now}
}

// NewGenerateRateLimiter limits recipe generation per user
func NewGenerateRateLimiter(redisClient *redis.Client, limit int, window time.Duration) *RateLimiter {
	return NewRateLimiter(redisClient, RateLimitConfig{
		Window:    window,
		Limit:     limit,
		KeyPrefix: "fridge:rate_limit:generate",
	})
}

// Allow counts a request from userID against its current window
func (rl *RateLimiter) Allow(ctx context.Context, userID string) (Decision, error) {
	start := rl.now().Truncate(rl.config.Window)
	key := rl.config.KeyPrefix + ":" + userID + ":" + strconv.FormatInt(start.Unix(), 10)

	var count *redis.IntCmd
	_, err := rl.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		count = pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, rl.config.Window)
		return nil
	})
	if err != nil {
		return Decision{}, err
	}

	n := int(count.Val())
	return Decision{
		Allowed:   n <= rl.config.Limit,
		Remaining: max(rl.config.Limit-n, 0),
		Reset:     start.Add(rl.config.Window),
	}, nil
}

// Middleware enforces the limit for the authenticated user. Redis errors
// let the request through.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
			return
		}

		d, err := rl.Allow(c.Request.Context(), userID)
		if err != nil {
			_ = c.Error(fmt.Errorf("rate limit check failed: %w", err))
			c.Next()
			return
		}

		h := c.Writer.Header()
		h.Set("X-RateLimit-Limit", strconv.Itoa(rl.config.Limit))
		h.Set("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
		h.Set("X-RateLimit-Reset", strconv.FormatInt(d.Reset.Unix(), 10))
		if d.Allowed {
			c.Next()
			return
		}

		retry := int(d.Reset.Sub(rl.now()).Seconds())
		h.Set("Retry-After", strconv.Itoa(max(retry, 1)))
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"error": fmt.Sprintf("Rate limit exceeded: %d recipes per %v", rl.config.Limit, rl.config.Window),
		})
	}
}
