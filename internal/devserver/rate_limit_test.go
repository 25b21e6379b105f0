package devserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/fridge/internal/database"
	"github.com/pageza/fridge/internal/testhelpers"
)

func TestRateLimiterAllow(t *testing.T) {
	ctx := context.Background()
	client, err := database.NewRedisClient(ctx, testhelpers.StartRedis(t))
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	rl := NewGenerateRateLimiter(client, 2, time.Hour)
	start := time.Date(2024, 5, 1, 10, 15, 0, 0, time.UTC)
	rl.now = func() time.Time { return start }

	d, err := rl.Allow(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, d.Allowed)
	assert.Equal(t, 1, d.Remaining)
	assert.Equal(t, time.Date(2024, 5, 1, 11, 0, 0, 0, time.UTC), d.Reset.UTC())

	d, err = rl.Allow(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, d.Allowed)
	assert.Equal(t, 0, d.Remaining)

	d, err = rl.Allow(ctx, "user-1")
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.Equal(t, 0, d.Remaining)

	d, err = rl.Allow(ctx, "user-2")
	require.NoError(t, err)
	assert.True(t, d.Allowed, "limits are per user")

	rl.now = func() time.Time { return start.Add(time.Hour) }
	d, err = rl.Allow(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, d.Allowed, "a new window starts a new count")
}

func TestRateLimiterMiddleware(t *testing.T) {
	ctx := context.Background()
	client, err := database.NewRedisClient(ctx, testhelpers.StartRedis(t))
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	rl := NewGenerateRateLimiter(client, 1, time.Hour)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/generate", func(c *gin.Context) {
		if id := c.GetHeader("X-User"); id != "" {
			c.Set("user_id", id)
		}
		c.Next()
	}, rl.Middleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	send := func(user string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/generate", nil)
		if user != "" {
			req.Header.Set("X-User", user)
		}
		r.ServeHTTP(w, req)
		return w
	}

	w := send("user-1")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

	w = send("user-1")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "Rate limit exceeded: 1 recipes per 1h0m0s")
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	w = send("")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
