package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newBackend serves the routes registered by setup
func newBackend(t *testing.T, setup func(r *gin.Engine)) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	setup(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func fixedID() string { return "generated-id" }

func TestNewClientHeaders(t *testing.T) {
	var got http.Header
	srv := newBackend(t, func(r *gin.Engine) {
		r.GET("/fitness/goals", func(c *gin.Context) {
			got = c.Request.Header.Clone()
			c.JSON(http.StatusOK, gin.H{"calories": 2000})
		})
	})

	client := NewClient(srv.URL, "tok-123")
	_, err := client.Fitness.Goals(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", got.Get("Authorization"))
	assert.Equal(t, "application/json", got.Get("Content-Type"))
	assert.True(t, client.Authorized())
}

func TestNewClientWithoutToken(t *testing.T) {
	var got http.Header
	srv := newBackend(t, func(r *gin.Engine) {
		r.GET("/recipes", func(c *gin.Context) {
			got = c.Request.Header.Clone()
			c.JSON(http.StatusOK, []any{})
		})
	})

	client := NewClient(srv.URL+"/", "")
	_, err := client.Recipes.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got.Get("Authorization"))
	assert.False(t, client.Authorized())
}

func TestNon2xxNeverSucceeds(t *testing.T) {
	srv := newBackend(t, func(r *gin.Engine) {
		r.NoRoute(func(c *gin.Context) {
			// a plausible payload that must not leak through as success
			c.JSON(http.StatusInternalServerError, gin.H{"id": "1", "name": "Soup", "calories": 10})
		})
	})
	client := NewClient(srv.URL, "tok")
	ctx := context.Background()

	calls := map[string]func() error{
		"Failed to fetch recipes":        func() error { _, err := client.Recipes.List(ctx); return err },
		"Failed to fetch recipe":         func() error { _, err := client.Recipes.Get(ctx, "1"); return err },
		"Failed to save recipe":          func() error { return client.Recipes.Save(ctx, "1") },
		"Failed to favorite recipe":      func() error { return client.Recipes.Favorite(ctx, "1") },
		"Failed to unfavorite recipe":    func() error { return client.Recipes.Unfavorite(ctx, "1") },
		"Failed to get recommendations":  func() error { _, err := client.Recipes.Recommendations(ctx); return err },
		"Failed to fetch saved recipes":  func() error { _, err := client.User.SavedRecipes(ctx); return err },
		"Failed to get profile":          func() error { _, err := client.User.Profile(ctx); return err },
		"Failed to update preferences":   func() error { return client.User.UpdatePreferences(ctx, typesPrefs()) },
		"Failed to fetch fitness goals":  func() error { _, err := client.Fitness.Goals(ctx); return err },
		"Failed to update fitness goals": func() error { _, err := client.Fitness.UpdateGoals(ctx, typesGoals()); return err },
		"Failed to generate recipe":      func() error { _, err := client.Recipes.Generate(ctx, typesParams()); return err },
	}

	for want, call := range calls {
		t.Run(want, func(t *testing.T) {
			err := call()
			require.Error(t, err)
			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, want, apiErr.Message)
			assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
		})
	}
}

func TestHistoryFallbackMessages(t *testing.T) {
	srv := newBackend(t, func(r *gin.Engine) {
		r.NoRoute(func(c *gin.Context) { c.Status(http.StatusNotFound) })
	})
	client := NewClient(srv.URL, "tok")

	_, err := client.Recipes.History(context.Background())
	assert.EqualError(t, err, "Failed to fetch recipe history")
	_, err = client.User.RecipeHistory(context.Background())
	assert.EqualError(t, err, "Failed to fetch recipe history")
}

func TestTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := NewClient(url, "tok")
	_, err := client.Recipes.List(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "Failed to fetch recipes", apiErr.Message)
	assert.Zero(t, apiErr.StatusCode)
	assert.NotNil(t, apiErr.Unwrap())
	assert.Contains(t, err.Error(), "Failed to fetch recipes: ")
}

func TestIsUnauthorized(t *testing.T) {
	srv := newBackend(t, func(r *gin.Engine) {
		r.GET("/user/profile", func(c *gin.Context) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		})
	})
	client := NewClient(srv.URL, "stale")

	_, err := client.User.Profile(context.Background())
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
	assert.False(t, IsUnauthorized(io.EOF))

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "invalid token", apiErr.Detail)
	assert.Equal(t, "Failed to get profile", apiErr.Message)
}

func TestMetrics(t *testing.T) {
	srv := newBackend(t, func(r *gin.Engine) {
		r.GET("/recipes", func(c *gin.Context) { c.JSON(http.StatusOK, []any{}) })
		r.GET("/fitness/goals", func(c *gin.Context) { c.Status(http.StatusBadGateway) })
	})

	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	client := NewClient(srv.URL, "tok", WithMetrics(m))

	_, err := client.Recipes.List(context.Background())
	require.NoError(t, err)
	_, err = client.Fitness.Goals(context.Background())
	require.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("recipes", "list", outcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("fitness", "goals", outcomeRejected)))
	assert.Equal(t, 2, testutil.CollectAndCount(m.duration))
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() { m.observe("recipes", "list", outcomeOK, 0) })
}
