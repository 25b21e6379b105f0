package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/fridge/internal/types"
)

func TestProfile(t *testing.T) {
	srv := newBackend(t, func(r *gin.Engine) {
		r.GET("/user/profile", func(c *gin.Context) {
			c.Data(http.StatusOK, "application/json", []byte(`{
				"id": "u1",
				"email": "cook@example.com",
				"fitnessGoal": {"calories": 1800, "allergies": ["nuts"]},
				"preferences": {"preferredCuisines": ["thai"]},
				"savedRecipes": [{"id": 7, "name": "Curry", "cookingTime": "35"}],
				"favoriteRecipes": null
			}`))
		})
	})
	client := NewClient(srv.URL, "tok")

	profile, err := client.User.Profile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "u1", profile.ID)
	assert.Equal(t, 1800.0, profile.FitnessGoal.Calories)
	assert.Equal(t, []string{"thai"}, profile.Preferences.PreferredCuisines)
	require.Len(t, profile.SavedRecipes, 1)
	assert.Equal(t, "7", profile.SavedRecipes[0].ID)
	assert.Equal(t, 35.0, profile.SavedRecipes[0].CookingTime)
	assert.Empty(t, profile.FavoriteRecipes)
	assert.NotNil(t, profile.FavoriteRecipes)
}

func TestUpdatePreferences(t *testing.T) {
	var got types.UserPreferences
	srv := newBackend(t, func(r *gin.Engine) {
		r.PUT("/user/preferences", func(c *gin.Context) {
			assert.NoError(t, c.ShouldBindJSON(&got))
			c.Status(http.StatusNoContent)
		})
	})
	client := NewClient(srv.URL, "tok")

	prefs := types.UserPreferences{
		DietaryRestrictions: ParseList("gluten, , dairy"),
		CookingSkillLevel:   3,
	}
	require.NoError(t, client.User.UpdatePreferences(context.Background(), prefs))
	assert.Equal(t, prefs, got)
}

func TestSavedRecipes(t *testing.T) {
	srv := newBackend(t, func(r *gin.Engine) {
		r.GET("/user/saved-recipes", func(c *gin.Context) {
			c.JSON(http.StatusOK, []gin.H{{"id": "s1", "name": "Salad", "ingredients": []string{"kale"}}})
		})
	})
	client := NewClient(srv.URL, "tok")

	recipes, err := client.User.SavedRecipes(context.Background())
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, []types.Ingredient{{Item: "kale"}}, recipes[0].Ingredients)
}

func TestFitnessGoals(t *testing.T) {
	var stored types.FitnessGoals
	srv := newBackend(t, func(r *gin.Engine) {
		r.POST("/fitness/goals", func(c *gin.Context) {
			assert.NoError(t, c.ShouldBindJSON(&stored))
			c.JSON(http.StatusOK, stored)
		})
		r.GET("/fitness/goals", func(c *gin.Context) {
			c.JSON(http.StatusOK, stored)
		})
	})
	client := NewClient(srv.URL, "tok")
	ctx := context.Background()

	saved, err := client.Fitness.UpdateGoals(ctx, types.FitnessGoals{Calories: 2200, Protein: 150})
	require.NoError(t, err)
	assert.Equal(t, 2200.0, saved.Calories)
	assert.Equal(t, []string{}, saved.Allergies)

	goals, err := client.Fitness.Goals(ctx)
	require.NoError(t, err)
	assert.Equal(t, 150.0, goals.Protein)
}

func TestParseList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, ParseList(" a ,b,, "))
	assert.Equal(t, []string{}, ParseList(""))
}
