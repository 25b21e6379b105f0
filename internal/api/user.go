package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pageza/fridge/internal/types"
)

// UserService covers the /user endpoints.
type UserService struct {
	client *Client
}

// SavedRecipes returns the caller's saved recipes.
func (s *UserService) SavedRecipes(ctx context.Context) ([]types.Recipe, error) {
	return s.client.recipeList(ctx, operation{
		resource: "user", action: "saved-recipes",
		method: http.MethodGet, path: "/user/saved-recipes",
		fallback: "Failed to fetch saved recipes",
	})
}

// RecipeHistory returns the caller's recipe history.
func (s *UserService) RecipeHistory(ctx context.Context) ([]types.Recipe, error) {
	return s.client.recipeList(ctx, operation{
		resource: "user", action: "recipe-history",
		method: http.MethodGet, path: "/user/recipe-history",
		fallback: "Failed to fetch recipe history",
	})
}

// profileWire is the profile as received; recipe lists are normalized
// separately
type profileWire struct {
	ID              string                 `json:"id"`
	Email           string                 `json:"email"`
	Name            string                 `json:"name"`
	FitnessGoal     *types.FitnessGoals    `json:"fitnessGoal"`
	Preferences     *types.UserPreferences `json:"preferences"`
	SavedRecipes    json.RawMessage        `json:"savedRecipes"`
	FavoriteRecipes json.RawMessage        `json:"favoriteRecipes"`
}

// Profile returns the caller's profile.
func (s *UserService) Profile(ctx context.Context) (*types.UserProfile, error) {
	op := operation{
		resource: "user", action: "profile",
		method: http.MethodGet, path: "/user/profile",
		fallback: "Failed to get profile",
	}
	body, err := s.client.fetch(ctx, op, nil)
	if err != nil {
		return nil, err
	}

	var wire profileWire
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, &APIError{Resource: op.resource, Action: op.action, StatusCode: http.StatusOK, Message: op.fallback, Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	profile := &types.UserProfile{
		ID:          wire.ID,
		Email:       wire.Email,
		Name:        wire.Name,
		FitnessGoal: wire.FitnessGoal,
		Preferences: wire.Preferences,
	}
	if profile.SavedRecipes, err = s.recipes(wire.SavedRecipes, "savedRecipes"); err != nil {
		return nil, err
	}
	if profile.FavoriteRecipes, err = s.recipes(wire.FavoriteRecipes, "favoriteRecipes"); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *UserService) recipes(raw json.RawMessage, field string) ([]types.Recipe, error) {
	if len(raw) == 0 {
		return []types.Recipe{}, nil
	}
	v, err := decodeValue(raw)
	if err != nil {
		return nil, &ValidationError{Field: field, Message: "invalid JSON"}
	}
	return normalizeRecipes(v, field, s.client.newID)
}

// UpdatePreferences replaces the caller's cooking preferences.
func (s *UserService) UpdatePreferences(ctx context.Context, prefs types.UserPreferences) error {
	return s.client.do(ctx, operation{
		resource: "user", action: "preferences",
		method: http.MethodPut, path: "/user/preferences",
		fallback: "Failed to update preferences",
	}, prefs, nil)
}
