package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/pageza/fridge/internal/types"
)

// RecipeService covers the /recipes endpoints.
type RecipeService struct {
	client *Client
}

// List returns every recipe visible to the caller.
func (s *RecipeService) List(ctx context.Context) ([]types.Recipe, error) {
	return s.client.recipeList(ctx, operation{
		resource: "recipes", action: "list",
		method: http.MethodGet, path: "/recipes",
		fallback: "Failed to fetch recipes",
	})
}

// Get returns the recipe with the given id.
func (s *RecipeService) Get(ctx context.Context, id string) (*types.Recipe, error) {
	op := operation{
		resource: "recipes", action: "get",
		method: http.MethodGet, path: recipePath(id, ""),
		fallback: "Failed to fetch recipe",
	}
	body, err := s.client.fetch(ctx, op, nil)
	if err != nil {
		return nil, err
	}
	return NormalizeRecipe(body, s.client.newID)
}

// Generate asks the backend for a recipe built from params. Blank
// ingredients and unset preference flags are never sent.
func (s *RecipeService) Generate(ctx context.Context, params types.GenerateRecipeParams) (*types.Recipe, error) {
	op := operation{
		resource: "recipes", action: "generate",
		method: http.MethodPost, path: "/recipes/generate",
		fallback: "Failed to generate recipe",
	}
	if err := validateGenerateParams(s.client.validate, params); err != nil {
		return nil, err
	}
	payload := SanitizeGenerateParams(params)
	s.client.log.WithField("payload", payload).Debug("generating recipe")

	resp, err := s.client.send(ctx, op, payload)
	if err != nil {
		return nil, err
	}
	if !resp.ok() {
		apiErr := rejected(op, resp)
		if msg := backendError(resp.body); msg != "" {
			apiErr.Message = msg
		}
		return nil, apiErr
	}
	return NormalizeRecipe(resp.body, s.client.newID)
}

// Save adds the recipe to the caller's saved list.
func (s *RecipeService) Save(ctx context.Context, id string) error {
	return s.client.do(ctx, operation{
		resource: "recipes", action: "save",
		method: http.MethodPost, path: recipePath(id, "/save"),
		fallback: "Failed to save recipe",
	}, nil, nil)
}

// Favorite marks the recipe as a favorite.
func (s *RecipeService) Favorite(ctx context.Context, id string) error {
	return s.client.do(ctx, operation{
		resource: "recipes", action: "favorite",
		method: http.MethodPost, path: recipePath(id, "/favorite"),
		fallback: "Failed to favorite recipe",
	}, nil, nil)
}

// Unfavorite removes the favorite mark.
func (s *RecipeService) Unfavorite(ctx context.Context, id string) error {
	return s.client.do(ctx, operation{
		resource: "recipes", action: "unfavorite",
		method: http.MethodDelete, path: recipePath(id, "/favorite"),
		fallback: "Failed to unfavorite recipe",
	}, nil, nil)
}

// Recommendations returns recipes suggested for the caller.
func (s *RecipeService) Recommendations(ctx context.Context) ([]types.Recipe, error) {
	return s.client.recipeList(ctx, operation{
		resource: "recipes", action: "recommendations",
		method: http.MethodGet, path: "/recipes/recommended",
		fallback: "Failed to get recommendations",
	})
}

// History returns recently generated or viewed recipes.
func (s *RecipeService) History(ctx context.Context) ([]types.Recipe, error) {
	return s.client.recipeList(ctx, operation{
		resource: "recipes", action: "history",
		method: http.MethodGet, path: "/recipes/history",
		fallback: "Failed to fetch recipe history",
	})
}

func (c *Client) recipeList(ctx context.Context, op operation) ([]types.Recipe, error) {
	body, err := c.fetch(ctx, op, nil)
	if err != nil {
		return nil, err
	}
	return NormalizeRecipeList(body, c.newID)
}

func recipePath(id, suffix string) string {
	return "/recipes/" + url.PathEscape(id) + suffix
}
