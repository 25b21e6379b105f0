package api

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/fridge/internal/types"
)

func TestNormalizeRecipe(t *testing.T) {
	tests := []struct {
		name  string
		input string
		check func(t *testing.T, r *types.Recipe)
	}{
		{
			name:  "keeps id",
			input: `{"id":"abc","name":"Soup"}`,
			check: func(t *testing.T, r *types.Recipe) {
				assert.Equal(t, "abc", r.ID)
				assert.Equal(t, []types.Ingredient{}, r.Ingredients)
				assert.Equal(t, []string{}, r.Instructions)
			},
		},
		{
			name:  "numeric id",
			input: `{"id":42}`,
			check: func(t *testing.T, r *types.Recipe) { assert.Equal(t, "42", r.ID) },
		},
		{
			name:  "unwraps envelope",
			input: `{"recipe":{"name":"Pasta","difficulty":"easy"}}`,
			check: func(t *testing.T, r *types.Recipe) {
				assert.Equal(t, "Pasta", r.Name)
				assert.Equal(t, "easy", r.Difficulty)
				assert.Equal(t, "generated-id", r.ID)
			},
		},
		{
			name:  "nested nutrition",
			input: `{"nutritionalInfo":{"calories":"450","protein":30}}`,
			check: func(t *testing.T, r *types.Recipe) {
				assert.Equal(t, types.NutritionalInfo{Calories: 450, Protein: 30}, r.NutritionalInfo)
			},
		},
		{
			name:  "top level nutrition",
			input: `{"calories":300,"fat":"12.5"}`,
			check: func(t *testing.T, r *types.Recipe) {
				assert.Equal(t, types.NutritionalInfo{Calories: 300, Fat: 12.5}, r.NutritionalInfo)
			},
		},
		{
			name:  "blank cooking time",
			input: `{"cookingTime":" "}`,
			check: func(t *testing.T, r *types.Recipe) { assert.Zero(t, r.CookingTime) },
		},
		{
			name:  "cooking time with unit",
			input: `{"cookingTime":"20 minutes","nutritionalInfo":{"protein":"12.5g","fat":".5 g"}}`,
			check: func(t *testing.T, r *types.Recipe) {
				assert.Equal(t, 20.0, r.CookingTime)
				assert.Equal(t, 12.5, r.NutritionalInfo.Protein)
				assert.Equal(t, 0.5, r.NutritionalInfo.Fat)
			},
		},
		{
			name:  "mixed ingredients",
			input: `{"ingredients":["salt",{"item":"rice","quantity":"1 cup"},{"item":"egg"}]}`,
			check: func(t *testing.T, r *types.Recipe) {
				assert.Equal(t, []types.Ingredient{
					{Item: "salt"},
					{Item: "rice", Quantity: "1 cup"},
					{Item: "egg"},
				}, r.Ingredients)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NormalizeRecipe([]byte(tt.input), fixedID)
			require.NoError(t, err)
			tt.check(t, r)
		})
	}
}

func TestNormalizeRecipeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		field string
	}{
		{"not json", `{`, "recipe"},
		{"not an object", `[1,2]`, "recipe"},
		{"object as name", `{"name":{"en":"Soup"}}`, "recipe.name"},
		{"ingredients not array", `{"ingredients":"eggs"}`, "recipe.ingredients"},
		{"nested item", `{"ingredients":[{"item":["a"]}]}`, "recipe.ingredients[0].item"},
		{"instruction object", `{"instructions":["a",{"b":1}]}`, "recipe.instructions[1]"},
		{"non numeric time", `{"cookingTime":"twenty"}`, "recipe.cookingTime"},
		{"unit before number", `{"cookingTime":"about 20 minutes"}`, "recipe.cookingTime"},
		{"bool time", `{"cookingTime":true}`, "recipe.cookingTime"},
		{"nutrition array", `{"nutritionalInfo":[1]}`, "recipe.nutritionalInfo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NormalizeRecipe([]byte(tt.input), fixedID)
			var vErr *ValidationError
			require.True(t, errors.As(err, &vErr), "got %v", err)
			assert.Equal(t, tt.field, vErr.Field)
		})
	}
}

func TestNormalizeRecipeList(t *testing.T) {
	list, err := NormalizeRecipeList([]byte(`{"recipes":null}`), fixedID)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = NormalizeRecipeList([]byte(`[{"name":"ok"},"bad"]`), fixedID)
	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "recipes[1]", vErr.Field)
}

func TestSanitizeGenerateParams(t *testing.T) {
	got := SanitizeGenerateParams(types.GenerateRecipeParams{
		Ingredients: []string{"", "egg", " ", " milk"},
		Preferences: types.DietaryFlags{Vegetarian: true, Vegan: false},
	})
	assert.Equal(t, GeneratePayload{
		Ingredients: []string{"egg", " milk"},
		Preferences: map[string]bool{"vegetarian": true},
	}, got)

	empty := SanitizeGenerateParams(types.GenerateRecipeParams{})
	assert.NotNil(t, empty.Ingredients)
	assert.Nil(t, empty.Preferences)
}
