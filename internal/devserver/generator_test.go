package devserver

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pageza/fridge/internal/types"
)

func TestGeneratorGenerate(t *testing.T) {
	recipe := Generator{}.Generate(GenerateRequest{
		Ingredients: []string{"eggs", " rice "},
		SkillLevel:  2,
		Preferences: map[string]bool{"vegan": true},
	})

	assert.Equal(t, "Vegan Eggs and Rice Skillet", recipe.Name)
	assert.Equal(t, []types.Ingredient{
		{Item: "eggs", Quantity: "2 cups"},
		{Item: "rice", Quantity: "1 tbsp"},
	}, recipe.Ingredients.Data)
	assert.Equal(t, []string{
		"Prepare the eggs.",
		"Prepare the rice.",
		"Combine everything and cook for 25 minutes.",
		"Season to taste and serve.",
	}, recipe.Instructions.Data)
	assert.Equal(t, 25.0, recipe.CookingTime)
	assert.Equal(t, "medium", recipe.Difficulty)
	assert.Equal(t, 240.0, recipe.Calories)
	assert.Equal(t, 16.0, recipe.Protein)
	assert.Equal(t, 30.0, recipe.Carbs)
	assert.Equal(t, 10.0, recipe.Fat)
}

func TestGeneratorOptions(t *testing.T) {
	tests := []struct {
		name      string
		req       GenerateRequest
		wantName  string
		wantTime  float64
		wantLevel string
		wantProt  float64
		wantCarbs float64
	}{
		{
			name:      "defaults",
			req:       GenerateRequest{Ingredients: []string{"tofu"}},
			wantName:  "Tofu Skillet",
			wantTime:  20,
			wantLevel: "easy",
			wantProt:  8,
			wantCarbs: 15,
		},
		{
			name: "advanced capped by max cooking time",
			req: GenerateRequest{
				Ingredients:    []string{"beef", "broccoli", "garlic"},
				SkillLevel:     3,
				MaxCookingTime: 30,
			},
			wantName:  "Beef and Broccoli Skillet",
			wantTime:  30,
			wantLevel: "hard",
			wantProt:  24,
			wantCarbs: 45,
		},
		{
			name: "macro preferences",
			req: GenerateRequest{
				Ingredients: []string{"chicken breast"},
				Preferences: map[string]bool{"highProtein": true, "lowCarb": true, "vegetarian": true},
			},
			wantName:  "Vegetarian Chicken Breast Skillet",
			wantTime:  20,
			wantLevel: "easy",
			wantProt:  16,
			wantCarbs: 7.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recipe := Generator{}.Generate(tt.req)
			assert.Equal(t, tt.wantName, recipe.Name)
			assert.Equal(t, tt.wantTime, recipe.CookingTime)
			assert.Equal(t, tt.wantLevel, recipe.Difficulty)
			assert.Equal(t, tt.wantProt, recipe.Protein)
			assert.Equal(t, tt.wantCarbs, recipe.Carbs)
		})
	}
}
