package devserver

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/pageza/fridge/internal/types"
)

// GenerateRequest is the body of POST /recipes/generate
type GenerateRequest struct {
	Ingredients    []string        `json:"ingredients" binding:"required,min=1,dive,required"`
	SkillLevel     int             `json:"skillLevel" binding:"omitempty,oneof=1 2 3"`
	Preferences    map[string]bool `json:"preferences"`
	MaxCookingTime int             `json:"maxCookingTime" binding:"gte=0"`
}

var quantities = []string{"2 cups", "1 tbsp", "200 g", "1 pinch", "3 pieces"}

var difficulties = map[int]string{1: "easy", 2: "medium", 3: "hard"}

// Generator builds recipes from a list of ingredients without any
// external model, so the dev server output is deterministic.
type Generator struct{}

func (Generator) Generate(req GenerateRequest) *Recipe {
	ingredients := make([]types.Ingredient, 0, len(req.Ingredients))
	instructions := make([]string, 0, len(req.Ingredients)+2)
	for i, item := range req.Ingredients {
		item = strings.TrimSpace(item)
		ingredients = append(ingredients, types.Ingredient{Item: item, Quantity: quantities[i%len(quantities)]})
		instructions = append(instructions, fmt.Sprintf("Prepare the %s.", item))
	}

	cookingTime := 15 + 5*len(ingredients)
	if req.SkillLevel == 3 {
		cookingTime += 10
	}
	if req.MaxCookingTime > 0 && cookingTime > req.MaxCookingTime {
		cookingTime = req.MaxCookingTime
	}
	instructions = append(instructions,
		fmt.Sprintf("Combine everything and cook for %d minutes.", cookingTime),
		"Season to taste and serve.")

	difficulty, ok := difficulties[req.SkillLevel]
	if !ok {
		difficulty = difficulties[1]
	}

	n := float64(len(ingredients))
	calories, protein, carbs, fat := 120*n, 8*n, 15*n, 5*n
	if req.Preferences["highProtein"] {
		protein *= 2
	}
	if req.Preferences["lowCarb"] {
		carbs /= 2
	}

	return &Recipe{
		Name:         recipeName(ingredients, req.Preferences),
		Ingredients:  JSONColumn[[]types.Ingredient]{Data: ingredients},
		Instructions: JSONColumn[[]string]{Data: instructions},
		CookingTime:  float64(cookingTime),
		Difficulty:   difficulty,
		Calories:     calories,
		Protein:      protein,
		Carbs:        carbs,
		Fat:          fat,
	}
}

func recipeName(ingredients []types.Ingredient, prefs map[string]bool) string {
	var parts []string
	switch {
	case prefs["vegan"]:
		parts = append(parts, "Vegan")
	case prefs["vegetarian"]:
		parts = append(parts, "Vegetarian")
	}
	parts = append(parts, titleCase(ingredients[0].Item))
	if len(ingredients) > 1 {
		parts = append(parts, "and", titleCase(ingredients[1].Item))
	}
	parts = append(parts, "Skillet")
	return strings.Join(parts, " ")
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
