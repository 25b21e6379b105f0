package types

// Ingredient is a single line of a recipe's ingredient list
type Ingredient struct {
	Item     string `json:"item"`
	Quantity string `json:"quantity"`
}

// NutritionalInfo represents nutrition information for a recipe.
type NutritionalInfo struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// Recipe is the canonical recipe shape consumed by the client. Ingredients
// are structured {item, quantity} pairs and instructions are one string per
// step.
type Recipe struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Ingredients     []Ingredient    `json:"ingredients"`
	Instructions    []string        `json:"instructions"`
	Steps           string          `json:"steps,omitempty"`
	Image           string          `json:"image,omitempty"`
	AuthorID        string          `json:"authorId,omitempty"`
	CookingTime     float64         `json:"cookingTime"`
	Difficulty      string          `json:"difficulty"`
	NutritionalInfo NutritionalInfo `json:"nutritionalInfo"`
}

// SkillLevel is the cooking skill requested for a generated recipe.
type SkillLevel int

const (
	SkillBeginner     SkillLevel = 1
	SkillIntermediate SkillLevel = 2
	SkillAdvanced     SkillLevel = 3
)

// DietaryFlags are the named boolean preferences for recipe generation.
type DietaryFlags struct {
	Vegetarian  bool `json:"vegetarian,omitempty"`
	Vegan       bool `json:"vegan,omitempty"`
	LowCarb     bool `json:"lowCarb,omitempty"`
	HighProtein bool `json:"highProtein,omitempty"`
}

// Enabled returns the flags that are set, keyed by their wire name.
func (f DietaryFlags) Enabled() map[string]bool {
	out := make(map[string]bool)
	if f.Vegetarian {
		out["vegetarian"] = true
	}
	if f.Vegan {
		out["vegan"] = true
	}
	if f.LowCarb {
		out["lowCarb"] = true
	}
	if f.HighProtein {
		out["highProtein"] = true
	}
	return out
}

// GenerateRecipeParams is the caller-facing input for recipe generation.
type GenerateRecipeParams struct {
	Ingredients    []string     `json:"ingredients"`
	SkillLevel     SkillLevel   `json:"skillLevel,omitempty" validate:"omitempty,oneof=1 2 3"`
	Preferences    DietaryFlags `json:"preferences,omitempty"`
	MaxCookingTime int          `json:"maxCookingTime,omitempty" validate:"gte=0"`
}
