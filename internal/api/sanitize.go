package api

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/pageza/fridge/internal/types"
)

// GeneratePayload is the body sent to POST /recipes/generate.
type GeneratePayload struct {
	Ingredients    []string         `json:"ingredients"`
	SkillLevel     types.SkillLevel `json:"skillLevel,omitempty"`
	Preferences    map[string]bool  `json:"preferences,omitempty"`
	MaxCookingTime int              `json:"maxCookingTime,omitempty"`
}

// SanitizeGenerateParams drops blank ingredients and unset preference
// flags. Every other field is carried over unchanged.
func SanitizeGenerateParams(p types.GenerateRecipeParams) GeneratePayload {
	ingredients := make([]string, 0, len(p.Ingredients))
	for _, ing := range p.Ingredients {
		if strings.TrimSpace(ing) == "" {
			continue
		}
		ingredients = append(ingredients, ing)
	}

	var prefs map[string]bool
	if enabled := p.Preferences.Enabled(); len(enabled) > 0 {
		prefs = enabled
	}

	return GeneratePayload{
		Ingredients:    ingredients,
		SkillLevel:     p.SkillLevel,
		Preferences:    prefs,
		MaxCookingTime: p.MaxCookingTime,
	}
}

// validateGenerateParams reports the first invalid field of p
func validateGenerateParams(v *validator.Validate, p types.GenerateRecipeParams) error {
	err := v.Struct(p)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &ValidationError{Field: "params", Message: err.Error()}
	}
	fe := fieldErrs[0]
	return &ValidationError{
		Field:   fe.Field(),
		Message: fmt.Sprintf("failed on the '%s' rule", fe.Tag()),
	}
}
