package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/pageza/fridge/internal/types"
)

// NormalizeRecipe coerces a loosely typed recipe payload into the
// canonical shape. A missing id is filled from newID. Values that cannot be
// coerced fail with a *ValidationError naming the field.
func NormalizeRecipe(data []byte, newID func() string) (*types.Recipe, error) {
	raw, err := decodeValue(data)
	if err != nil {
		return nil, &ValidationError{Field: "recipe", Message: "response is not valid JSON"}
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, &ValidationError{Field: "recipe", Message: "expected an object"}
	}
	return normalizeRecipe(unwrapRecipe(obj), "recipe", newID)
}

// NormalizeRecipeList accepts a bare array or an object holding the array
// under "recipes" and normalizes every element.
func NormalizeRecipeList(data []byte, newID func() string) ([]types.Recipe, error) {
	raw, err := decodeValue(data)
	if err != nil {
		return nil, &ValidationError{Field: "recipes", Message: "response is not valid JSON"}
	}
	if obj, ok := raw.(map[string]any); ok {
		raw = obj["recipes"]
	}
	return normalizeRecipes(raw, "recipes", newID)
}

func decodeValue(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// unwrapRecipe returns the nested object of a {"recipe": {...}} envelope
func unwrapRecipe(obj map[string]any) map[string]any {
	if _, named := obj["name"]; named {
		return obj
	}
	if inner, ok := obj["recipe"].(map[string]any); ok {
		return inner
	}
	return obj
}

func normalizeRecipes(raw any, field string, newID func() string) ([]types.Recipe, error) {
	if raw == nil {
		return []types.Recipe{}, nil
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, &ValidationError{Field: field, Message: "expected an array"}
	}
	out := make([]types.Recipe, 0, len(items))
	for i, item := range items {
		path := fmt.Sprintf("%s[%d]", field, i)
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, &ValidationError{Field: path, Message: "expected an object"}
		}
		r, err := normalizeRecipe(obj, path, newID)
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	return out, nil
}

func normalizeRecipe(obj map[string]any, path string, newID func() string) (*types.Recipe, error) {
	var (
		r   types.Recipe
		err error
	)
	field := func(name string) string { return path + "." + name }

	if r.ID, err = toString(obj["id"], field("id")); err != nil {
		return nil, err
	}
	if r.ID == "" {
		r.ID = newID()
	}
	if r.Name, err = toString(obj["name"], field("name")); err != nil {
		return nil, err
	}
	if r.Steps, err = toString(obj["steps"], field("steps")); err != nil {
		return nil, err
	}
	if r.Image, err = toString(obj["image"], field("image")); err != nil {
		return nil, err
	}
	if r.AuthorID, err = toString(obj["authorId"], field("authorId")); err != nil {
		return nil, err
	}
	if r.Difficulty, err = toString(obj["difficulty"], field("difficulty")); err != nil {
		return nil, err
	}
	if r.CookingTime, err = toNumber(obj["cookingTime"], field("cookingTime")); err != nil {
		return nil, err
	}
	if r.Ingredients, err = toIngredients(obj["ingredients"], field("ingredients")); err != nil {
		return nil, err
	}
	if r.Instructions, err = toStrings(obj["instructions"], field("instructions")); err != nil {
		return nil, err
	}

	nutrition, ok := obj["nutritionalInfo"].(map[string]any)
	if !ok {
		if v := obj["nutritionalInfo"]; v != nil {
			return nil, &ValidationError{Field: field("nutritionalInfo"), Message: "expected an object"}
		}
		// older payloads carry the macros at the top level
		nutrition = obj
	}
	if r.NutritionalInfo, err = toNutrition(nutrition, field("nutritionalInfo")); err != nil {
		return nil, err
	}
	return &r, nil
}

func toIngredients(v any, path string) ([]types.Ingredient, error) {
	if v == nil {
		return []types.Ingredient{}, nil
	}
	items, ok := v.([]any)
	if !ok {
		return nil, &ValidationError{Field: path, Message: "expected an array"}
	}
	out := make([]types.Ingredient, 0, len(items))
	for i, item := range items {
		elem := fmt.Sprintf("%s[%d]", path, i)
		obj, ok := item.(map[string]any)
		if !ok {
			// a bare scalar is an item without a quantity
			s, err := toString(item, elem)
			if err != nil {
				return nil, err
			}
			out = append(out, types.Ingredient{Item: s})
			continue
		}
		var (
			ing types.Ingredient
			err error
		)
		if ing.Item, err = toString(obj["item"], elem+".item"); err != nil {
			return nil, err
		}
		if ing.Quantity, err = toString(obj["quantity"], elem+".quantity"); err != nil {
			return nil, err
		}
		out = append(out, ing)
	}
	return out, nil
}

func toStrings(v any, path string) ([]string, error) {
	if v == nil {
		return []string{}, nil
	}
	items, ok := v.([]any)
	if !ok {
		return nil, &ValidationError{Field: path, Message: "expected an array"}
	}
	out := make([]string, 0, len(items))
	for i, item := range items {
		s, err := toString(item, fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func toNutrition(obj map[string]any, path string) (types.NutritionalInfo, error) {
	var (
		n   types.NutritionalInfo
		err error
	)
	if n.Calories, err = toNumber(obj["calories"], path+".calories"); err != nil {
		return n, err
	}
	if n.Protein, err = toNumber(obj["protein"], path+".protein"); err != nil {
		return n, err
	}
	if n.Carbs, err = toNumber(obj["carbs"], path+".carbs"); err != nil {
		return n, err
	}
	if n.Fat, err = toNumber(obj["fat"], path+".fat"); err != nil {
		return n, err
	}
	return n, nil
}

// toString renders scalars as strings. Absent and null become "".
func toString(v any, path string) (string, error) {
	switch t := v.(type) {
	case nil:
		return "", nil
	case string:
		return t, nil
	case json.Number:
		return t.String(), nil
	case bool:
		return strconv.FormatBool(t), nil
	default:
		return "", &ValidationError{Field: path, Message: "expected a scalar value"}
	}
}

// leadingNumber matches the number at the start of strings like
// "20 minutes" or "12.5g"
var leadingNumber = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)`)

// toNumber accepts numbers and numeric strings, including a number
// followed by a unit. Absent, null and blank strings become 0.
func toNumber(v any, path string) (float64, error) {
	switch t := v.(type) {
	case nil:
		return 0, nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return 0, &ValidationError{Field: path, Message: "number out of range"}
		}
		return f, nil
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, nil
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f, nil
		}
		lead := leadingNumber.FindString(s)
		if lead == "" {
			return 0, &ValidationError{Field: path, Message: fmt.Sprintf("%q is not a number", t)}
		}
		f, err := strconv.ParseFloat(lead, 64)
		if err != nil {
			return 0, &ValidationError{Field: path, Message: fmt.Sprintf("%q is not a number", t)}
		}
		return f, nil
	default:
		return 0, &ValidationError{Field: path, Message: "expected a number"}
	}
}
