package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/pageza/fridge/internal/types"
)

// render prints v as JSON when --json is set and through text otherwise
func render(e *env, v any, text func(w io.Writer)) error {
	if e.json {
		enc := json.NewEncoder(e.out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	text(e.out)
	return nil
}

func printRecipeTable(w io.Writer, recipes []types.Recipe) {
	if len(recipes) == 0 {
		fmt.Fprintln(w, "No recipes.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tDIFFICULTY\tMINUTES\tCALORIES")
	for _, r := range recipes {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%g\t%g\n", r.ID, r.Name, r.Difficulty, r.CookingTime, r.NutritionalInfo.Calories)
	}
	tw.Flush()
}

func printRecipe(w io.Writer, r *types.Recipe) {
	fmt.Fprintf(w, "%s (%s)\n", r.Name, r.ID)
	if r.Difficulty != "" || r.CookingTime > 0 {
		fmt.Fprintf(w, "Difficulty: %s  Cooking time: %g min\n", orDash(r.Difficulty), r.CookingTime)
	}
	n := r.NutritionalInfo
	fmt.Fprintf(w, "Calories: %g  Protein: %gg  Carbs: %gg  Fat: %gg\n", n.Calories, n.Protein, n.Carbs, n.Fat)

	fmt.Fprintln(w, "\nIngredients:")
	for _, ing := range r.Ingredients {
		if ing.Quantity == "" {
			fmt.Fprintf(w, "  - %s\n", ing.Item)
			continue
		}
		fmt.Fprintf(w, "  - %s %s\n", ing.Quantity, ing.Item)
	}

	fmt.Fprintln(w, "\nInstructions:")
	for i, step := range r.Instructions {
		fmt.Fprintf(w, "  %d. %s\n", i+1, step)
	}
	if r.Steps != "" {
		fmt.Fprintf(w, "\n%s\n", r.Steps)
	}
}

func printGoals(w io.Writer, g *types.FitnessGoals) {
	fmt.Fprintf(w, "Calories: %g  Protein: %gg  Carbs: %gg  Fat: %gg  Water: %gL\n", g.Calories, g.Protein, g.Carbs, g.Fat, g.Water)
	fmt.Fprintf(w, "Allergies: %s\n", joinOrDash(g.Allergies))
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func joinOrDash(items []string) string {
	return orDash(strings.Join(items, ", "))
}
