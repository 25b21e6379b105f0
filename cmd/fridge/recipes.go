package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/urfave/cli/v2"

	"github.com/pageza/fridge/internal/api"
	"github.com/pageza/fridge/internal/types"
)

func recipesCommand() *cli.Command {
	return &cli.Command{
		Name:  "recipes",
		Usage: "browse, generate and keep recipes",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list all recipes",
				Action: authed(func(ctx context.Context, c *cli.Context, e *env, client *api.Client) error {
					return renderRecipes(e)(client.Recipes.List(ctx))
				}),
			},
			{
				Name:      "get",
				Usage:     "show one recipe",
				ArgsUsage: "ID",
				Action: authed(func(ctx context.Context, c *cli.Context, e *env, client *api.Client) error {
					id, err := recipeID(c)
					if err != nil {
						return err
					}
					recipe, err := client.Recipes.Get(ctx, id)
					if err != nil {
						return err
					}
					return render(e, recipe, func(w io.Writer) { printRecipe(w, recipe) })
				}),
			},
			generateCommand(),
			recipeAction("save", "add a recipe to your saved list", "Saved", func(ctx context.Context, client *api.Client, id string) error {
				return client.Recipes.Save(ctx, id)
			}),
			recipeAction("favorite", "mark a recipe as favorite", "Favorited", func(ctx context.Context, client *api.Client, id string) error {
				return client.Recipes.Favorite(ctx, id)
			}),
			recipeAction("unfavorite", "remove a recipe from favorites", "Unfavorited", func(ctx context.Context, client *api.Client, id string) error {
				return client.Recipes.Unfavorite(ctx, id)
			}),
			{
				Name:  "recommended",
				Usage: "recipes recommended for you",
				Action: authed(func(ctx context.Context, c *cli.Context, e *env, client *api.Client) error {
					return renderRecipes(e)(client.Recipes.Recommendations(ctx))
				}),
			},
			{
				Name:  "history",
				Usage: "recipes you generated or viewed",
				Action: authed(func(ctx context.Context, c *cli.Context, e *env, client *api.Client) error {
					return renderRecipes(e)(client.Recipes.History(ctx))
				}),
			},
		},
	}
}

func generateCommand() *cli.Command {
	return &cli.Command{
		Name:  "generate",
		Usage: "generate a recipe from ingredients",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{Name: "ingredient", Aliases: []string{"i"}, Usage: "an ingredient, repeatable"},
			&cli.StringFlag{Name: "ingredients", Usage: "comma-separated ingredients"},
			&cli.IntFlag{Name: "skill", Usage: "1 beginner, 2 intermediate, 3 advanced"},
			&cli.IntFlag{Name: "max-time", Usage: "maximum cooking time in minutes"},
			&cli.BoolFlag{Name: "vegetarian"},
			&cli.BoolFlag{Name: "vegan"},
			&cli.BoolFlag{Name: "low-carb"},
			&cli.BoolFlag{Name: "high-protein"},
		},
		Action: authed(func(ctx context.Context, c *cli.Context, e *env, client *api.Client) error {
			ingredients := append(c.StringSlice("ingredient"), api.ParseList(c.String("ingredients"))...)
			if len(ingredients) == 0 {
				return errors.New("at least one ingredient is required")
			}
			recipe, err := client.Recipes.Generate(ctx, types.GenerateRecipeParams{
				Ingredients:    ingredients,
				SkillLevel:     types.SkillLevel(c.Int("skill")),
				MaxCookingTime: c.Int("max-time"),
				Preferences: types.DietaryFlags{
					Vegetarian:  c.Bool("vegetarian"),
					Vegan:       c.Bool("vegan"),
					LowCarb:     c.Bool("low-carb"),
					HighProtein: c.Bool("high-protein"),
				},
			})
			if err != nil {
				return err
			}
			return render(e, recipe, func(w io.Writer) { printRecipe(w, recipe) })
		}),
	}
}

func recipeAction(name, usage, done string, fn func(ctx context.Context, client *api.Client, id string) error) *cli.Command {
	return &cli.Command{
		Name:      name,
		Usage:     usage,
		ArgsUsage: "ID",
		Action: authed(func(ctx context.Context, c *cli.Context, e *env, client *api.Client) error {
			id, err := recipeID(c)
			if err != nil {
				return err
			}
			if err := fn(ctx, client, id); err != nil {
				return err
			}
			fmt.Fprintf(e.out, "%s %s\n", done, id)
			return nil
		}),
	}
}

func recipeID(c *cli.Context) (string, error) {
	if c.NArg() != 1 {
		return "", fmt.Errorf("expected one recipe ID, got %d arguments", c.NArg())
	}
	return c.Args().First(), nil
}

// renderRecipes adapts a list call's results for printing
func renderRecipes(e *env) func([]types.Recipe, error) error {
	return func(recipes []types.Recipe, err error) error {
		if err != nil {
			return err
		}
		return render(e, recipes, func(w io.Writer) { printRecipeTable(w, recipes) })
	}
}
