package main

import (
	"context"
	"fmt"
	"io"

	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/pageza/fridge/internal/api"
	"github.com/pageza/fridge/internal/types"
)

func userCommand() *cli.Command {
	return &cli.Command{
		Name:  "user",
		Usage: "your profile and saved recipes",
		Subcommands: []*cli.Command{
			{
				Name:  "saved",
				Usage: "recipes you saved",
				Action: authed(func(ctx context.Context, c *cli.Context, e *env, client *api.Client) error {
					return renderRecipes(e)(client.User.SavedRecipes(ctx))
				}),
			},
			{
				Name:  "history",
				Usage: "your recipe history",
				Action: authed(func(ctx context.Context, c *cli.Context, e *env, client *api.Client) error {
					return renderRecipes(e)(client.User.RecipeHistory(ctx))
				}),
			},
			{
				Name:  "profile",
				Usage: "show your profile",
				Action: authed(func(ctx context.Context, c *cli.Context, e *env, client *api.Client) error {
					profile, err := client.User.Profile(ctx)
					if err != nil {
						return err
					}
					return render(e, profile, func(w io.Writer) { printProfile(w, profile) })
				}),
			},
			{
				Name:  "preferences",
				Usage: "update cooking preferences",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "diets", Usage: "comma-separated dietary restrictions"},
					&cli.StringFlag{Name: "cuisines", Usage: "comma-separated preferred cuisines"},
					&cli.IntFlag{Name: "skill", Usage: "cooking skill level"},
					&cli.StringFlag{Name: "frequency", Usage: "meal planning frequency"},
				},
				Action: authed(func(ctx context.Context, c *cli.Context, e *env, client *api.Client) error {
					prefs := types.UserPreferences{
						DietaryRestrictions:   api.ParseList(c.String("diets")),
						PreferredCuisines:     api.ParseList(c.String("cuisines")),
						CookingSkillLevel:     c.Int("skill"),
						MealPlanningFrequency: c.String("frequency"),
					}
					if err := client.User.UpdatePreferences(ctx, prefs); err != nil {
						return err
					}
					fmt.Fprintln(e.out, "Preferences updated")
					return nil
				}),
			},
		},
	}
}

func fitnessCommand() *cli.Command {
	return &cli.Command{
		Name:  "fitness",
		Usage: "daily nutrition goals",
		Subcommands: []*cli.Command{
			{
				Name:  "goals",
				Usage: "show your goals",
				Action: authed(func(ctx context.Context, c *cli.Context, e *env, client *api.Client) error {
					goals, err := client.Fitness.Goals(ctx)
					if err != nil {
						return err
					}
					return render(e, goals, func(w io.Writer) { printGoals(w, goals) })
				}),
			},
			{
				Name:  "set-goals",
				Usage: "replace your goals",
				Flags: []cli.Flag{
					&cli.Float64Flag{Name: "calories"},
					&cli.Float64Flag{Name: "protein"},
					&cli.Float64Flag{Name: "carbs"},
					&cli.Float64Flag{Name: "fat"},
					&cli.Float64Flag{Name: "water"},
					&cli.StringFlag{Name: "allergies", Usage: "comma-separated allergies"},
				},
				Action: authed(func(ctx context.Context, c *cli.Context, e *env, client *api.Client) error {
					goals, err := client.Fitness.UpdateGoals(ctx, types.FitnessGoals{
						Calories:  c.Float64("calories"),
						Protein:   c.Float64("protein"),
						Carbs:     c.Float64("carbs"),
						Fat:       c.Float64("fat"),
						Water:     c.Float64("water"),
						Allergies: api.ParseList(c.String("allergies")),
					})
					if err != nil {
						return err
					}
					return render(e, goals, func(w io.Writer) { printGoals(w, goals) })
				}),
			},
		},
	}
}

type dashboard struct {
	Saved   []types.Recipe      `json:"savedRecipes"`
	History []types.Recipe      `json:"recipeHistory"`
	Goals   *types.FitnessGoals `json:"fitnessGoals"`
}

func dashboardCommand() *cli.Command {
	return &cli.Command{
		Name:  "dashboard",
		Usage: "saved recipes, history and goals at a glance",
		Action: authed(func(ctx context.Context, c *cli.Context, e *env, client *api.Client) error {
			var d dashboard
			g, ctx := errgroup.WithContext(ctx)
			g.Go(func() (err error) {
				d.Saved, err = client.User.SavedRecipes(ctx)
				return err
			})
			g.Go(func() (err error) {
				d.History, err = client.User.RecipeHistory(ctx)
				return err
			})
			g.Go(func() (err error) {
				d.Goals, err = client.Fitness.Goals(ctx)
				return err
			})
			if err := g.Wait(); err != nil {
				return err
			}

			return render(e, d, func(w io.Writer) {
				fmt.Fprintln(w, "Saved recipes")
				printRecipeTable(w, d.Saved)
				fmt.Fprintln(w, "\nRecent history")
				printRecipeTable(w, d.History)
				fmt.Fprintln(w, "\nFitness goals")
				printGoals(w, d.Goals)
			})
		}),
	}
}

func printProfile(w io.Writer, p *types.UserProfile) {
	fmt.Fprintf(w, "%s <%s>\n", orDash(p.Name), p.Email)
	if p.Preferences != nil {
		fmt.Fprintf(w, "Diets: %s\n", joinOrDash(p.Preferences.DietaryRestrictions))
		fmt.Fprintf(w, "Cuisines: %s\n", joinOrDash(p.Preferences.PreferredCuisines))
	}
	if p.FitnessGoal != nil {
		printGoals(w, p.FitnessGoal)
	}
	fmt.Fprintf(w, "Saved recipes: %d  Favorites: %d\n", len(p.SavedRecipes), len(p.FavoriteRecipes))
}
