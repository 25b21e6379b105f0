package devserver

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/fridge/internal/testhelpers"
	"github.com/pageza/fridge/internal/types"
)

func setupKitchen(t *testing.T) (*KitchenService, *User) {
	t.Helper()
	db := testhelpers.SetupTestDatabase(t)
	require.NoError(t, db.AutoMigrate(Models()...))

	user := &User{Email: "cook@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(user).Error)
	return NewKitchenService(db), user
}

func createRecipe(t *testing.T, svc *KitchenService, name string) *Recipe {
	t.Helper()
	recipe := &Recipe{Name: name}
	require.NoError(t, svc.CreateRecipe(context.Background(), recipe))
	return recipe
}

func names(recipes []Recipe) []string {
	out := make([]string, 0, len(recipes))
	for _, r := range recipes {
		out = append(out, r.Name)
	}
	return out
}

func TestKitchenHistory(t *testing.T) {
	svc, user := setupKitchen(t)
	ctx := context.Background()

	soup := createRecipe(t, svc, "Soup")
	salad := createRecipe(t, svc, "Salad")

	base := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	views := []RecipeView{
		{UserID: user.ID, RecipeID: soup.ID, ViewedAt: base},
		{UserID: user.ID, RecipeID: salad.ID, ViewedAt: base.Add(time.Minute)},
		{UserID: user.ID, RecipeID: soup.ID, ViewedAt: base.Add(2 * time.Minute)},
		{UserID: "someone-else", RecipeID: salad.ID, ViewedAt: base.Add(3 * time.Minute)},
	}
	require.NoError(t, svc.db.Create(&views).Error)

	history, err := svc.History(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Soup", "Salad"}, names(history))

	empty, err := svc.History(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, empty)
	assert.NotNil(t, empty)
}

func TestKitchenCreateRecipeRecordsAuthorView(t *testing.T) {
	svc, user := setupKitchen(t)
	ctx := context.Background()

	recipe := &Recipe{Name: "Omelette", AuthorID: user.ID}
	require.NoError(t, svc.CreateRecipe(ctx, recipe))
	assert.NotEmpty(t, recipe.ID)

	history, err := svc.History(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Omelette"}, names(history))
}

func TestKitchenSavedAndFavorites(t *testing.T) {
	svc, user := setupKitchen(t)
	ctx := context.Background()

	soup := createRecipe(t, svc, "Soup")
	salad := createRecipe(t, svc, "Salad")

	require.NoError(t, svc.SaveRecipe(ctx, user.ID, soup.ID))
	require.NoError(t, svc.SaveRecipe(ctx, user.ID, soup.ID))
	require.NoError(t, svc.FavoriteRecipe(ctx, user.ID, salad.ID))
	assert.ErrorIs(t, svc.SaveRecipe(ctx, user.ID, "missing"), ErrRecipeNotFound)
	assert.ErrorIs(t, svc.FavoriteRecipe(ctx, user.ID, "missing"), ErrRecipeNotFound)

	saved, err := svc.SavedRecipes(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Soup"}, names(saved))

	recommended, err := svc.Recommendations(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Salad"}, names(recommended))

	profile, err := svc.Profile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "cook@example.com", profile.Email)
	require.Len(t, profile.SavedRecipes, 1)
	require.Len(t, profile.FavoriteRecipes, 1)
	assert.Equal(t, "Salad", profile.FavoriteRecipes[0].Name)
	assert.Nil(t, profile.FitnessGoal)

	require.NoError(t, svc.UnfavoriteRecipe(ctx, user.ID, salad.ID))
	favorites, err := svc.FavoriteRecipes(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, favorites)
}

func TestKitchenPreferencesAndGoals(t *testing.T) {
	svc, user := setupKitchen(t)
	ctx := context.Background()

	goals, err := svc.Goals(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, &types.FitnessGoals{Allergies: []string{}}, goals)

	updated, err := svc.UpdateGoals(ctx, user.ID, types.FitnessGoals{Calories: 2000, Protein: 150})
	require.NoError(t, err)
	assert.Equal(t, []string{}, updated.Allergies)

	goals, err = svc.Goals(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 2000.0, goals.Calories)
	assert.Equal(t, 150.0, goals.Protein)

	prefs := types.UserPreferences{DietaryRestrictions: []string{"vegan"}, CookingSkillLevel: 2}
	require.NoError(t, svc.UpdatePreferences(ctx, user.ID, prefs))
	profile, err := svc.Profile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, &prefs, profile.Preferences)
	require.NotNil(t, profile.FitnessGoal)
	assert.Equal(t, 2000.0, profile.FitnessGoal.Calories)

	_, err = svc.Goals(ctx, "missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
	_, err = svc.UpdateGoals(ctx, "missing", types.FitnessGoals{})
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.ErrorIs(t, svc.UpdatePreferences(ctx, "missing", prefs), ErrUserNotFound)
}
