package devserver

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/fridge/internal/database"
	"github.com/pageza/fridge/internal/types"
)

var (
	ErrRecipeNotFound = errors.New("recipe not found")
	ErrUserNotFound   = errors.New("user not found")
)

const (
	historyLimit         = 20
	recommendationsLimit = 10
)

// KitchenService stores recipes and per-user recipe state
type KitchenService struct {
	db *gorm.DB
}

func NewKitchenService(db *gorm.DB) *KitchenService {
	return &KitchenService{db: db}
}

// Ping reports whether the store is reachable
func (s *KitchenService) Ping(ctx context.Context) error {
	return database.HealthCheck(ctx, s.db)
}

func (s *KitchenService) ListRecipes(ctx context.Context) ([]Recipe, error) {
	var recipes []Recipe
	if err := s.db.WithContext(ctx).Order("created_at desc").Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	return recipes, nil
}

func (s *KitchenService) GetRecipe(ctx context.Context, id string) (*Recipe, error) {
	var recipe Recipe
	err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRecipeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}
	return &recipe, nil
}

// CreateRecipe stores a recipe and records it in the author's history
func (s *KitchenService) CreateRecipe(ctx context.Context, recipe *Recipe) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(recipe).Error; err != nil {
			return fmt.Errorf("failed to create recipe: %w", err)
		}
		if recipe.AuthorID == "" {
			return nil
		}
		return tx.Create(&RecipeView{UserID: recipe.AuthorID, RecipeID: recipe.ID, ViewedAt: recipe.CreatedAt}).Error
	})
}

func (s *KitchenService) RecordView(ctx context.Context, userID, recipeID string) error {
	view := RecipeView{UserID: userID, RecipeID: recipeID, ViewedAt: s.db.NowFunc()}
	return s.db.WithContext(ctx).Create(&view).Error
}

func (s *KitchenService) SaveRecipe(ctx context.Context, userID, recipeID string) error {
	if _, err := s.GetRecipe(ctx, recipeID); err != nil {
		return err
	}
	link := SavedRecipe{UserID: userID, RecipeID: recipeID}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&link).Error
}

func (s *KitchenService) FavoriteRecipe(ctx context.Context, userID, recipeID string) error {
	if _, err := s.GetRecipe(ctx, recipeID); err != nil {
		return err
	}
	fav := RecipeFavorite{UserID: userID, RecipeID: recipeID}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&fav).Error
}

func (s *KitchenService) UnfavoriteRecipe(ctx context.Context, userID, recipeID string) error {
	return s.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&RecipeFavorite{}).Error
}

func (s *KitchenService) SavedRecipes(ctx context.Context, userID string) ([]Recipe, error) {
	var recipes []Recipe
	err := s.db.WithContext(ctx).
		Joins("JOIN saved_recipes ON saved_recipes.recipe_id = recipes.id").
		Where("saved_recipes.user_id = ?", userID).
		Order("saved_recipes.created_at desc").
		Find(&recipes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch saved recipes: %w", err)
	}
	return recipes, nil
}

func (s *KitchenService) FavoriteRecipes(ctx context.Context, userID string) ([]Recipe, error) {
	var recipes []Recipe
	err := s.db.WithContext(ctx).
		Joins("JOIN recipe_favorites ON recipe_favorites.recipe_id = recipes.id").
		Where("recipe_favorites.user_id = ?", userID).
		Order("recipe_favorites.created_at desc").
		Find(&recipes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch favorite recipes: %w", err)
	}
	return recipes, nil
}

// History returns the user's most recently viewed recipes, newest first,
// each recipe once
func (s *KitchenService) History(ctx context.Context, userID string) ([]Recipe, error) {
	var views []RecipeView
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("viewed_at desc, id desc").
		Find(&views).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recipe history: %w", err)
	}

	seen := make(map[string]bool)
	var ids []string
	for _, v := range views {
		if seen[v.RecipeID] {
			continue
		}
		seen[v.RecipeID] = true
		ids = append(ids, v.RecipeID)
		if len(ids) == historyLimit {
			break
		}
	}
	if len(ids) == 0 {
		return []Recipe{}, nil
	}

	var recipes []Recipe
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch recipe history: %w", err)
	}
	byID := make(map[string]Recipe, len(recipes))
	for _, r := range recipes {
		byID[r.ID] = r
	}
	out := make([]Recipe, 0, len(ids))
	for _, id := range ids {
		if r, ok := byID[id]; ok {
			out = append(out, r)
		}
	}
	return out, nil
}

// Recommendations returns recent recipes the user has not saved yet
func (s *KitchenService) Recommendations(ctx context.Context, userID string) ([]Recipe, error) {
	var recipes []Recipe
	saved := s.db.Model(&SavedRecipe{}).Select("recipe_id").Where("user_id = ?", userID)
	err := s.db.WithContext(ctx).
		Where("id NOT IN (?)", saved).
		Order("created_at desc").
		Limit(recommendationsLimit).
		Find(&recipes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get recommendations: %w", err)
	}
	return recipes, nil
}

func (s *KitchenService) User(ctx context.Context, userID string) (*User, error) {
	var user User
	err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (s *KitchenService) Profile(ctx context.Context, userID string) (*types.UserProfile, error) {
	user, err := s.User(ctx, userID)
	if err != nil {
		return nil, err
	}
	saved, err := s.SavedRecipes(ctx, userID)
	if err != nil {
		return nil, err
	}
	favorites, err := s.FavoriteRecipes(ctx, userID)
	if err != nil {
		return nil, err
	}

	prefs := user.Preferences.Data
	return &types.UserProfile{
		ID:              user.ID,
		Email:           user.Email,
		Name:            user.Name,
		FitnessGoal:     user.Goals.Data,
		Preferences:     &prefs,
		SavedRecipes:    toAPI(saved),
		FavoriteRecipes: toAPI(favorites),
	}, nil
}

func (s *KitchenService) UpdatePreferences(ctx context.Context, userID string, prefs types.UserPreferences) error {
	res := s.db.WithContext(ctx).Model(&User{}).
		Where("id = ?", userID).
		Update("preferences", JSONColumn[types.UserPreferences]{Data: prefs})
	if res.Error != nil {
		return fmt.Errorf("failed to update preferences: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// Goals returns the user's goals, zero valued when never set
func (s *KitchenService) Goals(ctx context.Context, userID string) (*types.FitnessGoals, error) {
	user, err := s.User(ctx, userID)
	if err != nil {
		return nil, err
	}
	goals := user.Goals.Data
	if goals == nil {
		goals = &types.FitnessGoals{}
	}
	if goals.Allergies == nil {
		goals.Allergies = []string{}
	}
	return goals, nil
}

func (s *KitchenService) UpdateGoals(ctx context.Context, userID string, goals types.FitnessGoals) (*types.FitnessGoals, error) {
	if goals.Allergies == nil {
		goals.Allergies = []string{}
	}
	res := s.db.WithContext(ctx).Model(&User{}).
		Where("id = ?", userID).
		Update("goals", JSONColumn[*types.FitnessGoals]{Data: &goals})
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update fitness goals: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrUserNotFound
	}
	return &goals, nil
}

func toAPI(recipes []Recipe) []types.Recipe {
	out := make([]types.Recipe, 0, len(recipes))
	for i := range recipes {
		out = append(out, recipes[i].API())
	}
	return out
}
