package devserver

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/fridge/internal/types"
)

// JSONColumn stores a value as JSON text
type JSONColumn[T any] struct {
	Data T
}

// Value implements the driver.Valuer interface
func (c JSONColumn[T]) Value() (driver.Value, error) {
	b, err := json.Marshal(c.Data)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (c *JSONColumn[T]) Scan(value interface{}) error {
	var bytes []byte
	switch v := value.(type) {
	case nil:
		var zero T
		c.Data = zero
		return nil
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("unsupported JSON column type %T", value)
	}
	return json.Unmarshal(bytes, &c.Data)
}

// User is an account of the dev server
type User struct {
	ID           string    `gorm:"primaryKey;size:36"`
	Email        string    `gorm:"uniqueIndex;not null;size:100"`
	Name         string    `gorm:"size:100"`
	PasswordHash string    `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Preferences JSONColumn[types.UserPreferences] `gorm:"type:text"`
	Goals       JSONColumn[*types.FitnessGoals]   `gorm:"type:text"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}

// Public returns the user as sent to clients
func (u *User) Public() *types.User {
	return &types.User{ID: u.ID, Email: u.Email, Name: u.Name}
}

// Recipe is a stored recipe
type Recipe struct {
	ID           string `gorm:"primaryKey;size:36"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Name         string                         `gorm:"size:255;not null"`
	Ingredients  JSONColumn[[]types.Ingredient] `gorm:"type:text;not null"`
	Instructions JSONColumn[[]string]           `gorm:"type:text;not null"`
	Image        string                         `gorm:"size:255"`
	CookingTime  float64
	Difficulty   string `gorm:"size:20"`
	Calories     float64
	Protein      float64
	Carbs        float64
	Fat          float64
	AuthorID     string `gorm:"size:36;index"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}

// API returns the recipe in the client's canonical shape
func (r *Recipe) API() types.Recipe {
	ingredients := r.Ingredients.Data
	if ingredients == nil {
		ingredients = []types.Ingredient{}
	}
	instructions := r.Instructions.Data
	if instructions == nil {
		instructions = []string{}
	}
	return types.Recipe{
		ID:           r.ID,
		Name:         r.Name,
		Ingredients:  ingredients,
		Instructions: instructions,
		Image:        r.Image,
		AuthorID:     r.AuthorID,
		CookingTime:  r.CookingTime,
		Difficulty:   r.Difficulty,
		NutritionalInfo: types.NutritionalInfo{
			Calories: r.Calories,
			Protein:  r.Protein,
			Carbs:    r.Carbs,
			Fat:      r.Fat,
		},
	}
}

// SavedRecipe links a user to a recipe they saved
type SavedRecipe struct {
	UserID    string `gorm:"primaryKey;size:36"`
	RecipeID  string `gorm:"primaryKey;size:36"`
	CreatedAt time.Time
}

// RecipeFavorite links a user to a recipe they marked as favorite
type RecipeFavorite struct {
	UserID    string `gorm:"primaryKey;size:36"`
	RecipeID  string `gorm:"primaryKey;size:36"`
	CreatedAt time.Time
}

func (RecipeFavorite) TableName() string {
	return "recipe_favorites"
}

// RecipeView records a recipe a user generated or opened
type RecipeView struct {
	ID       uint   `gorm:"primaryKey"`
	UserID   string `gorm:"size:36;index"`
	RecipeID string `gorm:"size:36"`
	ViewedAt time.Time
}

// Models lists every table the dev server migrates
func Models() []interface{} {
	return []interface{}{&User{}, &Recipe{}, &SavedRecipe{}, &RecipeFavorite{}, &RecipeView{}}
}
