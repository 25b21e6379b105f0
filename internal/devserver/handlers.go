package devserver

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/pageza/fridge/internal/types"
)

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type goalsRequest struct {
	Calories  float64  `json:"calories" binding:"gte=0"`
	Protein   float64  `json:"protein" binding:"gte=0"`
	Carbs     float64  `json:"carbs" binding:"gte=0"`
	Fat       float64  `json:"fat" binding:"gte=0"`
	Water     float64  `json:"water" binding:"gte=0"`
	Allergies []string `json:"allergies"`
}

// Handlers serves the backend contract consumed by the client
type Handlers struct {
	auth      *AuthService
	kitchen   *KitchenService
	generator Generator
	log       logrus.FieldLogger
}

func NewHandlers(auth *AuthService, kitchen *KitchenService, log logrus.FieldLogger) *Handlers {
	return &Handlers{auth: auth, kitchen: kitchen, log: log}
}

func (h *Handlers) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	token, user, err := h.auth.Register(req.Email, req.Password, req.Name)
	if errors.Is(err, ErrUserExists) {
		c.JSON(http.StatusConflict, gin.H{"error": "User already exists"})
		return
	}
	if err != nil {
		h.internalError(c, err, "Registration failed")
		return
	}

	c.JSON(http.StatusCreated, types.AuthResponse{Token: token, User: user.Public()})
}

func (h *Handlers) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
		return
	}

	token, user, err := h.auth.Login(req.Email, req.Password)
	if errors.Is(err, ErrInvalidCredentials) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}
	if err != nil {
		h.internalError(c, err, "Login failed")
		return
	}

	c.JSON(http.StatusOK, types.AuthResponse{Token: token, User: user.Public()})
}

func (h *Handlers) ListRecipes(c *gin.Context) {
	recipes, err := h.kitchen.ListRecipes(c.Request.Context())
	if err != nil {
		h.internalError(c, err, "Failed to fetch recipes")
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": toAPI(recipes)})
}

func (h *Handlers) GetRecipe(c *gin.Context) {
	recipe, err := h.kitchen.GetRecipe(c.Request.Context(), c.Param("id"))
	if errors.Is(err, ErrRecipeNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}
	if err != nil {
		h.internalError(c, err, "Failed to fetch recipe")
		return
	}

	if err := h.kitchen.RecordView(c.Request.Context(), c.GetString("user_id"), recipe.ID); err != nil {
		_ = c.Error(err)
	}
	c.JSON(http.StatusOK, recipe.API())
}

func (h *Handlers) GenerateRecipe(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid generation parameters: " + err.Error()})
		return
	}

	kept := req.Ingredients[:0]
	for _, ing := range req.Ingredients {
		if strings.TrimSpace(ing) != "" {
			kept = append(kept, ing)
		}
	}
	if len(kept) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "At least one ingredient is required"})
		return
	}
	req.Ingredients = kept

	recipe := h.generator.Generate(req)
	recipe.AuthorID = c.GetString("user_id")
	if err := h.kitchen.CreateRecipe(c.Request.Context(), recipe); err != nil {
		h.internalError(c, err, "Failed to generate recipe")
		return
	}

	c.JSON(http.StatusOK, recipe.API())
}

func (h *Handlers) SaveRecipe(c *gin.Context) {
	h.recipeAction(c, h.kitchen.SaveRecipe, "Failed to save recipe")
}

func (h *Handlers) FavoriteRecipe(c *gin.Context) {
	h.recipeAction(c, h.kitchen.FavoriteRecipe, "Failed to favorite recipe")
}

func (h *Handlers) UnfavoriteRecipe(c *gin.Context) {
	h.recipeAction(c, h.kitchen.UnfavoriteRecipe, "Failed to unfavorite recipe")
}

func (h *Handlers) Recommendations(c *gin.Context) {
	recipes, err := h.kitchen.Recommendations(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		h.internalError(c, err, "Failed to get recommendations")
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": toAPI(recipes)})
}

func (h *Handlers) RecipeHistory(c *gin.Context) {
	recipes, err := h.kitchen.History(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		h.internalError(c, err, "Failed to fetch recipe history")
		return
	}
	c.JSON(http.StatusOK, toAPI(recipes))
}

func (h *Handlers) SavedRecipes(c *gin.Context) {
	recipes, err := h.kitchen.SavedRecipes(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		h.internalError(c, err, "Failed to fetch saved recipes")
		return
	}
	c.JSON(http.StatusOK, toAPI(recipes))
}

func (h *Handlers) Profile(c *gin.Context) {
	profile, err := h.kitchen.Profile(c.Request.Context(), c.GetString("user_id"))
	if errors.Is(err, ErrUserNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err != nil {
		h.internalError(c, err, "Failed to get profile")
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *Handlers) UpdatePreferences(c *gin.Context) {
	var prefs types.UserPreferences
	if err := c.ShouldBindJSON(&prefs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	err := h.kitchen.UpdatePreferences(c.Request.Context(), c.GetString("user_id"), prefs)
	if errors.Is(err, ErrUserNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err != nil {
		h.internalError(c, err, "Failed to update preferences")
		return
	}
	c.JSON(http.StatusOK, prefs)
}

func (h *Handlers) FitnessGoals(c *gin.Context) {
	goals, err := h.kitchen.Goals(c.Request.Context(), c.GetString("user_id"))
	if errors.Is(err, ErrUserNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err != nil {
		h.internalError(c, err, "Failed to fetch fitness goals")
		return
	}
	c.JSON(http.StatusOK, goals)
}

func (h *Handlers) UpdateFitnessGoals(c *gin.Context) {
	var req goalsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Goals must be non-negative numbers"})
		return
	}
	goals, err := h.kitchen.UpdateGoals(c.Request.Context(), c.GetString("user_id"), types.FitnessGoals(req))
	if errors.Is(err, ErrUserNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err != nil {
		h.internalError(c, err, "Failed to update fitness goals")
		return
	}
	c.JSON(http.StatusOK, goals)
}

func (h *Handlers) HealthCheck(c *gin.Context) {
	if err := h.kitchen.Ping(c.Request.Context()); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unhealthy",
			"error":  "database unavailable",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "Fridge dev server is running",
	})
}

func (h *Handlers) recipeAction(c *gin.Context, action func(ctx context.Context, userID, recipeID string) error, fallback string) {
	err := action(c.Request.Context(), c.GetString("user_id"), c.Param("id"))
	if errors.Is(err, ErrRecipeNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}
	if err != nil {
		h.internalError(c, err, fallback)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handlers) internalError(c *gin.Context, err error, message string) {
	_ = c.Error(err)
	h.log.WithError(err).Error(message)
	c.JSON(http.StatusInternalServerError, gin.H{"error": message})
}
