package types

// FitnessGoals represents a user's daily nutrition targets
type FitnessGoals struct {
	Calories  float64  `json:"calories"`
	Protein   float64  `json:"protein"`
	Carbs     float64  `json:"carbs"`
	Fat       float64  `json:"fat"`
	Water     float64  `json:"water"`
	Allergies []string `json:"allergies"`
}

// UserPreferences represents a user's cooking preferences
type UserPreferences struct {
	DietaryRestrictions   []string `json:"dietaryRestrictions,omitempty"`
	CookingSkillLevel     int      `json:"cookingSkillLevel,omitempty"`
	PreferredCuisines     []string `json:"preferredCuisines,omitempty"`
	MealPlanningFrequency string   `json:"mealPlanningFrequency,omitempty"`
}

// UserProfile represents a user's profile
type UserProfile struct {
	ID              string           `json:"id"`
	Email           string           `json:"email"`
	Name            string           `json:"name,omitempty"`
	FitnessGoal     *FitnessGoals    `json:"fitnessGoal,omitempty"`
	Preferences     *UserPreferences `json:"preferences,omitempty"`
	SavedRecipes    []Recipe         `json:"savedRecipes"`
	FavoriteRecipes []Recipe         `json:"favoriteRecipes"`
}
