package types

// RecipeSuggestion is a single dish proposed by the model
type RecipeSuggestion struct {
	Name                string   `json:"name" validate:"required"`
	Description         string   `json:"description" validate:"required"`
	Instructions        []string `json:"instructions" validate:"required,min=1,dive,required"`
	OptionalIngredients []string `json:"optionalIngredients,omitempty" validate:"omitempty,max=2,dive,required"`
}
