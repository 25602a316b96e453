package web

import (
	"whats4dinner/filter"
	"whats4dinner/pantry"
	"whats4dinner/spoonacular"
)

// Status is the lifecycle of a page's remote data.
type Status string

const (
	StatusIdle     Status = "idle"
	StatusLoaded   Status = "loaded"
	StatusFailed   Status = "failed"
	StatusNotFound Status = "not-found"
)

type nav struct {
	Active string
}

type HomeView struct {
	Nav         nav
	PantryCount int
}

type RecipeCard struct {
	ID      int
	Title   string
	Image   string
	Summary string
}

type RecipesView struct {
	Nav     nav
	Status  Status
	Query   string
	Toggles []filter.Toggle
	Recipes []RecipeCard
	Error   string
}

type PantryRow struct {
	pantry.Item
	AddedOn string
	Editing bool
}

type IngredientResult struct {
	spoonacular.Ingredient
	InPantry bool
}

type PantryView struct {
	Nav     nav
	Items   []PantryRow
	Units   []pantry.Unit
	Query   string
	Search  Status
	Results []IngredientResult
	Warning string
	Error   string
}

type IngredientRow struct {
	spoonacular.ExtendedIngredient
	Available bool
}

type DetailView struct {
	Nav         nav
	Status      Status
	Error       string
	Recipe      spoonacular.RecipeDetail
	Summary     string
	Nutrition   spoonacular.Nutrition
	Tags        []string
	Ingredients []IngredientRow
	Have        int
	Missing     int
	Steps       []spoonacular.Step
}

func recipeTags(r spoonacular.RecipeDetail) []string {
	var tags []string
	for _, t := range []struct {
		on   bool
		name string
	}{
		{r.Vegetarian, "Vegetarian"},
		{r.Vegan, "Vegan"},
		{r.GlutenFree, "Gluten Free"},
		{r.DairyFree, "Dairy Free"},
		{r.VeryHealthy, "Very Healthy"},
		{r.Cheap, "Budget Friendly"},
	} {
		if t.on {
			tags = append(tags, t.name)
		}
	}
	return tags
}
