package spoonacular

import (
	"strconv"
	"strings"
)

const IngredientImageBase = "https://spoonacular.com/cdn/ingredients_100x100/"

// IngredientImageURL expands the bare file name the API returns for ingredients.
func IngredientImageURL(image string) string {
	if image == "" || strings.HasPrefix(image, "http://") || strings.HasPrefix(image, "https://") {
		return image
	}
	return IngredientImageBase + image
}

type Ingredient struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

type RecipeSummary struct {
	ID      int    `json:"id"`
	Title   string `json:"title"`
	Image   string `json:"image"`
	Summary string `json:"summary"`
}

type ExtendedIngredient struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Amount   float64 `json:"amount"`
	Unit     string  `json:"unit"`
	Image    string  `json:"image"`
	Original string  `json:"original"`
}

type StepItem struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

type Step struct {
	Number      int        `json:"number"`
	Step        string     `json:"step"`
	Ingredients []StepItem `json:"ingredients,omitempty"`
	Equipment   []StepItem `json:"equipment,omitempty"`
}

type Instruction struct {
	Name  string `json:"name"`
	Steps []Step `json:"steps"`
}

type RecipeDetail struct {
	ID                   int                  `json:"id"`
	Title                string               `json:"title"`
	Image                string               `json:"image"`
	Summary              string               `json:"summary"`
	ReadyInMinutes       int                  `json:"readyInMinutes"`
	Servings             int                  `json:"servings"`
	SourceURL            string               `json:"sourceUrl"`
	SpoonacularSourceURL string               `json:"spoonacularSourceUrl"`
	ExtendedIngredients  []ExtendedIngredient `json:"extendedIngredients"`
	AnalyzedInstructions []Instruction        `json:"analyzedInstructions"`

	DishTypes []string `json:"dishTypes"`
	Cuisines  []string `json:"cuisines"`
	Diets     []string `json:"diets"`
	Occasions []string `json:"occasions"`

	Vegan       bool `json:"vegan"`
	Vegetarian  bool `json:"vegetarian"`
	GlutenFree  bool `json:"glutenFree"`
	DairyFree   bool `json:"dairyFree"`
	VeryHealthy bool `json:"veryHealthy"`
	Cheap       bool `json:"cheap"`
	VeryPopular bool `json:"veryPopular"`
	Sustainable bool `json:"sustainable"`
	LowFodmap   bool `json:"lowFodmap"`

	WeightWatcherSmartPoints int     `json:"weightWatcherSmartPoints"`
	Gaps                     string  `json:"gaps"`
	AggregateLikes           int     `json:"aggregateLikes"`
	SpoonacularScore         float64 `json:"spoonacularScore"`
	HealthScore              float64 `json:"healthScore"`
}

// Steps returns the steps of the first instruction set, which is the one shown to users.
func (r RecipeDetail) Steps() []Step {
	if len(r.AnalyzedInstructions) == 0 {
		return nil
	}
	return r.AnalyzedInstructions[0].Steps
}

// IngredientNames lists the names used for pantry matching.
func (r RecipeDetail) IngredientNames() []string {
	out := make([]string, 0, len(r.ExtendedIngredients))
	for _, ing := range r.ExtendedIngredients {
		out = append(out, ing.Name)
	}
	return out
}

type Nutrition struct {
	Calories      int
	Protein       string
	Fat           string
	Carbohydrates string
	Fiber         string
	Sugar         string
}

type Detail struct {
	Recipe    RecipeDetail
	Nutrition Nutrition
}

type widgetNutrient struct {
	Title  string `json:"title"`
	Amount string `json:"amount"`
}

type nutritionWidget struct {
	Calories string           `json:"calories"`
	Carbs    string           `json:"carbs"`
	Fat      string           `json:"fat"`
	Protein  string           `json:"protein"`
	Bad      []widgetNutrient `json:"bad"`
	Good     []widgetNutrient `json:"good"`
}

func (w nutritionWidget) nutrition() Nutrition {
	n := Nutrition{
		Calories:      leadingInt(w.Calories),
		Protein:       w.Protein,
		Fat:           w.Fat,
		Carbohydrates: w.Carbs,
	}
	for _, list := range [][]widgetNutrient{w.Good, w.Bad} {
		for _, nt := range list {
			switch strings.ToLower(nt.Title) {
			case "fiber":
				n.Fiber = nt.Amount
			case "sugar":
				n.Sugar = nt.Amount
			}
		}
	}
	return n
}

// leadingInt parses the integer prefix of s ("316k" -> 316). Anything
// without a leading digit yields 0.
func leadingInt(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

type ingredientSearchResponse struct {
	Results      []Ingredient `json:"results"`
	TotalResults int          `json:"totalResults"`
}

type complexSearchResponse struct {
	Results      []RecipeSummary `json:"results"`
	TotalResults int             `json:"totalResults"`
}
