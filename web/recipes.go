package web

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"whats4dinner/filter"
	"whats4dinner/match"
)

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "home.html", HomeView{
		Nav:         nav{Active: "home"},
		PantryCount: len(s.pantry.List(r.Context())),
	})
}

// handleRecipes queries the API on every visit, the first one included, so
// the list reflects the current toggles and pantry.
func (s *Server) handleRecipes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()
	opts := filter.FromQuery(q)
	query := strings.TrimSpace(q.Get("q"))

	view := RecipesView{
		Nav:     nav{Active: "recipes"},
		Status:  StatusIdle,
		Query:   query,
		Toggles: filter.Toggles(opts),
		Recipes: []RecipeCard{},
	}

	var names []string
	if opts.HaveAllIngredients {
		names = s.pantry.Names(ctx)
	}

	recipes, err := s.client.SearchRecipes(ctx, filter.Params(opts, query, names))
	if err != nil {
		slog.Error("VIEW: Recipe search failed", "query", query, "error", err)
		view.Status = StatusFailed
		view.Error = "Failed to load recipes. Please try again later."
		s.render(w, http.StatusOK, "recipes.html", view)
		return
	}

	for _, rec := range recipes {
		view.Recipes = append(view.Recipes, RecipeCard{
			ID:      rec.ID,
			Title:   rec.Title,
			Image:   rec.Image,
			Summary: plainText(rec.Summary),
		})
	}
	view.Status = StatusLoaded
	s.render(w, http.StatusOK, "recipes.html", view)
}

func (s *Server) handleRecipeDetail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	view := DetailView{Nav: nav{Active: "recipes"}, Status: StatusIdle}

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		view.Status = StatusNotFound
		view.Error = "The recipe you're looking for could not be found."
		s.render(w, http.StatusNotFound, "recipe.html", view)
		return
	}

	detail, err := s.client.RecipeDetail(ctx, id)
	if err != nil {
		slog.Error("VIEW: Recipe detail failed", "recipe_id", id, "error", err)
		view.Status = StatusFailed
		view.Error = "Failed to load recipe. Please try again later."
		s.render(w, http.StatusBadGateway, "recipe.html", view)
		return
	}

	rec := detail.Recipe
	res := match.Classify(rec.IngredientNames(), s.pantry.Names(ctx))

	view.Status = StatusLoaded
	view.Recipe = rec
	view.Summary = plainText(rec.Summary)
	view.Nutrition = detail.Nutrition
	view.Tags = recipeTags(rec)
	view.Steps = rec.Steps()
	view.Have = res.Have
	view.Missing = res.Missing
	for i, ing := range rec.ExtendedIngredients {
		view.Ingredients = append(view.Ingredients, IngredientRow{
			ExtendedIngredient: ing,
			Available:          res.Ingredients[i].Available,
		})
	}

	s.render(w, http.StatusOK, "recipe.html", view)
}
