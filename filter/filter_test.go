package filter

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParams(t *testing.T) {
	pantry := []string{"garlic", "rice", "garlic", "milk"}

	tests := []struct {
		name   string
		opts   Options
		query  string
		pantry []string
		want   url.Values
	}{
		{
			name: "no options, no query",
			want: url.Values{"number": {"20"}, "addRecipeInformation": {"true"}},
		},
		{
			name:  "query is trimmed",
			query: "  pasta ",
			want:  url.Values{"query": {"pasta"}, "number": {"20"}, "addRecipeInformation": {"true"}},
		},
		{
			name:  "blank query omitted",
			query: "   ",
			want:  url.Values{"number": {"20"}, "addRecipeInformation": {"true"}},
		},
		{
			name: "diets in fixed order",
			opts: Options{Keto: true, Vegan: true, GlutenFree: true},
			want: url.Values{"diet": {"vegan,gluten free,ketogenic"}, "number": {"20"}, "addRecipeInformation": {"true"}},
		},
		{
			name: "nutrient thresholds",
			opts: Options{HighProtein: true, LowFat: true, LowCalorie: true},
			want: url.Values{
				"minProtein": {"25"}, "maxFat": {"15"}, "maxCalories": {"500"},
				"number": {"20"}, "addRecipeInformation": {"true"},
			},
		},
		{
			name: "high carb alone",
			opts: Options{HighCarb: true},
			want: url.Values{"minCarbs": {"50"}, "number": {"20"}, "addRecipeInformation": {"true"}},
		},
		{
			name: "low carb beats high carb",
			opts: Options{LowCarb: true, HighCarb: true},
			want: url.Values{"maxCarbs": {"30"}, "number": {"20"}, "addRecipeInformation": {"true"}},
		},
		{
			name:   "have all uses the pantry, deduplicated",
			opts:   Options{HaveAllIngredients: true},
			pantry: pantry,
			want: url.Values{
				"includeIngredients": {"garlic,rice,milk"},
				"number":             {"20"}, "addRecipeInformation": {"true"},
			},
		},
		{
			name: "have all with an empty pantry",
			opts: Options{HaveAllIngredients: true},
			want: url.Values{"number": {"20"}, "addRecipeInformation": {"true"}},
		},
		{
			name:   "pantry ignored without have all",
			pantry: pantry,
			want:   url.Values{"number": {"20"}, "addRecipeInformation": {"true"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Params(tt.opts, tt.query, tt.pantry))
		})
	}
}

func TestBuild(t *testing.T) {
	got := Build(Options{Vegan: true, LowCarb: true}, "curry", nil)
	assert.Equal(t, "addRecipeInformation=true&diet=vegan&maxCarbs=30&number=20&query=curry", got)
}

func TestFromQuery(t *testing.T) {
	q := url.Values{
		"vegan":      {"on"},
		"lowCarb":    {""},
		"keto":       {"false"},
		"highCarb":   {"0"},
		"unrelated":  {"true"},
		"glutenFree": {"true"},
	}
	assert.Equal(t, Options{Vegan: true, LowCarb: true, GlutenFree: true}, FromQuery(q))
	assert.Equal(t, Options{}, FromQuery(url.Values{}))
}

func TestToggles(t *testing.T) {
	toggles := Toggles(Options{Keto: true})
	assert.Len(t, toggles, 9)

	checked := map[string]bool{}
	for _, tg := range toggles {
		checked[tg.Name] = tg.Checked
	}
	assert.True(t, checked["keto"])
	assert.False(t, checked["vegan"])

	// names round-trip through FromQuery
	q := url.Values{}
	for _, tg := range toggles {
		q.Set(tg.Name, "on")
	}
	all := FromQuery(q)
	assert.True(t, all.HighProtein && all.LowFat && all.LowCarb && all.HighCarb && all.LowCalorie)
	assert.True(t, all.Vegan && all.GlutenFree && all.Keto && all.HaveAllIngredients)
}
