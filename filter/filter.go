// Package filter turns the recipe list's toggles and search text into
// complexSearch query parameters.
package filter

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	ResultCount = 20

	MinProtein  = 25
	MaxFat      = 15
	MaxCalories = 500
	MaxCarbs    = 30
	MinCarbs    = 50
)

type Options struct {
	HighProtein        bool `json:"highProtein"`
	LowFat             bool `json:"lowFat"`
	LowCarb            bool `json:"lowCarb"`
	HighCarb           bool `json:"highCarb"`
	LowCalorie         bool `json:"lowCalorie"`
	Vegan              bool `json:"vegan"`
	GlutenFree         bool `json:"glutenFree"`
	Keto               bool `json:"keto"`
	HaveAllIngredients bool `json:"haveAllIngredients"`
}

// Params builds the query parameters for a recipe search. pantryNames is only
// consulted when HaveAllIngredients is set.
func Params(opts Options, query string, pantryNames []string) url.Values {
	v := url.Values{}

	if q := strings.TrimSpace(query); q != "" {
		v.Set("query", q)
	}
	v.Set("number", strconv.Itoa(ResultCount))
	v.Set("addRecipeInformation", "true")

	var diets []string
	if opts.Vegan {
		diets = append(diets, "vegan")
	}
	if opts.GlutenFree {
		diets = append(diets, "gluten free")
	}
	if opts.Keto {
		diets = append(diets, "ketogenic")
	}
	if len(diets) > 0 {
		v.Set("diet", strings.Join(diets, ","))
	}

	if opts.HighProtein {
		v.Set("minProtein", strconv.Itoa(MinProtein))
	}
	if opts.LowFat {
		v.Set("maxFat", strconv.Itoa(MaxFat))
	}
	if opts.LowCalorie {
		v.Set("maxCalories", strconv.Itoa(MaxCalories))
	}
	// low-carb wins when both carb toggles are on
	switch {
	case opts.LowCarb:
		v.Set("maxCarbs", strconv.Itoa(MaxCarbs))
	case opts.HighCarb:
		v.Set("minCarbs", strconv.Itoa(MinCarbs))
	}

	if opts.HaveAllIngredients {
		if names := dedupe(pantryNames); len(names) > 0 {
			v.Set("includeIngredients", strings.Join(names, ","))
		}
	}

	return v
}

// Build is Params encoded as a query string.
func Build(opts Options, query string, pantryNames []string) string {
	return Params(opts, query, pantryNames).Encode()
}

func dedupe(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

// Toggle is one checkbox on the recipe list page.
type Toggle struct {
	Name    string
	Label   string
	Checked bool
}

var toggleLabels = []struct {
	name  string
	label string
	get   func(*Options) *bool
}{
	{"highProtein", "High protein", func(o *Options) *bool { return &o.HighProtein }},
	{"lowFat", "Low fat", func(o *Options) *bool { return &o.LowFat }},
	{"lowCarb", "Low carb", func(o *Options) *bool { return &o.LowCarb }},
	{"highCarb", "High carb", func(o *Options) *bool { return &o.HighCarb }},
	{"lowCalorie", "Low calorie", func(o *Options) *bool { return &o.LowCalorie }},
	{"vegan", "Vegan", func(o *Options) *bool { return &o.Vegan }},
	{"glutenFree", "Gluten free", func(o *Options) *bool { return &o.GlutenFree }},
	{"keto", "Keto", func(o *Options) *bool { return &o.Keto }},
	{"haveAllIngredients", "Use what I have", func(o *Options) *bool { return &o.HaveAllIngredients }},
}

// Toggles lists every option in display order.
func Toggles(opts Options) []Toggle {
	out := make([]Toggle, 0, len(toggleLabels))
	for _, t := range toggleLabels {
		out = append(out, Toggle{Name: t.name, Label: t.label, Checked: *t.get(&opts)})
	}
	return out
}

// FromQuery reads options from form or query values. A toggle is on when its
// name is present with any value other than "false" or "0".
func FromQuery(q url.Values) Options {
	var opts Options
	for _, t := range toggleLabels {
		if !q.Has(t.name) {
			continue
		}
		switch strings.ToLower(q.Get(t.name)) {
		case "false", "0", "off":
		default:
			*t.get(&opts) = true
		}
	}
	return opts
}
