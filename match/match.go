// Package match decides which of a recipe's ingredients are already in the pantry.
package match

import "strings"

// Available reports whether ingredientName is covered by any of pantryNames.
// Pantry names are expected to be lower-case already. A name matches when
// either string contains the other, so "garlic" covers "2 cloves garlic, minced"
// and also "milk" covers "almond milk".
func Available(ingredientName string, pantryNames []string) bool {
	name := strings.ToLower(strings.TrimSpace(ingredientName))
	if name == "" {
		return false
	}
	for _, p := range pantryNames {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		if strings.Contains(name, p) || strings.Contains(p, name) {
			return true
		}
	}
	return false
}

type Status struct {
	Name      string
	Available bool
}

type Result struct {
	Ingredients []Status
	Have        int
	Missing     int
}

// Classify runs Available over every ingredient, keeping the input order.
func Classify(ingredients []string, pantryNames []string) Result {
	res := Result{Ingredients: make([]Status, 0, len(ingredients))}
	for _, name := range ingredients {
		ok := Available(name, pantryNames)
		res.Ingredients = append(res.Ingredients, Status{Name: name, Available: ok})
		if ok {
			res.Have++
		} else {
			res.Missing++
		}
	}
	return res
}
