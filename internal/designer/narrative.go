package designer

import "sort"

// explainIngredients attaches role and context text to every material in
// the recipe and its additions, base first, largest amounts first.
func (d *Designer) explainIngredients(recipe, additions map[string]float64) []Ingredient {
	out := make([]Ingredient, 0, len(recipe)+len(additions))
	out = append(out, d.explainGroup(recipe)...)
	out = append(out, d.explainGroup(additions)...)
	return out
}

func (d *Designer) explainGroup(group map[string]float64) []Ingredient {
	names := make([]string, 0, len(group))
	for name := range group {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if group[names[i]] != group[names[j]] {
			return group[names[i]] > group[names[j]]
		}
		return names[i] < names[j]
	})

	out := make([]Ingredient, 0, len(names))
	for _, name := range names {
		ing := Ingredient{Material: name, Role: "ingredient"}
		if role, ok := d.tables.Roles[name]; ok {
			ing.Role = role.Role
			ing.Context = role.Context
		}
		out = append(out, ing)
	}
	return out
}
