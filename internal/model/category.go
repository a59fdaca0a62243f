package model

import "strings"

// Category is a free-form tag used for filtering and color-coding.
type Category string

// CategoryAll is the filter value that matches every category.
const CategoryAll Category = "all"

// Built-in categories used when no configuration overrides them.
const (
	CategoryPersonal Category = "personal"
	CategoryWork     Category = "work"
	CategoryHealth   Category = "health"
)

// DefaultCategories is the tab order used when the config lists none.
var DefaultCategories = []Category{CategoryPersonal, CategoryWork, CategoryHealth}

// IsAll reports whether c means "no filter". The empty category is
// treated the same way.
func (c Category) IsAll() bool {
	return c == "" || c == CategoryAll
}

// Matches reports whether an item tagged with other passes a filter on c.
func (c Category) Matches(other Category) bool {
	return c.IsAll() || c == other
}

// Label returns the category with its first letter upper-cased for display.
func (c Category) Label() string {
	if c.IsAll() {
		return "All"
	}
	s := string(c)
	r := []rune(s)
	return strings.ToUpper(string(r[0])) + string(r[1:])
}
