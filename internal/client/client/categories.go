package client

import (
	"fmt"
	"slices"
)

// RecipeCategories are the meal listings served under /recipes/{category}.
var RecipeCategories = []string{
	"breakfast", "breakfast-low-carb", "breakfast-high-protein",
	"lunch", "lunch-low-carb", "lunch-high-protein",
	"dinner", "dinner-low-carb", "dinner-high-protein",
	"low-carb", "high-protein",
}

// ExploreCategories are the explore feeds served under /api/explore/{category}.
var ExploreCategories = []string{
	"trending",
	"thirty-min-meals",
	"chefs-pick",
	"occasion",
	"healthy-light",
	"comfort-food",
	"one-pot-meals",
}

const (
	DefaultCategoryLimit = 5
	DefaultExploreLimit  = 10
	DefaultPageLimit     = 20
)

func validateCategory(kind, name string, known []string) error {
	if !slices.Contains(known, name) {
		return fmt.Errorf("%w: unknown %s category %q", ErrInvalidArgument, kind, name)
	}
	return nil
}
