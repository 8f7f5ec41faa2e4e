package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/dysh/internal/client/client"
)

// RecipeService covers recipe discovery, the cookbook and generation.
type RecipeService interface {
	Explore(ctx context.Context, category string, limit int) (client.ExploreResponse, error)
	Like(ctx context.Context, id string) error
	Unlike(ctx context.Context, id string) error
	Cookbook(ctx context.Context, limit, offset int) ([]client.Recipe, error)
	// Daily lists daily recipes, all of them when category is empty.
	Daily(ctx context.Context, category string, limit, offset int) ([]client.DailyRecipe, error)
	GenerateDaily(ctx context.Context) (client.GenerateDailyResult, error)
	Category(ctx context.Context, name string, limit int) ([]client.Recipe, error)
	Generate(ctx context.Context, ingredients []string, country string) (client.RecipeResponse, error)
	Recipe(ctx context.Context, id string) (client.Recipe, error)
	Testimonials(ctx context.Context) ([]client.Testimonial, error)
}

type recipeService struct {
	client client.Client
}

func NewRecipeService(c client.Client) RecipeService {
	return &recipeService{client: c}
}

func (r *recipeService) Explore(ctx context.Context, category string, limit int) (client.ExploreResponse, error) {
	return r.client.Explore(ctx, normalize(category), limit)
}

func (r *recipeService) Like(ctx context.Context, id string) error {
	return r.client.LikeRecipe(ctx, strings.TrimSpace(id))
}

func (r *recipeService) Unlike(ctx context.Context, id string) error {
	return r.client.UnlikeRecipe(ctx, strings.TrimSpace(id))
}

func (r *recipeService) Cookbook(ctx context.Context, limit, offset int) ([]client.Recipe, error) {
	return r.client.Cookbook(ctx, limit, offset)
}

func (r *recipeService) Daily(ctx context.Context, category string, limit, offset int) ([]client.DailyRecipe, error) {
	if category = normalize(category); category != "" {
		return r.client.DailyRecipesByCategory(ctx, category)
	}
	resp, err := r.client.DailyRecipes(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	return resp.Recipes, nil
}

func (r *recipeService) GenerateDaily(ctx context.Context) (client.GenerateDailyResult, error) {
	return r.client.GenerateDailyRecipes(ctx)
}

func (r *recipeService) Category(ctx context.Context, name string, limit int) ([]client.Recipe, error) {
	return r.client.CategoryRecipes(ctx, normalize(name), limit)
}

// Generate accepts ingredients as separate words or comma-separated lists.
func (r *recipeService) Generate(ctx context.Context, ingredients []string, country string) (client.RecipeResponse, error) {
	var list []string
	for _, in := range ingredients {
		for _, part := range strings.Split(in, ",") {
			if part = strings.TrimSpace(part); part != "" {
				list = append(list, part)
			}
		}
	}
	if len(list) == 0 {
		return client.RecipeResponse{}, fmt.Errorf("%w: at least one ingredient is required", client.ErrInvalidArgument)
	}
	return r.client.GenerateRecipes(ctx, client.RecipeGenerationRequest{
		Ingredients: list,
		Country:     strings.TrimSpace(country),
	})
}

func (r *recipeService) Recipe(ctx context.Context, id string) (client.Recipe, error) {
	return r.client.Recipe(ctx, strings.TrimSpace(id))
}

func (r *recipeService) Testimonials(ctx context.Context) ([]client.Testimonial, error) {
	return r.client.Testimonials(ctx)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
