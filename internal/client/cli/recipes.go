package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/dysh/internal/client/client"
)

func (a *App) Explore(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usage("explore <category> [limit]; categories: " + strings.Join(client.ExploreCategories, ", "))
	}
	limit, err := intArg(args, 1, "explore <category> [limit]")
	if err != nil {
		return err
	}
	resp, err := a.recipeService.Explore(ctx, args[0], limit)
	if err != nil {
		return err
	}
	a.printRecipes(resp.Recipes)
	return nil
}

func (a *App) Like(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("like <recipe id>")
	}
	if err := a.recipeService.Like(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Saved to your cookbook")
	return nil
}

func (a *App) Unlike(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("unlike <recipe id>")
	}
	if err := a.recipeService.Unlike(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Removed from your cookbook")
	return nil
}

func (a *App) Cookbook(ctx context.Context, args []string) error {
	limit, err := intArg(args, 0, "cookbook [limit] [offset]")
	if err != nil {
		return err
	}
	offset, err := intArg(args, 1, "cookbook [limit] [offset]")
	if err != nil {
		return err
	}
	recipes, err := a.recipeService.Cookbook(ctx, limit, offset)
	if err != nil {
		return err
	}
	a.printRecipes(recipes)
	return nil
}

func (a *App) Daily(ctx context.Context, args []string) error {
	category := ""
	if len(args) > 0 {
		category = args[0]
	}
	daily, err := a.recipeService.Daily(ctx, category, 0, 0)
	if err != nil {
		return err
	}
	if len(daily) == 0 {
		fmt.Fprintln(a.out, "No daily recipes yet, try 'gendaily'")
		return nil
	}
	for _, d := range daily {
		fmt.Fprintf(a.out, "[%s] %s  %s", d.Category, d.Recipe.ID, d.Recipe.Title)
		if d.LocationName != "" {
			fmt.Fprintf(a.out, "  (%s)", d.LocationName)
		}
		fmt.Fprintln(a.out)
	}
	return nil
}

func (a *App) GenerateDaily(ctx context.Context, _ []string) error {
	res, err := a.recipeService.GenerateDaily(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Generated %d daily recipes\n", res.RecipesGenerated)
	return nil
}

func (a *App) Category(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usage("category <name> [limit]; names: " + strings.Join(client.RecipeCategories, ", "))
	}
	limit, err := intArg(args, 1, "category <name> [limit]")
	if err != nil {
		return err
	}
	recipes, err := a.recipeService.Category(ctx, args[0], limit)
	if err != nil {
		return err
	}
	a.printRecipes(recipes)
	return nil
}

// Generate takes ingredients as words; "-country <name>" overrides the
// cuisine.
func (a *App) Generate(ctx context.Context, args []string) error {
	var ingredients []string
	country := ""
	for i := 0; i < len(args); i++ {
		if args[i] == "-country" {
			if i+1 >= len(args) {
				return usage("generate <ingredient>... [-country <name>]")
			}
			country = args[i+1]
			i++
			continue
		}
		ingredients = append(ingredients, args[i])
	}
	if len(ingredients) == 0 {
		return usage("generate <ingredient>... [-country <name>]")
	}

	fmt.Fprintln(a.out, "Cooking up ideas...")
	resp, err := a.recipeService.Generate(ctx, ingredients, country)
	if err != nil {
		return err
	}
	for i, m := range resp.Meals {
		fmt.Fprintf(a.out, "%d. %s  (%s, %s, %.1f★)\n", i+1, m.Name, m.EstimatedCookTime, m.Calories, m.Rating)
		for _, in := range m.Ingredients {
			fmt.Fprintf(a.out, "   - %s\n", in)
		}
	}
	if resp.Location != "" {
		fmt.Fprintf(a.out, "Cuisine based on %s\n", resp.Location)
	}
	return nil
}

func (a *App) Recipe(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("recipe <id>")
	}
	r, err := a.recipeService.Recipe(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s\n%s · %s · %s\n", r.Title, r.Duration, r.Calories, r.Rating)
	if len(r.Ingredients) > 0 {
		fmt.Fprintln(a.out, "\nIngredients:")
		for _, in := range r.Ingredients {
			fmt.Fprintf(a.out, "  - %s\n", in)
		}
	}
	if len(r.Instructions) > 0 {
		fmt.Fprintln(a.out, "\nSteps:")
		for i, s := range r.Instructions {
			fmt.Fprintf(a.out, "  %d. %s\n", i+1, s)
		}
	}
	if len(r.ProTips) > 0 {
		fmt.Fprintln(a.out, "\nPro tips:")
		for _, tip := range r.ProTips {
			fmt.Fprintf(a.out, "  * %s\n", tip)
		}
	}
	return nil
}

func (a *App) Testimonials(ctx context.Context, _ []string) error {
	list, err := a.recipeService.Testimonials(ctx)
	if err != nil {
		return err
	}
	for _, t := range list {
		fmt.Fprintf(a.out, "%q - %s\n  %s\n", t.Title, t.UserName, t.Text)
	}
	return nil
}

func (a *App) printRecipes(recipes []client.Recipe) {
	if len(recipes) == 0 {
		fmt.Fprintln(a.out, "No recipes")
		return
	}
	for _, r := range recipes {
		liked := " "
		if r.IsLiked {
			liked = "♥"
		}
		fmt.Fprintf(a.out, "%s %-24s %s  (%s, %s)\n", liked, r.ID, r.Title, r.Duration, r.Calories)
	}
}

// intArg parses args[i] as a non-negative int; a missing argument yields 0.
func intArg(args []string, i int, line string) (int, error) {
	if i >= len(args) {
		return 0, nil
	}
	n, err := strconv.Atoi(args[i])
	if err != nil || n < 0 {
		return 0, usage(line)
	}
	return n, nil
}
