package cli

import (
	"context"
	"fmt"
	"strings"
)

func (a *App) Profile(ctx context.Context, _ []string) error {
	p, err := a.profileService.Profile(ctx)
	if err != nil {
		return err
	}
	plan := "free"
	if p.IsPro {
		plan = "pro"
	}
	fmt.Fprintf(a.out, "%s <%s> [%s]\n", p.FullName, p.Email, plan)
	return nil
}

func (a *App) Prefs(ctx context.Context, _ []string) error {
	prefs, err := a.profileService.Preferences(ctx)
	if err != nil {
		return err
	}
	a.printPrefs(prefs)
	return nil
}

func (a *App) AddPref(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usage("addpref <cuisine>")
	}
	prefs, err := a.profileService.AddPreference(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}
	a.printPrefs(prefs)
	return nil
}

func (a *App) RemovePref(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usage("rmpref <cuisine>")
	}
	prefs, err := a.profileService.RemovePreference(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}
	a.printPrefs(prefs)
	return nil
}

func (a *App) printPrefs(prefs []string) {
	if len(prefs) == 0 {
		fmt.Fprintln(a.out, "No cuisine preferences")
		return
	}
	fmt.Fprintln(a.out, "Cuisines:", strings.Join(prefs, ", "))
}

func (a *App) NextMeal(ctx context.Context, _ []string) error {
	m, err := a.profileService.NextMeal(ctx)
	if err != nil {
		return err
	}
	if m.DisplayText != "" {
		fmt.Fprintln(a.out, m.DisplayText)
		return nil
	}
	fmt.Fprintf(a.out, "%s in %d min\n", m.NextMealType, m.MinutesUntil)
	return nil
}
