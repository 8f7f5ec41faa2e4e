package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/dmitrijs2005/dysh/internal/client/client"
	"github.com/dmitrijs2005/dysh/internal/client/session"
	"github.com/dmitrijs2005/dysh/internal/common"
)

// getSimpleText and getSecret are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getSecret = GetSecret

// Login signs in with an Apple identity token read without echo. Email and
// full name are optional; Apple only shares them on the first sign-in.
func (a *App) Login(ctx context.Context, _ []string) error {
	token, err := getSecret(a.out, "Apple identity token")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(token)

	email, err := getSimpleText(a.reader, "Email (optional)", a.out)
	if err != nil {
		return err
	}
	fullName, err := getSimpleText(a.reader, "Full name (optional)", a.out)
	if err != nil {
		return err
	}

	user, err := a.authService.SignInWithApple(ctx, string(token), email, fullName)
	if err != nil {
		return err
	}
	a.welcome(ctx, user)
	return nil
}

// LoginGoogle signs in with a Google ID token and optional server auth code.
func (a *App) LoginGoogle(ctx context.Context, _ []string) error {
	token, err := getSecret(a.out, "Google ID token")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(token)

	authCode, err := getSimpleText(a.reader, "Server auth code (optional)", a.out)
	if err != nil {
		return err
	}

	user, err := a.authService.SignInWithGoogle(ctx, string(token), authCode)
	if err != nil {
		return err
	}
	a.welcome(ctx, user)
	return nil
}

func (a *App) welcome(ctx context.Context, user session.User) {
	fmt.Fprintf(a.out, "Signed in as %s\n", user.Name)

	done, err := a.authService.OnboardingStatus(ctx)
	if err != nil {
		a.log.Warn(ctx, "onboarding status unavailable", "error", err)
		return
	}
	if !done {
		fmt.Fprintln(a.out, "Finish setting up your taste profile with 'onboard'.")
	}
}

// Logout drops the local session.
func (a *App) Logout(ctx context.Context, _ []string) error {
	a.authService.SignOut(ctx)
	fmt.Fprintln(a.out, "Signed out")
	return nil
}

// Status describes the local session without calling the backend.
func (a *App) Status(ctx context.Context, _ []string) error {
	st, err := a.authService.Status(ctx)
	if err != nil {
		return err
	}
	if !st.SignedIn {
		fmt.Fprintln(a.out, "Not signed in")
		return nil
	}

	fmt.Fprintf(a.out, "Signed in as %s (%s)\n", st.User.Name, st.User.Email)
	fmt.Fprintf(a.out, "State: %s\n", st.State)
	switch {
	case st.ExpiresAt.IsZero():
		fmt.Fprintln(a.out, "Access token expiry: unknown")
	case st.Expired:
		fmt.Fprintf(a.out, "Access token expired at %s (refreshed on next request)\n", st.ExpiresAt.Local().Format(time.DateTime))
	default:
		fmt.Fprintf(a.out, "Access token valid until %s\n", st.ExpiresAt.Local().Format(time.DateTime))
	}
	if !st.StoredAt.IsZero() {
		fmt.Fprintf(a.out, "Stored at %s\n", st.StoredAt.Local().Format(time.DateTime))
	}
	return nil
}

// WhoAmI prints the user snapshot taken at sign-in.
func (a *App) WhoAmI(ctx context.Context, _ []string) error {
	st, err := a.authService.Status(ctx)
	if err != nil {
		return err
	}
	if !st.SignedIn {
		return session.ErrNotAuthenticated
	}
	fmt.Fprintf(a.out, "id:      %s\nemail:   %s\nname:    %s\nonboard: %t\n",
		st.User.ID, st.User.Email, st.User.Name, st.User.HasCompletedOnboarding)
	return nil
}

// Onboard collects the onboarding answers and submits them.
func (a *App) Onboard(ctx context.Context, _ []string) error {
	diet, err := getSimpleText(a.reader, "Dietary preference (e.g. none, vegetarian, vegan)", a.out)
	if err != nil {
		return err
	}
	servingsText, err := getSimpleText(a.reader, "Preferred servings", a.out)
	if err != nil {
		return err
	}
	servings, err := strconv.Atoi(servingsText)
	if err != nil {
		return usage("onboard: servings must be a number")
	}
	country, err := getSimpleText(a.reader, "Country (optional)", a.out)
	if err != nil {
		return err
	}

	data := client.OnboardingData{
		DietaryPreference: diet,
		PreferredServings: servings,
		Ingredients:       []string{},
		SubscriptionPlan:  client.PlanSkip,
	}
	if country != "" {
		data.Location = &client.Location{Country: country}
	}

	if err := a.profileService.Onboard(ctx, data); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Onboarding saved")
	return nil
}
