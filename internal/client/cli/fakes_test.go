package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/dmitrijs2005/dysh/internal/client/client"
	"github.com/dmitrijs2005/dysh/internal/client/services"
	"github.com/dmitrijs2005/dysh/internal/client/session"
	"github.com/dmitrijs2005/dysh/internal/logging"
)

type fakeAuth struct {
	appleToken, appleEmail, appleName string
	googleToken, googleCode           string
	signInUser                        session.User
	signInErr                         error

	status    services.AuthStatus
	statusErr error

	onboarded    bool
	onboardedErr error

	signOuts int
}

func (f *fakeAuth) SignInWithApple(_ context.Context, token, email, name string) (session.User, error) {
	f.appleToken, f.appleEmail, f.appleName = token, email, name
	return f.signInUser, f.signInErr
}

func (f *fakeAuth) SignInWithGoogle(_ context.Context, token, code string) (session.User, error) {
	f.googleToken, f.googleCode = token, code
	return f.signInUser, f.signInErr
}

func (f *fakeAuth) SignOut(context.Context) { f.signOuts++ }

func (f *fakeAuth) Status(context.Context) (services.AuthStatus, error) { return f.status, f.statusErr }

func (f *fakeAuth) OnboardingStatus(context.Context) (bool, error) { return f.onboarded, f.onboardedErr }

type fakeRecipes struct {
	err error

	explore     client.ExploreResponse
	recipes     []client.Recipe
	daily       []client.DailyRecipe
	generated   client.RecipeResponse
	recipe      client.Recipe
	testimonial []client.Testimonial

	lastCategory    string
	lastLimit       int
	lastOffset      int
	lastID          string
	lastIngredients []string
	lastCountry     string
}

func (f *fakeRecipes) Explore(_ context.Context, c string, limit int) (client.ExploreResponse, error) {
	f.lastCategory, f.lastLimit = c, limit
	return f.explore, f.err
}
func (f *fakeRecipes) Like(_ context.Context, id string) error   { f.lastID = id; return f.err }
func (f *fakeRecipes) Unlike(_ context.Context, id string) error { f.lastID = id; return f.err }
func (f *fakeRecipes) Cookbook(_ context.Context, limit, offset int) ([]client.Recipe, error) {
	f.lastLimit, f.lastOffset = limit, offset
	return f.recipes, f.err
}
func (f *fakeRecipes) Daily(_ context.Context, c string, _, _ int) ([]client.DailyRecipe, error) {
	f.lastCategory = c
	return f.daily, f.err
}
func (f *fakeRecipes) GenerateDaily(context.Context) (client.GenerateDailyResult, error) {
	return client.GenerateDailyResult{RecipesGenerated: 4}, f.err
}
func (f *fakeRecipes) Category(_ context.Context, name string, limit int) ([]client.Recipe, error) {
	f.lastCategory, f.lastLimit = name, limit
	return f.recipes, f.err
}
func (f *fakeRecipes) Generate(_ context.Context, ingredients []string, country string) (client.RecipeResponse, error) {
	f.lastIngredients, f.lastCountry = ingredients, country
	return f.generated, f.err
}
func (f *fakeRecipes) Recipe(_ context.Context, id string) (client.Recipe, error) {
	f.lastID = id
	return f.recipe, f.err
}
func (f *fakeRecipes) Testimonials(context.Context) ([]client.Testimonial, error) {
	return f.testimonial, f.err
}

type fakeProfile struct {
	err         error
	profile     client.UserProfile
	prefs       []string
	nextMeal    client.NextMeal
	lastCuisine string
	lastOnboard client.OnboardingData
}

func (f *fakeProfile) Profile(context.Context) (client.UserProfile, error) { return f.profile, f.err }
func (f *fakeProfile) Preferences(context.Context) ([]string, error)       { return f.prefs, f.err }
func (f *fakeProfile) AddPreference(_ context.Context, c string) ([]string, error) {
	f.lastCuisine = c
	return f.prefs, f.err
}
func (f *fakeProfile) RemovePreference(_ context.Context, c string) ([]string, error) {
	f.lastCuisine = c
	return f.prefs, f.err
}
func (f *fakeProfile) NextMeal(context.Context) (client.NextMeal, error) { return f.nextMeal, f.err }
func (f *fakeProfile) Onboard(_ context.Context, d client.OnboardingData) error {
	f.lastOnboard = d
	return f.err
}

type testApp struct {
	*App
	auth    *fakeAuth
	recipes *fakeRecipes
	profile *fakeProfile
	out     *bytes.Buffer
}

func newTestApp(t *testing.T, input string) *testApp {
	t.Helper()
	ta := &testApp{
		auth:    &fakeAuth{},
		recipes: &fakeRecipes{},
		profile: &fakeProfile{},
		out:     &bytes.Buffer{},
	}
	ta.App = &App{
		authService:    ta.auth,
		recipeService:  ta.recipes,
		profileService: ta.profile,
		log:            logging.Nop(),
		reader:         bufio.NewReader(strings.NewReader(input)),
		out:            ta.out,
	}
	return ta
}

func stubSecret(t *testing.T, secret string) {
	t.Helper()
	orig := getSecret
	getSecret = func(io.Writer, string) ([]byte, error) { return []byte(secret), nil }
	t.Cleanup(func() { getSecret = orig })
}
