package services

import (
	"context"
	"time"

	"github.com/dmitrijs2005/dysh/internal/client/client"
	"github.com/dmitrijs2005/dysh/internal/client/session"
)

type fakeSession struct {
	SignInRet  session.Credential
	SignInErr  error
	Cred       session.Credential
	HasCred    bool
	StateRet   session.State
	LastAssert session.Assertion
	SignOuts   int
}

func (f *fakeSession) SignIn(_ context.Context, a session.Assertion) (session.Credential, error) {
	f.LastAssert = a
	if f.SignInErr != nil {
		return session.Credential{}, f.SignInErr
	}
	f.Cred, f.HasCred = f.SignInRet, true
	return f.SignInRet, nil
}

func (f *fakeSession) SignOut(context.Context) {
	f.SignOuts++
	f.Cred, f.HasCred = session.Credential{}, false
}

func (f *fakeSession) Current(context.Context) (session.Credential, bool) { return f.Cred, f.HasCred }
func (f *fakeSession) State() session.State                              { return f.StateRet }

type fakeStamps struct {
	At  time.Time
	OK  bool
	Err error
}

func (f fakeStamps) UpdatedAt(context.Context, string) (time.Time, bool, error) {
	return f.At, f.OK, f.Err
}

// fakeClient implements client.Client and records the arguments it got.
type fakeClient struct {
	Err error

	AuthProfileRet  client.AuthProfile
	AuthProfileErr  error
	ExploreRet      client.ExploreResponse
	RecipesRet      []client.Recipe
	DailyRet        client.DailyRecipesResponse
	DailyByCatRet   []client.DailyRecipe
	GenerateRet     client.RecipeResponse
	PrefsRet        []string
	ProfileRet      client.UserProfile
	NextMealRet     client.NextMeal
	TestimonialsRet []client.Testimonial

	LastCategory string
	LastLimit    int
	LastOffset   int
	LastID       string
	LastCuisine  string
	LastGenerate client.RecipeGenerationRequest
	LastOnboard  client.OnboardingData
	Calls        []string
}

var _ client.Client = (*fakeClient)(nil)

func (f *fakeClient) called(name string) { f.Calls = append(f.Calls, name) }

func (f *fakeClient) Testimonials(context.Context) ([]client.Testimonial, error) {
	f.called("Testimonials")
	return f.TestimonialsRet, f.Err
}

func (f *fakeClient) Onboard(_ context.Context, d client.OnboardingData) error {
	f.called("Onboard")
	f.LastOnboard = d
	return f.Err
}

func (f *fakeClient) GenerateRecipes(_ context.Context, r client.RecipeGenerationRequest) (client.RecipeResponse, error) {
	f.called("GenerateRecipes")
	f.LastGenerate = r
	return f.GenerateRet, f.Err
}

func (f *fakeClient) AuthProfile(context.Context) (client.AuthProfile, error) {
	f.called("AuthProfile")
	return f.AuthProfileRet, f.AuthProfileErr
}

func (f *fakeClient) Recipe(_ context.Context, id string) (client.Recipe, error) {
	f.called("Recipe")
	f.LastID = id
	return client.Recipe{ID: id}, f.Err
}

func (f *fakeClient) UserProfile(context.Context) (client.UserProfile, error) {
	f.called("UserProfile")
	return f.ProfileRet, f.Err
}

func (f *fakeClient) CuisinePreferences(context.Context) ([]string, error) {
	f.called("CuisinePreferences")
	return f.PrefsRet, f.Err
}

func (f *fakeClient) AddCuisinePreference(_ context.Context, c string) ([]string, error) {
	f.called("AddCuisinePreference")
	f.LastCuisine = c
	return f.PrefsRet, f.Err
}

func (f *fakeClient) RemoveCuisinePreference(_ context.Context, c string) ([]string, error) {
	f.called("RemoveCuisinePreference")
	f.LastCuisine = c
	return f.PrefsRet, f.Err
}

func (f *fakeClient) NextMeal(context.Context) (client.NextMeal, error) {
	f.called("NextMeal")
	return f.NextMealRet, f.Err
}

func (f *fakeClient) CategoryRecipes(_ context.Context, category string, limit int) ([]client.Recipe, error) {
	f.called("CategoryRecipes")
	f.LastCategory, f.LastLimit = category, limit
	return f.RecipesRet, f.Err
}

func (f *fakeClient) Explore(_ context.Context, category string, limit int) (client.ExploreResponse, error) {
	f.called("Explore")
	f.LastCategory, f.LastLimit = category, limit
	return f.ExploreRet, f.Err
}

func (f *fakeClient) LikeRecipe(_ context.Context, id string) error {
	f.called("LikeRecipe")
	f.LastID = id
	return f.Err
}

func (f *fakeClient) UnlikeRecipe(_ context.Context, id string) error {
	f.called("UnlikeRecipe")
	f.LastID = id
	return f.Err
}

func (f *fakeClient) Cookbook(_ context.Context, limit, offset int) ([]client.Recipe, error) {
	f.called("Cookbook")
	f.LastLimit, f.LastOffset = limit, offset
	return f.RecipesRet, f.Err
}

func (f *fakeClient) DailyRecipes(_ context.Context, limit, offset int) (client.DailyRecipesResponse, error) {
	f.called("DailyRecipes")
	f.LastLimit, f.LastOffset = limit, offset
	return f.DailyRet, f.Err
}

func (f *fakeClient) DailyRecipesByCategory(_ context.Context, category string) ([]client.DailyRecipe, error) {
	f.called("DailyRecipesByCategory")
	f.LastCategory = category
	return f.DailyByCatRet, f.Err
}

func (f *fakeClient) GenerateDailyRecipes(context.Context) (client.GenerateDailyResult, error) {
	f.called("GenerateDailyRecipes")
	return client.GenerateDailyResult{RecipesGenerated: 3}, f.Err
}
