package services

import (
	"context"

	"github.com/dmitrijs2005/dysh/internal/client/client"
)

// ProfileService covers the user's profile, cuisine preferences and
// onboarding answers.
type ProfileService interface {
	Profile(ctx context.Context) (client.UserProfile, error)
	Preferences(ctx context.Context) ([]string, error)
	AddPreference(ctx context.Context, cuisine string) ([]string, error)
	RemovePreference(ctx context.Context, cuisine string) ([]string, error)
	NextMeal(ctx context.Context) (client.NextMeal, error)
	Onboard(ctx context.Context, data client.OnboardingData) error
}

type profileService struct {
	client client.Client
}

func NewProfileService(c client.Client) ProfileService {
	return &profileService{client: c}
}

func (p *profileService) Profile(ctx context.Context) (client.UserProfile, error) {
	return p.client.UserProfile(ctx)
}

func (p *profileService) Preferences(ctx context.Context) ([]string, error) {
	return p.client.CuisinePreferences(ctx)
}

func (p *profileService) AddPreference(ctx context.Context, cuisine string) ([]string, error) {
	return p.client.AddCuisinePreference(ctx, normalize(cuisine))
}

func (p *profileService) RemovePreference(ctx context.Context, cuisine string) ([]string, error) {
	return p.client.RemoveCuisinePreference(ctx, normalize(cuisine))
}

func (p *profileService) NextMeal(ctx context.Context) (client.NextMeal, error) {
	return p.client.NextMeal(ctx)
}

func (p *profileService) Onboard(ctx context.Context, data client.OnboardingData) error {
	data.DietaryPreference = normalize(data.DietaryPreference)
	return p.client.Onboard(ctx, data)
}
