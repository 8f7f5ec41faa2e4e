package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/dysh/internal/client/session"
	"github.com/dmitrijs2005/dysh/internal/logging"
)

// Client is the dysh backend API.
type Client interface {
	Testimonials(ctx context.Context) ([]Testimonial, error)
	Onboard(ctx context.Context, data OnboardingData) error
	GenerateRecipes(ctx context.Context, r RecipeGenerationRequest) (RecipeResponse, error)
	AuthProfile(ctx context.Context) (AuthProfile, error)
	Recipe(ctx context.Context, id string) (Recipe, error)

	UserProfile(ctx context.Context) (UserProfile, error)
	CuisinePreferences(ctx context.Context) ([]string, error)
	AddCuisinePreference(ctx context.Context, cuisine string) ([]string, error)
	RemoveCuisinePreference(ctx context.Context, cuisine string) ([]string, error)
	NextMeal(ctx context.Context) (NextMeal, error)

	CategoryRecipes(ctx context.Context, category string, limit int) ([]Recipe, error)
	Explore(ctx context.Context, category string, limit int) (ExploreResponse, error)
	LikeRecipe(ctx context.Context, id string) error
	UnlikeRecipe(ctx context.Context, id string) error
	Cookbook(ctx context.Context, limit, offset int) ([]Recipe, error)

	DailyRecipes(ctx context.Context, limit, offset int) (DailyRecipesResponse, error)
	DailyRecipesByCategory(ctx context.Context, category string) ([]DailyRecipe, error)
	GenerateDailyRecipes(ctx context.Context) (GenerateDailyResult, error)
}

// Authorizer performs requests on behalf of the signed-in user.
// *session.Session satisfies it.
type Authorizer interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

// generated meals carry inline base64 images
const maxResponseSize = 32 << 20

type HTTPClient struct {
	baseURL string
	auth    Authorizer
	public  session.Doer
	log     logging.Logger
}

var _ Client = (*HTTPClient)(nil)

func NewHTTPClient(baseURL string, auth Authorizer, public session.Doer, log logging.Logger) *HTTPClient {
	if public == nil {
		public = http.DefaultClient
	}
	if log == nil {
		log = logging.Nop()
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		auth:    auth,
		public:  public,
		log:     log,
	}
}

func (c *HTTPClient) Testimonials(ctx context.Context) ([]Testimonial, error) {
	var raw json.RawMessage
	if err := c.call(ctx, http.MethodGet, "/testimonials", nil, nil, &raw, false); err != nil {
		return nil, err
	}

	// bare array or {"testimonials": [...]}
	var list []Testimonial
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, nil
	}
	var wrapped struct {
		Testimonials []Testimonial `json:"testimonials"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, fmt.Errorf("decode testimonials: %w", err)
	}
	return wrapped.Testimonials, nil
}

func (c *HTTPClient) Onboard(ctx context.Context, data OnboardingData) error {
	if data.DietaryPreference == "" {
		return fmt.Errorf("%w: dietary preference is required", ErrInvalidArgument)
	}
	if data.PreferredServings <= 0 {
		return fmt.Errorf("%w: preferred servings must be positive", ErrInvalidArgument)
	}
	switch data.SubscriptionPlan {
	case "", PlanYearly, PlanMonthly, PlanSkip:
	default:
		return fmt.Errorf("%w: unknown subscription plan %q", ErrInvalidArgument, data.SubscriptionPlan)
	}
	if data.Ingredients == nil {
		data.Ingredients = []string{}
	}
	return c.call(ctx, http.MethodPost, "/user/onboard", nil, data, nil, true)
}

func (c *HTTPClient) GenerateRecipes(ctx context.Context, r RecipeGenerationRequest) (RecipeResponse, error) {
	ingredients := make([]string, 0, len(r.Ingredients))
	for _, in := range r.Ingredients {
		if in = strings.TrimSpace(in); in != "" {
			ingredients = append(ingredients, in)
		}
	}
	if len(ingredients) == 0 {
		return RecipeResponse{}, fmt.Errorf("%w: ingredients are required for recipe generation", ErrInvalidArgument)
	}
	r.Ingredients = ingredients

	var out RecipeResponse
	err := c.call(ctx, http.MethodPost, "/recipes/generate", nil, r, &out, true)
	return out, err
}

func (c *HTTPClient) AuthProfile(ctx context.Context) (AuthProfile, error) {
	var out AuthProfile
	err := c.call(ctx, http.MethodGet, "/auth/profile", nil, nil, &out, true)
	return out, err
}

func (c *HTTPClient) Recipe(ctx context.Context, id string) (Recipe, error) {
	if err := requireID("recipe id", id); err != nil {
		return Recipe{}, err
	}
	var out Recipe
	err := c.call(ctx, http.MethodGet, "/recipes/"+url.PathEscape(id), nil, nil, &out, true)
	return out, err
}

func (c *HTTPClient) UserProfile(ctx context.Context) (UserProfile, error) {
	var out UserProfile
	err := c.call(ctx, http.MethodGet, "/api/user/profile", nil, nil, &out, true)
	return out, err
}

func (c *HTTPClient) CuisinePreferences(ctx context.Context) ([]string, error) {
	var out CuisinePreferences
	err := c.call(ctx, http.MethodGet, "/api/user/cuisine-preferences", nil, nil, &out, true)
	return out.Preferences, err
}

func (c *HTTPClient) AddCuisinePreference(ctx context.Context, cuisine string) ([]string, error) {
	if err := requireID("cuisine", cuisine); err != nil {
		return nil, err
	}
	in := struct {
		Cuisine string `json:"cuisine"`
	}{Cuisine: cuisine}

	var out CuisinePreferences
	err := c.call(ctx, http.MethodPost, "/api/user/cuisine-preferences", nil, in, &out, true)
	return out.Preferences, err
}

func (c *HTTPClient) RemoveCuisinePreference(ctx context.Context, cuisine string) ([]string, error) {
	if err := requireID("cuisine", cuisine); err != nil {
		return nil, err
	}
	var out CuisinePreferences
	err := c.call(ctx, http.MethodDelete, "/api/user/cuisine-preferences/"+url.PathEscape(cuisine), nil, nil, &out, true)
	return out.Preferences, err
}

func (c *HTTPClient) NextMeal(ctx context.Context) (NextMeal, error) {
	var out NextMeal
	err := c.call(ctx, http.MethodGet, "/api/user/next-meal", nil, nil, &out, true)
	return out, err
}

func (c *HTTPClient) CategoryRecipes(ctx context.Context, category string, limit int) ([]Recipe, error) {
	if err := validateCategory("recipe", category, RecipeCategories); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultCategoryLimit
	}
	var out RecipeList
	err := c.call(ctx, http.MethodGet, "/recipes/"+category, page(limit, -1), nil, &out, true)
	return out.Recipes, err
}

func (c *HTTPClient) Explore(ctx context.Context, category string, limit int) (ExploreResponse, error) {
	if err := validateCategory("explore", category, ExploreCategories); err != nil {
		return ExploreResponse{}, err
	}
	if limit <= 0 {
		limit = DefaultExploreLimit
	}
	var out ExploreResponse
	err := c.call(ctx, http.MethodGet, "/api/explore/"+category, page(limit, -1), nil, &out, true)
	return out, err
}

func (c *HTTPClient) LikeRecipe(ctx context.Context, id string) error {
	return c.like(ctx, http.MethodPost, id)
}

func (c *HTTPClient) UnlikeRecipe(ctx context.Context, id string) error {
	return c.like(ctx, http.MethodDelete, id)
}

func (c *HTTPClient) like(ctx context.Context, method, id string) error {
	if err := requireID("recipe id", id); err != nil {
		return err
	}
	var out LikeResult
	if err := c.call(ctx, method, "/api/explore/"+url.PathEscape(id)+"/like", nil, nil, &out, true); err != nil {
		return err
	}
	if !out.Success {
		return &APIError{StatusCode: http.StatusOK, Message: "like was not applied"}
	}
	return nil
}

func (c *HTTPClient) Cookbook(ctx context.Context, limit, offset int) ([]Recipe, error) {
	var out RecipeList
	err := c.call(ctx, http.MethodGet, "/api/cookbook", pageOrDefault(limit, offset), nil, &out, true)
	return out.Recipes, err
}

func (c *HTTPClient) DailyRecipes(ctx context.Context, limit, offset int) (DailyRecipesResponse, error) {
	var out DailyRecipesResponse
	err := c.call(ctx, http.MethodGet, "/api/daily-recipes", pageOrDefault(limit, offset), nil, &out, true)
	return out, err
}

func (c *HTTPClient) DailyRecipesByCategory(ctx context.Context, category string) ([]DailyRecipe, error) {
	if err := requireID("daily category", category); err != nil {
		return nil, err
	}
	var out []DailyRecipe
	err := c.call(ctx, http.MethodGet, "/api/daily-recipes/category/"+url.PathEscape(category), nil, nil, &out, true)
	return out, err
}

func (c *HTTPClient) GenerateDailyRecipes(ctx context.Context) (GenerateDailyResult, error) {
	var out GenerateDailyResult
	err := c.call(ctx, http.MethodPost, "/api/daily-recipes/generate", nil, nil, &out, true)
	return out, err
}

// call performs one backend round trip. Protected calls go through the
// Authorizer, public ones through the plain client.
func (c *HTTPClient) call(ctx context.Context, method, path string, query url.Values, in, out any, protected bool) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	var resp *http.Response
	if protected {
		resp, err = c.auth.Do(ctx, req)
	} else {
		resp, err = c.public.Do(req)
	}
	if err != nil {
		return classify(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("%w: read response: %w", ErrUnavailable, err)
	}

	c.log.Debug(ctx, "backend call", "method", method, "path", path, "status", resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(data),
			Body:       data,
		}
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// classify keeps session and cancellation errors as they are and marks
// everything else as a network failure.
func classify(err error) error {
	switch {
	case errors.Is(err, session.ErrNotAuthenticated),
		errors.Is(err, session.ErrAuthExpired),
		errors.Is(err, context.Canceled):
		return err
	default:
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
}

func errorMessage(data []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	if body.Message != "" {
		return body.Message
	}
	return body.Error
}

func requireID(what, v string) error {
	if strings.TrimSpace(v) == "" {
		return fmt.Errorf("%w: %s is empty", ErrInvalidArgument, what)
	}
	return nil
}

// page builds limit/offset query values; a negative offset is omitted.
func page(limit, offset int) url.Values {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	if offset >= 0 {
		q.Set("offset", strconv.Itoa(offset))
	}
	return q
}

func pageOrDefault(limit, offset int) url.Values {
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	if offset < 0 {
		offset = 0
	}
	return page(limit, offset)
}
