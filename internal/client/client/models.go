package client

// Recipe is the card-level recipe shape shared by explore, cookbook and
// category listings.
type Recipe struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Duration     string   `json:"duration"`
	Calories     string   `json:"calories"`
	Rating       string   `json:"rating"`
	ImageURL     string   `json:"imageUrl"`
	Ingredients  []string `json:"ingredients,omitempty"`
	Instructions []string `json:"instructions,omitempty"`
	ProTips      []string `json:"proTips,omitempty"`
	Country      string   `json:"country,omitempty"`
	IsLiked      bool     `json:"isLiked,omitempty"`
}

type RecipeList struct {
	Recipes []Recipe `json:"recipes"`
}

type ExploreResponse struct {
	Recipes  []Recipe `json:"recipes"`
	Category string   `json:"category"`
}

type UserProfile struct {
	IsPro    bool   `json:"isPro"`
	UserID   string `json:"userId"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
}

type CuisinePreferences struct {
	Preferences []string `json:"preferences"`
}

type NextMeal struct {
	NextMealType string `json:"nextMealType"`
	MinutesUntil int    `json:"minutesUntil"`
	DisplayText  string `json:"displayText"`
}

type DailyRecipe struct {
	ID              string `json:"id"`
	Category        string `json:"category"`
	GeneratedAt     string `json:"generatedAt"`
	GeneratedDate   string `json:"generatedDate"`
	Recipe          Recipe `json:"recipe"`
	LocationName    string `json:"locationName"`
	LocationCountry string `json:"locationCountry"`
}

type DailyRecipesResponse struct {
	Recipes    []DailyRecipe `json:"recipes"`
	TotalCount int           `json:"totalCount"`
	Limit      int           `json:"limit"`
	Offset     int           `json:"offset"`
}

type GenerateDailyResult struct {
	Message          string `json:"message"`
	RecipesGenerated int    `json:"recipesGenerated"`
}

type LikeResult struct {
	Success bool `json:"success"`
}

type Location struct {
	Latitude          *float64 `json:"latitude,omitempty"`
	Longitude         *float64 `json:"longitude,omitempty"`
	Region            string   `json:"region,omitempty"`
	Country           string   `json:"country,omitempty"`
	CountryCode       string   `json:"country_code,omitempty"`
	PermissionGranted bool     `json:"permission_granted"`
}

// Subscription plans accepted by onboarding.
const (
	PlanYearly  = "yearly"
	PlanMonthly = "monthly"
	PlanSkip    = "skip"
)

type OnboardingData struct {
	DietaryPreference string    `json:"dietaryPreference"`
	Location          *Location `json:"location,omitempty"`
	Ingredients       []string  `json:"ingredients"`
	PreferredServings int       `json:"preferredServings"`
	SubscriptionPlan  string    `json:"subscriptionPlan,omitempty"`
	OnboardingVersion string    `json:"onboardingVersion,omitempty"`
}

// RecipeGenerationRequest asks the backend for fresh recipes. Country
// overrides the cuisine inferred from the user's location.
type RecipeGenerationRequest struct {
	Ingredients []string `json:"ingredients"`
	Country     string   `json:"country,omitempty"`
}

// Meal is one generated recipe. Image is base64 encoded.
type Meal struct {
	Name              string   `json:"name"`
	Image             string   `json:"image"`
	EstimatedCookTime string   `json:"estimatedCookTime"`
	Calories          string   `json:"calories"`
	Rating            float64  `json:"rating"`
	Ingredients       []string `json:"ingredients"`
	Instructions      []string `json:"instructions"`
	ProTips           []string `json:"proTips"`
}

type RecipeResponse struct {
	Meals    []Meal `json:"meals"`
	Location string `json:"location"`
	Provider string `json:"provider"`
}

type Testimonial struct {
	Title    string `json:"title"`
	Text     string `json:"text"`
	UserName string `json:"userName"`
}

// AuthProfile is the backend's view of the signed-in account.
type AuthProfile struct {
	ID                     string `json:"id"`
	Email                  string `json:"email"`
	Name                   string `json:"name"`
	HasCompletedOnboarding bool   `json:"hasCompletedOnboarding"`
}
