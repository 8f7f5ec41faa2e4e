package session

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// User is the identity snapshot returned at sign-in. It is not refreshed
// independently of the token pair.
type User struct {
	ID                     string `json:"id"`
	Email                  string `json:"email"`
	Name                   string `json:"name,omitempty"`
	HasCompletedOnboarding bool   `json:"hasCompletedOnboarding"`
}

// Credential is the persisted identity state. An empty RefreshToken means the
// issuing flow provided none; expiry of the access token is then final.
type Credential struct {
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken,omitempty"`
	User         User      `json:"user"`
	ExpiresAt    time.Time `json:"expiresAt,omitzero"`
}

// Valid reports whether c can authorize a request.
func (c Credential) Valid() bool {
	return c.AccessToken != ""
}

// Refreshable reports whether c carries a refresh token.
func (c Credential) Refreshable() bool {
	return c.RefreshToken != ""
}

// Expired reports whether the known expiry has passed. Unknown expiry is
// never expired; the backend's 401 stays authoritative.
func (c Credential) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && !now.Before(c.ExpiresAt)
}

type grantResponse struct {
	Tokens *struct {
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
		TokenType    string `json:"tokenType"`
		ExpiresIn    int64  `json:"expiresIn"`
	} `json:"tokens"`
	User *struct {
		ID                     string `json:"id"`
		Email                  string `json:"email"`
		Name                   string `json:"name"`
		HasCompletedOnboarding bool   `json:"hasCompletedOnboarding"`
	} `json:"user"`
}

// ParseGrant validates a sign-in or refresh response body and converts it to
// a Credential. The user name defaults to the email.
func ParseGrant(data []byte) (Credential, error) {
	return parseGrant(data, time.Now())
}

func parseGrant(data []byte, now time.Time) (Credential, error) {
	var g grantResponse
	if err := json.Unmarshal(data, &g); err != nil {
		return Credential{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if g.Tokens == nil || g.Tokens.AccessToken == "" {
		return Credential{}, fmt.Errorf("%w: no access token", ErrMalformedResponse)
	}
	if g.User == nil || g.User.ID == "" {
		return Credential{}, fmt.Errorf("%w: no user", ErrMalformedResponse)
	}

	c := Credential{
		AccessToken:  g.Tokens.AccessToken,
		RefreshToken: g.Tokens.RefreshToken,
		User: User{
			ID:                     g.User.ID,
			Email:                  g.User.Email,
			Name:                   g.User.Name,
			HasCompletedOnboarding: g.User.HasCompletedOnboarding,
		},
	}
	if c.User.Name == "" {
		c.User.Name = c.User.Email
	}
	if g.Tokens.ExpiresIn > 0 {
		c.ExpiresAt = now.Add(time.Duration(g.Tokens.ExpiresIn) * time.Second).UTC()
	} else {
		c.ExpiresAt = accessTokenExpiry(c.AccessToken)
	}
	return c, nil
}

// accessTokenExpiry reads the exp claim of a JWT access token without
// verifying it. Opaque tokens yield the zero time.
func accessTokenExpiry(token string) time.Time {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}
	}
	if claims.ExpiresAt == nil {
		return time.Time{}
	}
	return claims.ExpiresAt.UTC()
}

func encodeCredential(c Credential) (string, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeCredential(value string) (Credential, error) {
	var c Credential
	if err := json.Unmarshal([]byte(value), &c); err != nil {
		return Credential{}, err
	}
	if !c.Valid() {
		return Credential{}, fmt.Errorf("stored credential has no access token")
	}
	if c.ExpiresAt.IsZero() {
		c.ExpiresAt = accessTokenExpiry(c.AccessToken)
	}
	return c, nil
}
