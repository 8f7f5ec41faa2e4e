package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/dysh/internal/common"
)

// Provider names the platform that issued an identity assertion.
type Provider string

const (
	ProviderApple  Provider = "apple"
	ProviderGoogle Provider = "google"
)

// Assertion is an opaque platform identity assertion handed to the backend
// for exchange. Email and FullName are only sent by Apple on first sign-in;
// AuthCode is Google's server auth code.
type Assertion struct {
	Provider      Provider
	IdentityToken string
	Email         string
	FullName      string
	AuthCode      string
}

// Authenticator is the remote auth endpoint.
type Authenticator interface {
	Exchange(ctx context.Context, a Assertion) (Credential, error)
	Refresh(ctx context.Context, refreshToken string) (Credential, error)
}

const maxAuthResponseSize = 1 << 20

// HTTPAuthenticator talks to the backend's /auth endpoints. Its requests are
// never authorized with the session's own access token.
type HTTPAuthenticator struct {
	baseURL string
	client  *http.Client
	now     func() time.Time
}

func NewHTTPAuthenticator(baseURL string, client *http.Client) *HTTPAuthenticator {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPAuthenticator{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		now:     time.Now,
	}
}

type appleSignIn struct {
	IdentityToken string `json:"identityToken"`
	Email         string `json:"email,omitempty"`
	FullName      string `json:"fullName,omitempty"`
}

type googleSignIn struct {
	IDToken     string `json:"idToken"`
	AccessToken string `json:"accessToken,omitempty"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

func (a *HTTPAuthenticator) Exchange(ctx context.Context, as Assertion) (Credential, error) {
	if as.IdentityToken == "" {
		return Credential{}, fmt.Errorf("%w: identity token is empty", common.ErrInvalidArgument)
	}

	switch as.Provider {
	case ProviderApple:
		return a.post(ctx, "/auth/apple", appleSignIn{
			IdentityToken: as.IdentityToken,
			Email:         as.Email,
			FullName:      as.FullName,
		})
	case ProviderGoogle:
		return a.post(ctx, "/auth/google", googleSignIn{
			IDToken:     as.IdentityToken,
			AccessToken: as.AuthCode,
		})
	default:
		return Credential{}, fmt.Errorf("%w: unknown provider %q", common.ErrInvalidArgument, as.Provider)
	}
}

func (a *HTTPAuthenticator) Refresh(ctx context.Context, refreshToken string) (Credential, error) {
	if refreshToken == "" {
		return Credential{}, fmt.Errorf("%w: refresh token is empty", common.ErrInvalidArgument)
	}
	return a.post(ctx, "/auth/refresh", refreshRequest{RefreshToken: refreshToken})
}

func (a *HTTPAuthenticator) post(ctx context.Context, path string, payload any) (Credential, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return Credential{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return Credential{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return Credential{}, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxAuthResponseSize))
	if err != nil {
		return Credential{}, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Credential{}, &RejectedError{
			StatusCode: resp.StatusCode,
			Message:    backendMessage(data),
		}
	}

	return parseGrant(data, a.now())
}

// backendMessage extracts the "message" field the backend puts on error
// bodies, falling back to "error".
func backendMessage(data []byte) string {
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
