// Package services contains application services for the dysh client.
// This file defines the authentication service: platform sign-in, sign-out,
// session status and onboarding state.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/dysh/internal/client/client"
	"github.com/dmitrijs2005/dysh/internal/client/session"
	"github.com/dmitrijs2005/dysh/internal/common"
	"github.com/dmitrijs2005/dysh/internal/logging"
)

// SessionManager is the part of *session.Session the services drive.
type SessionManager interface {
	SignIn(ctx context.Context, a session.Assertion) (session.Credential, error)
	SignOut(ctx context.Context)
	Current(ctx context.Context) (session.Credential, bool)
	State() session.State
}

// StampReader reports when a stored key was last written.
// *securestore.Store satisfies it.
type StampReader interface {
	UpdatedAt(ctx context.Context, key string) (time.Time, bool, error)
}

// AuthStatus is a snapshot of the local session.
type AuthStatus struct {
	SignedIn  bool
	State     session.State
	User      session.User
	ExpiresAt time.Time
	StoredAt  time.Time
	Expired   bool
}

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - SignInWithApple / SignInWithGoogle: exchange a platform identity token
//     for a session and persist it.
//   - SignOut: drop the local session; never fails.
//   - Status: describe the local session without touching the network.
//   - OnboardingStatus: ask the backend whether onboarding is complete.
type AuthService interface {
	SignInWithApple(ctx context.Context, identityToken, email, fullName string) (session.User, error)
	SignInWithGoogle(ctx context.Context, idToken, authCode string) (session.User, error)
	SignOut(ctx context.Context)
	Status(ctx context.Context) (AuthStatus, error)
	OnboardingStatus(ctx context.Context) (bool, error)
}

type authService struct {
	session SessionManager
	client  client.Client
	stamps  StampReader
	log     logging.Logger
	now     func() time.Time
}

// NewAuthService constructs an AuthService. stamps may be nil when the store
// keeps no write times.
func NewAuthService(s SessionManager, c client.Client, stamps StampReader, log logging.Logger) AuthService {
	if log == nil {
		log = logging.Nop()
	}
	return &authService{session: s, client: c, stamps: stamps, log: log, now: time.Now}
}

func (a *authService) SignInWithApple(ctx context.Context, identityToken, email, fullName string) (session.User, error) {
	return a.signIn(ctx, session.Assertion{
		Provider:      session.ProviderApple,
		IdentityToken: identityToken,
		Email:         email,
		FullName:      fullName,
	})
}

func (a *authService) SignInWithGoogle(ctx context.Context, idToken, authCode string) (session.User, error) {
	return a.signIn(ctx, session.Assertion{
		Provider:      session.ProviderGoogle,
		IdentityToken: idToken,
		AuthCode:      authCode,
	})
}

func (a *authService) signIn(ctx context.Context, as session.Assertion) (session.User, error) {
	cred, err := a.session.SignIn(ctx, as)
	if err != nil {
		return session.User{}, fmt.Errorf("%s sign-in error: %w", as.Provider, err)
	}
	return cred.User, nil
}

func (a *authService) SignOut(ctx context.Context) {
	a.session.SignOut(ctx)
}

func (a *authService) Status(ctx context.Context) (AuthStatus, error) {
	cred, ok := a.session.Current(ctx)
	st := AuthStatus{SignedIn: ok, State: a.session.State()}
	if !ok {
		return st, nil
	}

	st.User = cred.User
	st.ExpiresAt = cred.ExpiresAt
	st.Expired = cred.Expired(a.now())

	if a.stamps != nil {
		at, found, err := a.stamps.UpdatedAt(ctx, common.CredentialStorageKey)
		if err != nil {
			return st, fmt.Errorf("read credential timestamp: %w", err)
		}
		if found {
			st.StoredAt = at
		}
	}
	return st, nil
}

// OnboardingStatus prefers the backend's answer and falls back to the
// sign-in snapshot when the backend cannot be reached.
func (a *authService) OnboardingStatus(ctx context.Context) (bool, error) {
	cred, ok := a.session.Current(ctx)
	if !ok {
		return false, session.ErrNotAuthenticated
	}

	profile, err := a.client.AuthProfile(ctx)
	switch {
	case err == nil:
		return profile.HasCompletedOnboarding, nil
	case errors.Is(err, client.ErrUnavailable):
		a.log.Warn(ctx, "onboarding status from snapshot", "error", err)
		return cred.User.HasCompletedOnboarding, nil
	default:
		return false, err
	}
}
