package session

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/dmitrijs2005/dysh/internal/common"
	"github.com/dmitrijs2005/dysh/internal/logging"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// State is the lifecycle phase of a Session.
type State int

const (
	StateUninitialized State = iota
	StateSignedOut
	StateSignedIn
	StateRefreshing
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateSignedOut:
		return "signed out"
	case StateSignedIn:
		return "signed in"
	case StateRefreshing:
		return "refreshing"
	default:
		return "unknown"
	}
}

// Doer issues HTTP requests. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

const defaultRefreshTimeout = 15 * time.Second

// Session is the single owner of the signed-in Credential.
type Session struct {
	store          Store
	auth           Authenticator
	doer           Doer
	log            logging.Logger
	metrics        Recorder
	refreshTimeout time.Duration

	mu    sync.Mutex
	cred  *Credential
	state State
	// gen changes whenever cred is replaced or cleared.
	gen uint64

	refreshes singleflight.Group
}

type Option func(*Session)

func WithLogger(l logging.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

func WithRecorder(r Recorder) Option {
	return func(s *Session) {
		if r != nil {
			s.metrics = r
		}
	}
}

// WithRefreshTimeout bounds the shared refresh exchange. Zero disables the
// bound.
func WithRefreshTimeout(d time.Duration) Option {
	return func(s *Session) {
		s.refreshTimeout = d
	}
}

func New(store Store, auth Authenticator, doer Doer, opts ...Option) *Session {
	if doer == nil {
		doer = http.DefaultClient
	}
	s := &Session{
		store:          store,
		auth:           auth,
		doer:           doer,
		log:            logging.Nop(),
		metrics:        NopRecorder{},
		refreshTimeout: defaultRefreshTimeout,
		state:          StateUninitialized,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Do sends req with the current access token. On 401 it refreshes the
// Credential once and retries once, returning the retry's result as is.
//
// Do consumes req.Body. The caller owns the returned response body.
func (s *Session) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	cred, ok := s.credential(ctx)
	if !ok {
		closeBody(req.Body)
		s.metrics.Request(OutcomeNotAuthenticated)
		return nil, ErrNotAuthenticated
	}

	getBody, err := replayableBody(req)
	if err != nil {
		return nil, err
	}

	requestID := req.Header.Get(common.RequestIDHeaderName)
	if requestID == "" {
		requestID = uuid.NewString()
	}

	resp, err := s.send(ctx, req, getBody, cred.AccessToken, requestID)
	if err != nil {
		s.metrics.Request(OutcomeTransportError)
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized {
		s.metrics.Request(OutcomeOK)
		return resp, nil
	}
	drain(resp.Body)

	s.log.Info(ctx, "access token rejected", "request_id", requestID, "path", req.URL.Path)

	fresh, err := s.refresh(ctx, cred)
	if err != nil {
		if errors.Is(err, ErrAuthExpired) {
			s.metrics.Request(OutcomeAuthExpired)
		}
		return nil, err
	}

	s.metrics.Request(OutcomeRetried)
	return s.send(ctx, req, getBody, fresh.AccessToken, requestID)
}

// SignIn exchanges a platform assertion for a Credential, persists it and
// makes it current. A previous Credential is replaced.
func (s *Session) SignIn(ctx context.Context, a Assertion) (Credential, error) {
	cred, err := s.auth.Exchange(ctx, a)
	if err != nil {
		s.log.Warn(ctx, "sign-in failed", "provider", string(a.Provider), "error", err)
		return Credential{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.persistLocked(ctx, cred); err != nil {
		return Credential{}, err
	}
	s.log.Info(ctx, "signed in", "provider", string(a.Provider), "user_id", cred.User.ID)
	return cred, nil
}

// SignOut clears the Credential from memory and storage. It never fails;
// storage errors are logged.
func (s *Session) SignOut(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked(ctx, SignOutExplicit)
}

// IsAuthenticated reports whether storage holds a usable Credential.
func (s *Session) IsAuthenticated(ctx context.Context) bool {
	_, ok := s.readStore(ctx)
	return ok
}

// CurrentUser returns the user snapshot from storage.
func (s *Session) CurrentUser(ctx context.Context) (User, bool) {
	c, ok := s.readStore(ctx)
	if !ok {
		return User{}, false
	}
	return c.User, true
}

// Current returns the Credential in effect, loading it from storage when
// memory is empty.
func (s *Session) Current(ctx context.Context) (Credential, bool) {
	return s.credential(ctx)
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Expiry returns the expiry of the in-memory access token, zero when unknown
// or signed out.
func (s *Session) Expiry() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cred == nil {
		return time.Time{}
	}
	return s.cred.ExpiresAt
}

// credential returns the in-memory Credential, loading it from storage on
// first use.
func (s *Session) credential(ctx context.Context) (Credential, bool) {
	s.mu.Lock()
	if s.cred != nil {
		c := *s.cred
		s.mu.Unlock()
		return c, true
	}
	gen := s.gen
	s.mu.Unlock()

	loaded, ok := s.readStore(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.gen != gen {
		// signed in or out while reading
		if s.cred == nil {
			return Credential{}, false
		}
		return *s.cred, true
	}
	if !ok {
		s.state = StateSignedOut
		return Credential{}, false
	}
	s.cred = &loaded
	s.gen++
	s.state = StateSignedIn
	return loaded, true
}

func (s *Session) readStore(ctx context.Context) (Credential, bool) {
	value, found, err := s.store.Get(ctx, common.CredentialStorageKey)
	if err != nil {
		s.log.Warn(ctx, "credential storage read failed", "error", err)
		return Credential{}, false
	}
	if !found {
		return Credential{}, false
	}
	c, err := decodeCredential(value)
	if err != nil {
		s.log.Warn(ctx, "stored credential is unreadable", "error", err)
		return Credential{}, false
	}
	return c, true
}

// refresh returns a Credential to retry with after used was rejected.
func (s *Session) refresh(ctx context.Context, used Credential) (Credential, error) {
	s.mu.Lock()
	current := s.cred
	if current == nil {
		s.mu.Unlock()
		return Credential{}, ErrAuthExpired
	}
	if current.AccessToken != used.AccessToken {
		c := *current
		s.mu.Unlock()
		s.metrics.Refresh(RefreshCoalesced)
		return c, nil
	}
	gen := s.gen
	if !current.Refreshable() {
		s.signOutIfCurrentLocked(ctx, gen, SignOutNoRefresh)
		s.mu.Unlock()
		s.metrics.Refresh(RefreshNoToken)
		return Credential{}, ErrAuthExpired
	}
	refreshToken := current.RefreshToken
	s.state = StateRefreshing
	s.mu.Unlock()

	ch := s.refreshes.DoChan(refreshToken, func() (any, error) {
		return s.exchangeRefresh(context.WithoutCancel(ctx), gen, refreshToken)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return Credential{}, res.Err
		}
		return res.Val.(Credential), nil
	case <-ctx.Done():
		return Credential{}, ctx.Err()
	}
}

// exchangeRefresh runs once per refresh token, shared by every waiter.
func (s *Session) exchangeRefresh(ctx context.Context, gen uint64, refreshToken string) (Credential, error) {
	s.mu.Lock()
	if s.gen != gen {
		// rotated or cleared by an earlier flight
		defer s.mu.Unlock()
		if s.cred == nil {
			return Credential{}, ErrAuthExpired
		}
		s.metrics.Refresh(RefreshCoalesced)
		return *s.cred, nil
	}
	s.mu.Unlock()

	if s.refreshTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.refreshTimeout)
		defer cancel()
	}

	s.log.Info(ctx, "refreshing session")
	fresh, err := s.auth.Refresh(ctx, refreshToken)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.gen != gen {
		s.log.Info(ctx, "session changed during refresh, discarding result")
		if s.cred == nil {
			return Credential{}, ErrAuthExpired
		}
		return *s.cred, nil
	}

	if err == nil {
		err = s.persistLocked(ctx, fresh)
	}
	if err != nil {
		s.log.Warn(ctx, "session refresh failed", "error", err)
		s.metrics.Refresh(RefreshFailure)
		s.signOutIfCurrentLocked(ctx, gen, SignOutRefreshFailed)
		return Credential{}, ErrAuthExpired
	}

	s.metrics.Refresh(RefreshSuccess)
	s.log.Info(ctx, "session refreshed", "user_id", fresh.User.ID)
	return fresh, nil
}

// persistLocked writes c to storage and makes it current. Memory is left
// untouched when the write fails.
func (s *Session) persistLocked(ctx context.Context, c Credential) error {
	value, err := encodeCredential(c)
	if err != nil {
		return err
	}
	if err := s.store.Set(ctx, common.CredentialStorageKey, value); err != nil {
		return err
	}
	s.cred = &c
	s.gen++
	s.state = StateSignedIn
	return nil
}

func (s *Session) signOutIfCurrentLocked(ctx context.Context, gen uint64, reason string) {
	if s.gen != gen {
		return
	}
	s.clearLocked(ctx, reason)
}

func (s *Session) clearLocked(ctx context.Context, reason string) {
	s.cred = nil
	s.gen++
	s.state = StateSignedOut
	if err := s.store.Remove(ctx, common.CredentialStorageKey); err != nil {
		s.log.Warn(ctx, "credential storage clear failed", "error", err)
	}
	s.metrics.SignOut(reason)
	s.log.Info(ctx, "signed out", "reason", reason)
}

func (s *Session) send(ctx context.Context, orig *http.Request, getBody func() (io.ReadCloser, error), token, requestID string) (*http.Response, error) {
	req := orig.Clone(ctx)
	req.Body = nil
	req.GetBody = getBody
	if getBody != nil {
		body, err := getBody()
		if err != nil {
			return nil, err
		}
		req.Body = body
	}
	req.Header.Set(common.AuthorizationHeaderName, common.BearerScheme+" "+token)
	req.Header.Set(common.RequestIDHeaderName, requestID)
	return s.doer.Do(req)
}

// replayableBody returns a body factory usable for both attempts. A nil
// factory means the request has no body.
func replayableBody(req *http.Request) (func() (io.ReadCloser, error), error) {
	if req.Body == nil || req.Body == http.NoBody {
		return nil, nil
	}
	if req.GetBody != nil {
		closeBody(req.Body)
		return req.GetBody, nil
	}
	data, err := io.ReadAll(req.Body)
	closeBody(req.Body)
	if err != nil {
		return nil, err
	}
	return func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(data)), nil
	}, nil
}

func closeBody(body io.ReadCloser) {
	if body != nil {
		_ = body.Close()
	}
}

func drain(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, io.LimitReader(body, 4<<10))
	_ = body.Close()
}
