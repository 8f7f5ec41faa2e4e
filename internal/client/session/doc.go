// Package session owns the signed-in identity of the dysh client.
//
// # Overview
//
// A Session holds one Credential (access token, optional refresh token and a
// snapshot of the user), persists it through a Store under a single fixed
// key, and exposes Do, which performs an HTTP request with the access token
// attached.
//
// When the backend answers 401, Do refreshes the Credential once through the
// Authenticator and retries the original request once. Whatever the retry
// returns is handed back unchanged. A missing refresh token or a failed
// refresh signs the session out and yields ErrAuthExpired.
//
// # States
//
//	Uninitialized -> SignedOut | SignedIn      (lazy load from the Store)
//	SignedIn      -> Refreshing -> SignedIn | SignedOut
//	any           -> SignedOut                 (SignOut)
//	SignedOut     -> SignedIn                  (SignIn)
//
// # Concurrency
//
// A Session is safe for concurrent use. Requests that observe a 401 at the
// same time share a single refresh exchange.
//
// # Errors
//
// ErrNotAuthenticated and ErrAuthExpired tell callers to route the user to
// sign-in. Transport errors and non-401 responses from the first attempt are
// returned exactly as the underlying HTTP client produced them.
package session
