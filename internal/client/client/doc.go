// Package client talks to the dysh backend.
//
// HTTPClient maps each backend endpoint to a typed method. Protected calls go
// through the Session, which attaches the access token and recovers from an
// expired one; the few public endpoints use a plain HTTP client.
//
// The package also bootstraps the local SQLite database the client keeps its
// credential in (InitDatabase, RunMigrations).
package client
