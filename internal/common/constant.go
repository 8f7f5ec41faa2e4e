// Package common contains shared constants and sentinel errors used across
// dysh client components.
package common

// AuthorizationHeaderName carries the bearer access token on protected calls.
const AuthorizationHeaderName = "Authorization"

// BearerScheme prefixes the access token in the Authorization header.
const BearerScheme = "Bearer"

// RequestIDHeaderName tags every outbound request for backend log correlation.
const RequestIDHeaderName = "X-Request-ID"

// CredentialStorageKey is the single metadata key holding the serialized
// credential.
const CredentialStorageKey = "auth_tokens"
