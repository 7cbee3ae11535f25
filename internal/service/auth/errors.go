package auth

import "errors"

// Token validation failures. Callers at the HTTP boundary collapse all of
// them into one generic unauthenticated response.
var (
	// ErrMalformedToken indicates the token is not a structurally valid JWT,
	// uses an unknown algorithm, or lacks a required claim.
	ErrMalformedToken = errors.New("malformed authentication token")

	// ErrInvalidSignature indicates the signature does not match the header and
	// payload, or the token was signed with an algorithm other than HS256.
	ErrInvalidSignature = errors.New("invalid authentication token signature")

	// ErrExpiredToken indicates the token has expired
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrMissingToken indicates a token was expected but not provided
	ErrMissingToken = errors.New("authentication token is missing")
)
