// Package config loads and validates application configuration.
//
// Values come from, in increasing precedence: built-in defaults, an optional
// config.yaml in the working directory, a local .env file, and TODO_-prefixed
// environment variables (TODO_AUTH_JWT_SECRET for auth.jwt_secret).
package config
