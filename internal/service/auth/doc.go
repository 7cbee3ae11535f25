// Package auth holds the credential primitives: bcrypt password hashing and
// HS256 bearer tokens carrying {sub, iat, exp}. Nothing here touches storage.
package auth
