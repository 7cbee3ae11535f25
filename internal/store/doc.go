// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying data storage mechanism from
// the application's core logic. Every task operation that addresses a
// single task also takes the owning account's ID, so a caller can never
// read or modify a task it does not own.
package store
