// Package domain contains the core business entities of the task tracker:
// accounts, the tasks they own, and the validation rules both must satisfy.
// It is independent of storage and transport concerns.
package domain
