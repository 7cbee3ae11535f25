// Package service contains the application-specific use cases and business
// logic. It orchestrates interactions between domain objects and the stores
// defined in internal/store to fulfill application features.
//
// Key components:
//
// 1. AuthService registers accounts and exchanges credentials for bearer tokens.
//
// 2. TaskService performs every task operation on behalf of an authenticated
// username. Each call runs in one unit of work that first resolves the
// account and then issues owner-scoped store calls, so a task owned by
// someone else is indistinguishable from a missing one.
//
// Services receive dependencies through constructor injection and never
// depend on a specific storage implementation.
package service
