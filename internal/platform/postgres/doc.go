// Package postgres provides PostgreSQL implementations of the store
// interfaces, the transactional unit of work that binds them together, and
// the embedded schema migrations. Connections go through the pgx stdlib driver.
package postgres
