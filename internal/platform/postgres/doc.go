// Package postgres provides the PostgreSQL implementation of store.TaskStore.
// It handles query execution over database/sql with the pgx driver, mapping
// between domain.Task and rows of the tasks table, translation of driver
// errors into store errors, and applying the embedded table schema.
package postgres
