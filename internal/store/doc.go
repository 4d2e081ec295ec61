// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying data storage mechanism from
// the application's core logic, allowing business rules to remain
// independent of specific database technologies or persistence details.
//
// The memory subpackage provides an implementation used by tests and by the
// server when no database is configured; internal/platform/postgres provides
// the PostgreSQL implementation.
package store
