// Package service contains the application use cases for tasks. It sits
// between the HTTP handlers in internal/api and the persistence interfaces in
// internal/store, owning the "not found" contract and the orchestration of
// store calls.
//
// Error handling follows a fixed pattern:
//
//   - Absent tasks are reported as ErrTaskNotFound, which callers check with errors.Is.
//   - Invalid input is reported as a *domain.ValidationError.
//   - Every other failure is wrapped in a *TaskServiceError and logged before it is returned.
//
// The service depends only on store interfaces, never on a concrete
// implementation, so the same code runs against PostgreSQL and the in-memory store.
package service
