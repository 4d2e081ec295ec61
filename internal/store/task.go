package store

import (
	"context"

	"github.com/phrazzld/task-api/internal/domain"
)

// TaskStore defines the interface for task persistence.
// Implementations must be safe for concurrent use; each method touches at most
// one row and relies on the storage engine for row-level atomicity.
type TaskStore interface {
	// FindAll returns every stored task ordered by ID. The result is a snapshot
	// taken at call time and is never nil.
	FindAll(ctx context.Context) ([]*domain.Task, error)

	// FindByID retrieves a task by its ID.
	// Returns ErrTaskNotFound if the task does not exist.
	FindByID(ctx context.Context, id int64) (*domain.Task, error)

	// Save inserts the task when its ID is zero, assigning a new unique ID,
	// and otherwise replaces the stored task with the same ID in full.
	// Returns the task as stored. Returns ErrTaskNotFound when replacing a
	// task that no longer exists. The argument is not modified.
	Save(ctx context.Context, task *domain.Task) (*domain.Task, error)

	// ExistsByID reports whether a task with the given ID is stored.
	ExistsByID(ctx context.Context, id int64) (bool, error)

	// DeleteByID removes the task with the given ID.
	// Returns ErrTaskNotFound if the task does not exist; callers that need a
	// distinct "not found" outcome should check ExistsByID first.
	DeleteByID(ctx context.Context, id int64) error
}
