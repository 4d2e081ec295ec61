// Package memory provides an in-process implementation of store.TaskStore.
// It backs the server when no database is configured and gives tests a real
// store without an external dependency.
package memory

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/store"
)

// TaskStore implements store.TaskStore with a map guarded by a RWMutex.
// Tasks are copied on the way in and out so callers never share state with the store.
type TaskStore struct {
	mu     sync.RWMutex
	tasks  map[int64]*domain.Task
	nextID int64
	logger *slog.Logger
}

// Ensure TaskStore implements store.TaskStore interface
var _ store.TaskStore = (*TaskStore)(nil)

// NewTaskStore creates an empty store. IDs are assigned from 1 upwards.
// If logger is nil, a default logger will be used.
func NewTaskStore(logger *slog.Logger) *TaskStore {
	if logger == nil {
		logger = slog.Default()
	}

	return &TaskStore{
		tasks:  make(map[int64]*domain.Task),
		nextID: 1,
		logger: logger.With(slog.String("component", "memory_task_store")),
	}
}

// FindAll implements store.TaskStore.FindAll
func (s *TaskStore) FindAll(ctx context.Context) ([]*domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tasks := make([]*domain.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		tasks = append(tasks, t.Clone())
	}

	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
	return tasks, nil
}

// FindByID implements store.TaskStore.FindByID
func (s *TaskStore) FindByID(ctx context.Context, id int64) (*domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	return t.Clone(), nil
}

// Save implements store.TaskStore.Save
func (s *TaskStore) Save(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, store.NewStoreError("task", "save", "task cannot be nil", store.ErrInvalidEntity)
	}

	stored := task.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()

	if stored.ID == 0 {
		stored.ID = s.nextID
		s.nextID++
		logger.FromContextOrDefault(ctx, s.logger).Debug("inserted task", slog.Int64("task_id", stored.ID))
	} else if _, ok := s.tasks[stored.ID]; !ok {
		return nil, store.ErrTaskNotFound
	}

	s.tasks[stored.ID] = stored
	return stored.Clone(), nil
}

// ExistsByID implements store.TaskStore.ExistsByID
func (s *TaskStore) ExistsByID(ctx context.Context, id int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.tasks[id]
	return ok, nil
}

// DeleteByID implements store.TaskStore.DeleteByID
func (s *TaskStore) DeleteByID(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[id]; !ok {
		return store.ErrTaskNotFound
	}
	delete(s.tasks, id)
	return nil
}
